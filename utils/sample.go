// SPDX-License-Identifier: EPL-2.0

// Package utils holds small per-sample helpers shared by the decoders,
// the effect stages and the WAV encoder.
package utils

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	// 32767 keeps +1.0 from overflowing
	return int16(Clamp(x, -1, 1) * 32767.0)
}

// IntToFloat32 normalises an integer PCM sample of the given bit depth to
// [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	var full float32
	switch bitDepth {
	case 8:
		full = 128.0
	case 24:
		full = 8388608.0
	case 32:
		full = 2147483648.0
	default:
		full = 32768.0
	}

	return float32(v) / full
}
