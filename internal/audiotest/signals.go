// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Sine returns n samples of a sine wave at freq Hz with the given amplitude.
func Sine(n, sampleRate int, freq, amplitude float64) []float32 {
	out := make([]float32, n)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// Impulse returns n zero samples with a single 1 at pos.
func Impulse(n, pos int) []float32 {
	out := make([]float32, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}

// Ramp returns the samples 0, 1, ..., n-1 scaled by step.
func Ramp(n int, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i) * step
	}
	return out
}

// DC returns n copies of value.
func DC(n int, value float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = value
	}
	return out
}
