// SPDX-License-Identifier: EPL-2.0

// Package effects turns user-facing effect sliders into DSP parameters and
// provides the processing stages an effect graph is built from.
//
// # Parameter mapping
//
// Every slider takes a value in [0, 1] or is absent (nil). [Map] converts a
// set of sliders into [Params]:
//
//	monster  m  ->  PitchRatio = 0.5*(1-m) + 0.5
//	chipmunk c  ->  PitchRatio = c*0.5 + 1
//	echo     e  ->  EchoDelay  = 0.5*e seconds
//	robot    r  ->  Distortion = r
//	volume   v  ->  Volume     = v (absent means unity)
//
// Monster takes precedence over chipmunk when both are set. Keeping only one
// of them active is the caller's job.
//
// # Stages
//
// A [Stage] processes a mono block in place. Stages keep state between calls
// (the echo delay line, the compressor envelope), so a block stream must be
// fed through one stage instance in order. Each stage built from a default
// parameter is a passthrough:
//
//   - [EchoStage] with a zero delay
//   - [DistortionStage] with a zero amount
//   - [VolumeStage] with unity gain
//
// The delay line, waveshaper and compressor run on the algo-dsp processors
// in double precision; stages convert each block to and from float32.
//
// Stages are chained with [Chain], which runs them in order.
package effects
