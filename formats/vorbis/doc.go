// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// The returned audio.Source keeps the stream's channel layout and yields
// interleaved float32 frames. ReadSamples rejects a dst whose length is not
// a multiple of the channel count with audio.ErrInvalidDstSize, the same
// contract audio.MonoMixer relies on.
package vorbis
