// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF files through github.com/go-audio/aiff.
//
// The decoder accepts 16, 24 and 32-bit integer PCM in any channel layout.
// AIFF stores samples big-endian; the returned audio.Source yields them as
// interleaved float32 in [-1, 1) like every other decoder in this module.
// Inputs that are not an io.ReadSeeker are buffered in memory first.
//
// Encode writes a mono audio.Buffer back out as 16-bit AIFF.
package aiff
