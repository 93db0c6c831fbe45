// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/formats/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between the COMM and SSND chunks
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	if !pcm.Supported(int(dec.BitDepth)) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	f := dec.Format()
	if f == nil || f.NumChannels <= 0 || f.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return pcm.NewSource(dec, f.SampleRate, f.NumChannels, int(dec.BitDepth)), nil
}

// Encode writes buf as a mono 16-bit AIFF.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf == nil {
		return ErrEmptyBuffer
	}

	enc := aiff.NewEncoder(w, buf.SampleRate(), 16, 1)
	if err := enc.Write(buf.PCM16()); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write pcm: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close aiff: %w", err)
	}
	return nil
}
