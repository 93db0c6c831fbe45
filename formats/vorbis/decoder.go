// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/soundfx/audio"
)

// frameReader is the part of oggvorbis.Reader the source reads from.
type frameReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      frameReader
	channels int
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 * s.channels }

// ReadSamples fills dst with whole frames. dst must hold at least one frame.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, fmt.Errorf("%w: %d values for %d channels", audio.ErrInvalidDstSize, len(dst), s.channels)
	}
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis decodes straight into dst and counts interleaved values
	n, err := s.dec.Read(dst)
	if n == 0 && err == nil {
		return 0, nil
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("vorbis: %d channels", dec.Channels())
	}

	return &source{dec: dec, channels: dec.Channels()}, nil
}
