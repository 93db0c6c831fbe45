// SPDX-License-Identifier: EPL-2.0

// Package waveform reduces a sample buffer to a short sequence of RMS levels
// suitable for drawing a compact waveform.
package waveform

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/soundfx/audio"
)

// DefaultChunkSize is the number of samples folded into one level.
const DefaultChunkSize = 256

var (
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	ErrInvalidCeiling   = errors.New("display ceiling must be positive")
)

// Levels holds one non-negative RMS value per chunk.
type Levels []float64

// Option adjusts how levels are computed.
type Option func(*config) error

type config struct {
	ceiling float64
}

// WithCeiling divides every level by ceiling and clamps the result to [0, 1].
func WithCeiling(ceiling float64) Option {
	return func(c *config) error {
		if !(ceiling > 0) || math.IsInf(ceiling, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidCeiling, ceiling)
		}
		c.ceiling = ceiling
		return nil
	}
}

// Downsample partitions the buffer into contiguous chunks of chunkSize
// samples (the last one may be shorter) and returns the RMS of each chunk.
// The result has ceil(len/chunkSize) entries; an empty buffer yields an
// empty, non-nil Levels.
func Downsample(buf *audio.Buffer, chunkSize int, opts ...Option) (Levels, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}

	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	samples := buf.Samples()
	levels := make(Levels, 0, (len(samples)+chunkSize-1)/chunkSize)
	chunk := make([]float64, min(chunkSize, len(samples)))

	for start := 0; start < len(samples); start += chunkSize {
		end := min(start+chunkSize, len(samples))
		level := rms(chunk[:end-start], samples[start:end])

		if cfg.ceiling > 0 {
			level = math.Min(level/cfg.ceiling, 1)
		}

		levels = append(levels, level)
	}

	return levels, nil
}

// rms widens src into dst and returns its root mean square.
func rms(dst []float64, src []float32) float64 {
	for i, s := range src {
		dst[i] = float64(s)
	}

	return math.Sqrt(vecmath.DotProduct(dst, dst) / float64(len(dst)))
}

// Peak returns the largest level, or 0 for empty levels.
func (l Levels) Peak() float64 {
	var peak float64
	for _, v := range l {
		peak = math.Max(peak, v)
	}
	return peak
}
