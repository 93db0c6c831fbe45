// SPDX-License-Identifier: EPL-2.0

// Package render builds effect graphs for a sample buffer and renders them
// offline into a new buffer.
package render

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/effects"
)

// Options tune graph construction.
type Options struct {
	// EchoDecay is the feedback gain of the echo delay line.
	EchoDecay float64
	// EchoTailPeriods is how many echo delays of extra output are reserved
	// after the input for the echo tail.
	EchoTailPeriods float64
	// EchoCompressor inserts a compressor after the echo while its wet path
	// is engaged.
	EchoCompressor bool
	// BlockSize is the number of samples processed per step.
	BlockSize int
	// MaxLength caps the output length in samples; 0 keeps DefaultMaxLength.
	MaxLength int
}

// DefaultMaxLength is about 50 minutes of output at 44.1 kHz.
const DefaultMaxLength = 1 << 27

func DefaultOptions() Options {
	return Options{
		EchoDecay:       effects.DefaultEchoDecay,
		EchoTailPeriods: 4,
		BlockSize:       4096,
		MaxLength:       DefaultMaxLength,
	}
}

// outputLength is OutputLength before the conversion to int.
func outputLength(n, sampleRate int, p effects.Params, tailPeriods float64) float64 {
	tail := p.EchoDelay * tailPeriods * float64(sampleRate)
	v := (1 / p.PitchRatio) * (float64(n) + tail)

	if r := math.Round(v); math.Abs(v-r) < 1e-6 {
		return r
	}
	return math.Ceil(v)
}

// OutputLength returns the number of samples a render of n input samples
// produces: ceil((1/pitch) * (n + echoDelay*tailPeriods*sampleRate)).
// Values within rounding noise of an integer are not rounded up.
func OutputLength(n, sampleRate int, p effects.Params, tailPeriods float64) int {
	return int(outputLength(n, sampleRate, p, tailPeriods))
}

// Graph is the signal path of one render:
//
//	source (rate = PitchRatio) -> echo -> distortion -> volume -> output
//
// A Graph is used by a single render and released with Close.
type Graph struct {
	ID     string
	Input  *audio.Buffer
	Params effects.Params
	// Length is the number of output samples.
	Length int

	chain  effects.Chain
	closed bool
}

// Build validates p against buf and assembles the graph. Validation errors
// wrap effects.ErrInvalidParameter and are returned before any allocation
// of the output.
func Build(buf *audio.Buffer, p effects.Params, opts Options) (*Graph, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", effects.ErrInvalidParameter)
	}

	rate := buf.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d must be positive", effects.ErrInvalidParameter, rate)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultOptions().BlockSize
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}

	if t := opts.EchoTailPeriods; math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return nil, fmt.Errorf("%w: echo tail periods %v", effects.ErrInvalidParameter, t)
	}

	length := outputLength(buf.Len(), rate, p, opts.EchoTailPeriods)
	if length > float64(opts.MaxLength) {
		return nil, fmt.Errorf("%w: output of %.0f samples exceeds %d",
			effects.ErrInvalidParameter, length, opts.MaxLength)
	}

	echo, err := effects.NewEchoStage(effects.DelaySamples(p.EchoDelay, rate), opts.EchoDecay)
	if err != nil {
		return nil, err
	}
	chain := effects.Chain{echo}

	if opts.EchoCompressor && !echo.Bypassed() {
		comp, err := effects.NewCompressor(rate, effects.EchoCompressorSettings)
		if err != nil {
			return nil, err
		}
		chain = append(chain, comp)
	}

	dist, err := effects.NewDistortionStage(rate, p.Distortion)
	if err != nil {
		return nil, err
	}
	chain = append(chain, dist, effects.NewVolumeStage(p.Gain()))

	return &Graph{
		ID:     uuid.NewString(),
		Input:  buf,
		Params: p,
		Length: int(length),
		chain:  chain,
	}, nil
}

// Stages returns the processing chain after the source.
func (g *Graph) Stages() effects.Chain { return g.chain }

// Close releases the graph's processing state. It is safe to call twice.
func (g *Graph) Close() error {
	g.chain = nil
	g.closed = true
	return nil
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph %v in=%d out=%d rate=%d %v",
		g.ID, g.Input.Len(), g.Length, g.Input.SampleRate(), g.Params)
}
