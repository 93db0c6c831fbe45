// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-dsp/dsp/effects/dynamics"
)

// CompressorSettings configure a feed-forward soft-knee compressor.
type CompressorSettings struct {
	ThresholdDB float64
	KneeDB      float64
	Ratio       float64
	Attack      time.Duration
	Release     time.Duration
}

// EchoCompressorSettings are the settings used to tame the echo wet path.
// The knee and attack sit at the widest and fastest the compressor accepts.
var EchoCompressorSettings = CompressorSettings{
	ThresholdDB: -50,
	KneeDB:      24,
	Ratio:       12,
	Attack:      100 * time.Microsecond,
	Release:     250 * time.Millisecond,
}

// Compressor reduces the gain of samples whose envelope exceeds the
// threshold. The envelope follows peaks with the attack time and falls back
// with the release time. No makeup gain is applied.
type Compressor struct {
	s   CompressorSettings
	c   *dynamics.Compressor
	buf scratch
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func NewCompressor(sampleRate int, s CompressorSettings) (*Compressor, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: compressor sample rate %d", ErrInvalidParameter, sampleRate)
	}

	c, err := dynamics.NewCompressor(float64(sampleRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	for _, set := range []func() error{
		func() error { return c.SetThreshold(s.ThresholdDB) },
		func() error { return c.SetKnee(s.KneeDB) },
		func() error { return c.SetRatio(s.Ratio) },
		func() error { return c.SetAttack(ms(s.Attack)) },
		func() error { return c.SetRelease(ms(s.Release)) },
		func() error { return c.SetMakeupGain(0) },
	} {
		if err := set(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
	}

	return &Compressor{s: s, c: c}, nil
}

// Settings returns the settings the compressor was built with.
func (c *Compressor) Settings() CompressorSettings { return c.s }

// Level returns the steady-state output level for an input magnitude.
func (c *Compressor) Level(in float64) float64 { return c.c.CalculateOutputLevel(in) }

func (c *Compressor) Bypassed() bool { return c.s.Ratio == 1 }
func (c *Compressor) Reset()         { c.c.Reset() }

func (c *Compressor) Process(buf []float32) {
	b := c.buf.load(buf)
	c.c.ProcessInPlace(b)
	store(buf, b)
}
