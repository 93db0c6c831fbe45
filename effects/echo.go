// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/delay"
)

// DefaultEchoDecay is the feedback gain of the echo delay line.
const DefaultEchoDecay = 0.5

// EchoStage is a feedback comb. The input is passed through dry and also fed
// to a delay line whose output is mixed into the result and fed back into
// the line scaled by the decay:
//
//	w[n] = x[n] + decay*w[n-D]
//	y[n] = x[n] + w[n-D]
type EchoStage struct {
	line  *delay.Line
	size  int
	decay float64
}

// DelaySamples converts a delay in seconds to a delay line length. Any
// positive delay yields at least one sample.
func DelaySamples(seconds float64, sampleRate int) int {
	if seconds <= 0 || sampleRate <= 0 {
		return 0
	}
	return max(int(math.Round(seconds*float64(sampleRate))), 1)
}

// NewEchoStage returns an echo with a delay line of size samples. A size of
// zero or less disables the wet path.
func NewEchoStage(size int, decay float64) (*EchoStage, error) {
	e := &EchoStage{decay: decay}
	if size <= 0 {
		return e, nil
	}

	line, err := delay.New(size)
	if err != nil {
		return nil, fmt.Errorf("%w: echo delay %d: %v", ErrInvalidParameter, size, err)
	}
	e.line, e.size = line, size
	return e, nil
}

// Delay returns the delay line length in samples.
func (e *EchoStage) Delay() int { return e.size }

func (e *EchoStage) Bypassed() bool { return e.line == nil }

func (e *EchoStage) Process(buf []float32) {
	if e.line == nil {
		return
	}

	// a read of the full line length returns the sample written size steps ago
	for i, s := range buf {
		x := float64(s)
		d := e.line.Read(e.size)
		e.line.Write(x + e.decay*d)
		buf[i] = float32(x + d)
	}
}

func (e *EchoStage) Reset() {
	if e.line != nil {
		e.line.Reset()
	}
}
