// SPDX-License-Identifier: EPL-2.0

// Package playback defines the preview device the editor plays buffers on
// and the bookkeeping shared by device implementations.
package playback

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/ik5/soundfx/audio"
)

var ErrInvalidRange = errors.New("invalid playback range")

// ProgressFunc receives the playhead as a fraction of the whole buffer.
type ProgressFunc func(fraction float64)

// Device plays a buffer from start to end, both fractions of its length.
// onProgress is called with increasing fractions while audio plays.
// onComplete is called once, when playback ends or is stopped.
type Device interface {
	Play(buf *audio.Buffer, start, end float64, onProgress ProgressFunc, onComplete func()) error
	Stop()
}

// Span resolves a fractional [start, end) range against n samples.
func Span(n int, start, end float64) (from, to int, err error) {
	if math.IsNaN(start) || math.IsNaN(end) || start < 0 || end > 1 || start > end {
		return 0, 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, start, end)
	}

	return int(math.Floor(start * float64(n))), int(math.Floor(end * float64(n))), nil
}

// Progress converts samples played from a span into playhead fractions of
// the whole buffer and forwards them only when they move forward.
type Progress struct {
	mu   sync.Mutex
	n    int
	from int
	to   int
	last float64
	fn   ProgressFunc
}

func NewProgress(n, from, to int, fn ProgressFunc) *Progress {
	return &Progress{n: n, from: from, to: to, last: -1, fn: fn}
}

// Report publishes the playhead after played samples of the span.
func (p *Progress) Report(played int) {
	if p.fn == nil || p.n <= 0 {
		return
	}

	pos := p.from + min(max(played, 0), p.to-p.from)
	fraction := float64(pos) / float64(p.n)

	p.mu.Lock()
	if fraction <= p.last {
		p.mu.Unlock()
		return
	}
	p.last = fraction
	p.mu.Unlock()

	p.fn(fraction)
}

// Finish publishes the end of the span.
func (p *Progress) Finish() {
	p.Report(p.to - p.from)
}

// Silent is a Device without output. Play reports the start and end of the
// span and completes before returning, which suits headless tools.
type Silent struct{}

func (Silent) Play(buf *audio.Buffer, start, end float64, onProgress ProgressFunc, onComplete func()) error {
	from, to, err := Span(buf.Len(), start, end)
	if err != nil {
		return err
	}

	p := NewProgress(buf.Len(), from, to, onProgress)
	p.Report(0)
	p.Finish()

	if onComplete != nil {
		onComplete()
	}
	return nil
}

func (Silent) Stop() {}

var _ Device = Silent{}
