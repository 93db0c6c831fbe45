// SPDX-License-Identifier: EPL-2.0

// Package mutate implements the edits that change a buffer directly
// without going through an effect graph.
package mutate

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ik5/soundfx/audio"
)

var ErrInvalidRange = errors.New("invalid trim range")

// Range selects part of a buffer by fractional position, 0 <= Start <= End <= 1.
type Range struct {
	Start float64
	End   float64
}

// Full selects the whole buffer.
var Full = Range{Start: 0, End: 1}

// Indices resolves r against a buffer of n samples.
func (r Range) Indices(n int) (start, end int, err error) {
	// also rejects NaN
	if !(r.Start >= 0 && r.Start <= r.End && r.End <= 1) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}

	start = int(math.Floor(r.Start * float64(n)))
	end = int(math.Floor(r.End * float64(n)))

	if start < 0 || end > n || end < start {
		return 0, 0, fmt.Errorf("%w: [%d, %d) of %d samples", ErrInvalidRange, start, end, n)
	}

	return start, end, nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Start, r.End)
}

// Trim returns the samples of buf in [floor(Start*n), floor(End*n)).
func Trim(buf *audio.Buffer, r Range) (*audio.Buffer, error) {
	start, end, err := r.Indices(buf.Len())
	if err != nil {
		return nil, err
	}

	return audio.NewBuffer(buf.Samples()[start:end], buf.SampleRate())
}

// Reverse returns buf with its samples in reverse order.
func Reverse(buf *audio.Buffer) *audio.Buffer {
	out := slices.Clone(buf.Samples())
	slices.Reverse(out)

	return audio.Adopt(out, buf.SampleRate())
}
