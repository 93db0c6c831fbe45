// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/soundfx/audio"
)

func TestSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n          int
		start, end float64
		from, to   int
		wantErr    bool
	}{
		{n: 100, start: 0, end: 1, from: 0, to: 100},
		{n: 100, start: 0.25, end: 0.5, from: 25, to: 50},
		{n: 7, start: 0.5, end: 0.9, from: 3, to: 6},
		{n: 100, start: 0.6, end: 0.5, wantErr: true},
		{n: 100, start: -0.1, end: 0.5, wantErr: true},
		{n: 100, start: 0, end: 1.5, wantErr: true},
		{n: 100, start: math.NaN(), end: 1, wantErr: true},
	}

	for _, tt := range tests {
		from, to, err := Span(tt.n, tt.start, tt.end)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("Span(%d, %v, %v) error = %v, want ErrInvalidRange", tt.n, tt.start, tt.end, err)
			}
			continue
		}
		if err != nil || from != tt.from || to != tt.to {
			t.Errorf("Span(%d, %v, %v) = %d, %d, %v, want %d, %d", tt.n, tt.start, tt.end, from, to, err, tt.from, tt.to)
		}
	}
}

func TestProgress_Monotonic(t *testing.T) {
	t.Parallel()

	var got []float64
	p := NewProgress(100, 20, 60, func(f float64) { got = append(got, f) })

	for _, played := range []int{0, 10, 10, 5, 30, 100, 40} {
		p.Report(played)
	}
	p.Finish()

	want := []float64{0.2, 0.3, 0.5, 0.6}
	if len(got) != len(want) {
		t.Fatalf("reported %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("report %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProgress_NilCallback(t *testing.T) {
	t.Parallel()

	p := NewProgress(10, 0, 10, nil)
	p.Report(5)
	p.Finish()
}

func TestSilent(t *testing.T) {
	t.Parallel()

	buf := audio.Adopt(make([]float32, 1000), 8000)

	var progress []float64
	completed := 0

	err := Silent{}.Play(buf, 0.1, 0.4,
		func(f float64) { progress = append(progress, f) },
		func() { completed++ })
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(progress) != 2 || progress[0] != 0.1 || progress[1] != 0.4 {
		t.Errorf("progress = %v, want [0.1 0.4]", progress)
	}
	if completed != 1 {
		t.Errorf("onComplete called %d times", completed)
	}

	if err := (Silent{}).Play(buf, 0.5, 0.1, nil, nil); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Play(inverted) error = %v", err)
	}
}
