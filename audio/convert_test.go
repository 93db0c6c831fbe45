// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/soundfx/internal/audiotest"
)

func TestConvertRate_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		n        int
		src, dst int
		want     int
	}{
		{name: "downsample", n: 44100, src: 44100, dst: 8000, want: 8000},
		{name: "upsample", n: 8000, src: 8000, dst: 16000, want: 16000},
		{name: "rounds up", n: 3, src: 16000, dst: 8000, want: 2},
		{name: "empty", n: 0, src: 22050, dst: 44100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := ConvertRate(Adopt(make([]float32, tt.n), tt.src), tt.dst)
			if err != nil {
				t.Fatalf("ConvertRate() error = %v", err)
			}
			if out.Len() != tt.want || out.SampleRate() != tt.dst {
				t.Errorf("got %d samples at %d Hz, want %d at %d Hz", out.Len(), out.SampleRate(), tt.want, tt.dst)
			}
		})
	}
}

func TestConvertRate_KeepsLevelAndTiming(t *testing.T) {
	t.Parallel()

	// a step from silence to DC lands at the same time after conversion
	in := make([]float32, 16000)
	for i := 8000; i < len(in); i++ {
		in[i] = 0.5
	}

	out, err := ConvertRate(Adopt(in, 16000), 8000)
	if err != nil {
		t.Fatalf("ConvertRate() error = %v", err)
	}

	got := out.Samples()
	for _, i := range []int{1000, 3000, 3950} {
		if math.Abs(float64(got[i])) > 1e-2 {
			t.Errorf("sample %d = %v, want silence before the step", i, got[i])
		}
	}
	for _, i := range []int{4050, 5000, 7000} {
		if math.Abs(float64(got[i])-0.5) > 1e-2 {
			t.Errorf("sample %d = %v, want 0.5 after the step", i, got[i])
		}
	}
}

func TestConvertRate_SameRate(t *testing.T) {
	t.Parallel()

	buf := Adopt(audiotest.Sine(100, 8000, 440, 0.5), 8000)
	out, err := ConvertRate(buf, 8000)
	if err != nil || out != buf {
		t.Errorf("ConvertRate() = %p, %v, want the input buffer", out, err)
	}
}

func TestConvertRate_InvalidRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, dst int
	}{
		{src: 8000, dst: 0},
		{src: 8000, dst: -1},
		{src: 0, dst: 8000},
	}
	for _, tt := range tests {
		if _, err := ConvertRate(Adopt(make([]float32, 8), tt.src), tt.dst); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("ConvertRate(%d -> %d) error = %v, want ErrInvalidRate", tt.src, tt.dst, err)
		}
	}
}

func BenchmarkConvertRate(b *testing.B) {
	buf := Adopt(audiotest.Sine(44100, 44100, 440, 0.5), 44100)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = ConvertRate(buf, 22050)
	}
}
