// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/soundfx/internal/audiotest"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 1, 100, 0.5))

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{name: "stereo", channels: 2, want: 0.375},
		{name: "quad", channels: 4, want: 0.625},
		{name: "six channels", channels: 6, want: 0.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// channel c carries 0.25*(c+1), so the mean is 0.25*(channels+1)/2
			src := audiotest.NewMockSource(8000, tt.channels, 100, func(_ int, ch int) float32 {
				return 0.25 * float32(ch+1)
			})
			mixer := NewMonoMixer(src)

			buf := make([]float32, 20)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 20 {
				t.Fatalf("ReadSamples() n = %d, want 20 frames", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 50))

	buf := make([]float32, 100)
	n, err := mixer.ReadSamples(buf)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 50 {
		t.Errorf("ReadSamples() n = %d, want 50", n)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 50))
	n, err := mixer.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestMonoMixer_PreservesMetadata(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(22050, 2, 10))
	if mixer.SampleRate() != 22050 || mixer.Channels() != 1 {
		t.Errorf("MonoMixer = %d Hz / %d ch, want 22050 / 1", mixer.SampleRate(), mixer.Channels())
	}
	if err := mixer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMonoMixer_ZeroAllocsAfterWarmup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := audiotest.NewConstantSource(8000, 2, math.MaxInt32, 0.5)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 1024)
	_, _ = mixer.ReadSamples(buf)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = mixer.ReadSamples(buf)
	})
	if allocs > 0 {
		t.Errorf("MonoMixer.ReadSamples allocated %v times, want 0", allocs)
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, math.MaxInt32, 440)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = mixer.ReadSamples(buf)
	}
}
