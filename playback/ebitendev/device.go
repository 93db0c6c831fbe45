// SPDX-License-Identifier: EPL-2.0

// Package ebitendev plays preview buffers through the ebiten audio context.
package ebitendev

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/playback"
)

// PollInterval is how often the playhead is reported.
const PollInterval = 16 * time.Millisecond

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioContextRate int
)

// sharedContext returns the process-wide ebiten audio context, which can be
// created only once and only at one sample rate.
func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioContextRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioContextRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioContextRate, sampleRate)
	}
	return audioContext, nil
}

// stereoReader streams mono samples as interleaved stereo float32 little
// endian frames, the format NewPlayerF32 expects.
type stereoReader struct {
	samples []float32
	pos     int
}

func (r *stereoReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.samples) {
		return 0, io.EOF
	}

	frames := min(len(p)/8, len(r.samples)-r.pos)
	for i := range frames {
		u := math.Float32bits(r.samples[r.pos+i])
		binary.LittleEndian.PutUint32(p[i*8:], u)
		binary.LittleEndian.PutUint32(p[i*8+4:], u)
	}
	r.pos += frames

	return frames * 8, nil
}

// Device is a playback.Device on the speakers. Only one buffer plays at a
// time; starting another stops the current one.
type Device struct {
	ctx  *ebitaudio.Context
	rate int

	mu  sync.Mutex
	cur *voice
}

type voice struct {
	player     *ebitaudio.Player
	done       chan struct{}
	once       sync.Once
	onComplete func()
}

func (v *voice) end() {
	v.once.Do(func() {
		close(v.done)
		v.player.Pause()
		_ = v.player.Close()
		if v.onComplete != nil {
			v.onComplete()
		}
	})
}

// New opens the device at sampleRate. Buffers at other rates are converted
// before playing.
func New(sampleRate int) (*Device, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &Device{ctx: ctx, rate: sampleRate}, nil
}

func (d *Device) SampleRate() int { return d.rate }

func (d *Device) Play(buf *audio.Buffer, start, end float64, onProgress playback.ProgressFunc, onComplete func()) error {
	from, to, err := playback.Span(buf.Len(), start, end)
	if err != nil {
		return err
	}

	d.Stop()

	samples := buf.Samples()[from:to]
	if buf.SampleRate() != d.rate {
		conv, err := audio.ConvertRate(audio.Adopt(samples, buf.SampleRate()), d.rate)
		if err != nil {
			return fmt.Errorf("convert %d Hz to %d Hz: %w", buf.SampleRate(), d.rate, err)
		}
		samples = conv.Samples()
	}

	player, err := d.ctx.NewPlayerF32(&stereoReader{samples: samples})
	if err != nil {
		return fmt.Errorf("new player: %w", err)
	}

	v := &voice{player: player, done: make(chan struct{}), onComplete: onComplete}

	d.mu.Lock()
	d.cur = v
	d.mu.Unlock()

	progress := playback.NewProgress(buf.Len(), from, to, onProgress)
	scale := float64(buf.SampleRate()) / float64(d.rate)

	player.Play()
	go d.track(v, progress, scale)

	return nil
}

func (d *Device) track(v *voice, progress *playback.Progress, scale float64) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	progress.Report(0)

	for {
		select {
		case <-v.done:
			return
		case <-ticker.C:
			played := v.player.Position().Seconds() * float64(d.rate) * scale
			progress.Report(int(played))

			if !v.player.IsPlaying() {
				progress.Finish()
				d.release(v)
				return
			}
		}
	}
}

func (d *Device) release(v *voice) {
	d.mu.Lock()
	if d.cur == v {
		d.cur = nil
	}
	d.mu.Unlock()

	v.end()
}

// Stop ends the current playback, if any.
func (d *Device) Stop() {
	d.mu.Lock()
	v := d.cur
	d.cur = nil
	d.mu.Unlock()

	if v != nil {
		v.end()
	}
}

var _ playback.Device = (*Device)(nil)
