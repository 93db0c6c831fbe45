// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-dsp/dsp/interp"
)

// Resampler reads src at a fractional playback rate using 4-point Hermite
// interpolation. Works on interleaved samples; preserves channel count.
//
// The stream keeps its sample rate but is read faster or slower, shifting
// pitch and duration together. Output frame i is taken from source position
// i*ratio, so a ratio of exactly 1 reproduces the source sample for sample.
type Resampler struct {
	src      Source
	ratio    float64 // source frames consumed per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2.
	// Edges are padded by repeating the nearest real frame.
	frames [4][]float32
	real   [4]bool
	primed bool

	// Fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool
}

// NewPlaybackResampler plays src back at rate times its natural speed
// without changing the reported sample rate. rate > 1 raises pitch and
// shortens the stream; rate < 1 lowers pitch and lengthens it.
func NewPlaybackResampler(src Source, rate float64) (*Resampler, error) {
	if !(rate > 0) {
		return nil, fmt.Errorf("%w: playback rate %v", ErrInvalidRate, rate)
	}

	channels := src.Channels()

	r := &Resampler{
		src:      src,
		ratio:    rate,
		channels: channels,
		srcBuf:   make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.src.SampleRate() }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }
func (r *Resampler) Ratio() float64  { return r.ratio }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from the source into dst. It reports false once
// the source is exhausted; a partial trailing frame is dropped.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.srcBuf)
	return true, nil
}

func (r *Resampler) prime() error {
	got, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !got {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	r.real[0], r.real[1] = false, true

	for i := 2; i < len(r.frames); i++ {
		got, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		if !got {
			copy(r.frames[i], r.frames[i-1])
		}
		r.real[i] = got
	}

	r.primed = true
	return nil
}

// advance shifts the window one source frame forward.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	got, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	if !got {
		copy(r.frames[3], r.frames[2])
	}
	r.real[3] = got

	return nil
}

// ReadSamples produces interpolated frames into dst.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// position has moved past the last real frame
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		base := written * r.channels
		for c := range r.channels {
			// exact at pos 0, so a unity rate is a plain copy
			dst[base+c] = float32(interp.Hermite4(r.pos,
				float64(r.frames[0][c]), float64(r.frames[1][c]),
				float64(r.frames[2][c]), float64(r.frames[3][c])))
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
