// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/soundfx/utils"
)

// Buffer is a single channel block of samples at a fixed sample rate.
//
// A Buffer is never modified once it has been produced. Every transformation
// (render, trim, reverse) returns a new Buffer, which is what makes it safe to
// keep buffers on undo stacks without copying them again.
type Buffer struct {
	samples    []float32
	sampleRate int
}

// NewBuffer copies samples into a new Buffer.
func NewBuffer(samples []float32, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidRate, sampleRate)
	}

	own := make([]float32, len(samples))
	copy(own, samples)

	return &Buffer{samples: own, sampleRate: sampleRate}, nil
}

// Adopt wraps samples without copying. The caller hands over ownership and
// must not touch samples afterwards.
func Adopt(samples []float32, sampleRate int) *Buffer {
	if samples == nil {
		samples = []float32{}
	}

	return &Buffer{samples: samples, sampleRate: sampleRate}
}

// Samples returns the backing slice. It must be treated as read only.
func (b *Buffer) Samples() []float32 { return b.samples }

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Len() int        { return len(b.samples) }

// Duration of the buffer at its sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}

	return time.Duration(len(b.samples)) * time.Second / time.Duration(b.sampleRate)
}

// Equal reports whether both buffers hold the same samples at the same rate.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.sampleRate != o.sampleRate || len(b.samples) != len(o.samples) {
		return false
	}
	for i, s := range b.samples {
		if s != o.samples[i] {
			return false
		}
	}

	return true
}

// PCM16 converts the buffer into a go-audio IntBuffer with 16-bit samples,
// clamping anything outside [-1, 1].
func (b *Buffer) PCM16() *goaudio.IntBuffer {
	data := make([]int, len(b.samples))
	for i, s := range b.samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: b.sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
}

// Reader returns a mono Source streaming the buffer from the beginning.
func (b *Buffer) Reader() *BufferSource {
	return &BufferSource{buf: b}
}

// BufferSource streams a Buffer as a mono Source.
type BufferSource struct {
	buf *Buffer
	pos int
}

func (s *BufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *BufferSource) Channels() int   { return 1 }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.samples) {
		return n, io.EOF
	}

	return n, nil
}

// Collect drains src into a mono Buffer. Multi-channel sources are folded
// to mono through a MonoMixer first.
func Collect(src Source) (*Buffer, error) {
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidRate, src.SampleRate())
	}

	var mono Source = src
	if src.Channels() != 1 {
		mono = NewMonoMixer(src)
	}

	bufSize := mono.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	samples := make([]float32, 0, bufSize)
	buf := make([]float32, bufSize)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			// a source that neither advances nor reports EOF is finished
			break
		}
	}

	return Adopt(samples, src.SampleRate()), nil
}
