// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers and streaming primitives the
// sound editor is built on.
//
// # Buffers
//
// A Buffer is one channel of float32 samples at a fixed sample rate. Buffers
// are immutable: rendering, trimming and reversing all produce a new Buffer,
// so the same Buffer can sit on an undo stack, feed a waveform and be played
// back at the same time.
//
//	buf, err := audio.NewBuffer(samples, 44100)
//	src := buf.Reader() // stream it as a Source
//
// # Source Interface
//
// The Source interface is the streaming side:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders in the formats packages return Sources; Collect drains any Source
// into a mono Buffer, folding channels through a MonoMixer when needed.
//
// # Resampling
//
// NewPlaybackResampler reads a Source at a fractional rate with Hermite
// interpolation. It keeps the sample rate and changes the playback speed,
// which is how pitch effects are rendered:
//
//	slow, _ := audio.NewPlaybackResampler(buf.Reader(), 0.5) // an octave down, twice as long
//	out, _ := audio.Collect(slow)
//
// A playback rate of exactly 1 reproduces the source sample for sample.
//
// ConvertRate changes the sample rate of a whole Buffer through a polyphase
// FIR from algo-dsp, keeping pitch and timing.
//
// # Format Registry
//
// The registry maps format keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode("wav", file)
//
// # Sample Format
//
// Decoded samples are float32 in the range [-1.0, 1.0]. Buffers produced by
// effects may exceed that range; clipping happens only when converting to
// integer PCM (Buffer.PCM16).
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors indicate
// problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
