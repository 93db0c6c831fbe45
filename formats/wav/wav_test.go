// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/internal/audiotest"
)

// riffWAV builds a canonical 44-byte header WAV around data.
func riffWAV(tag, channels, rate, bits int, data []byte) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	blockAlign := channels * bits / 8

	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+len(data)))
	b.WriteString("WAVEfmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, uint16(tag))
	_ = binary.Write(&b, le, uint16(channels))
	_ = binary.Write(&b, le, uint32(rate))
	_ = binary.Write(&b, le, uint32(rate*blockAlign))
	_ = binary.Write(&b, le, uint16(blockAlign))
	_ = binary.Write(&b, le, uint16(bits))
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(len(data)))
	b.Write(data)

	return b.Bytes()
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func encodeFile(t *testing.T, buf *audio.Buffer) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Encode(f, buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDecoder_Mono16(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(riffWAV(1, 1, 8000, 16, pcm16(0, 16384, -16384, -32768))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Errorf("format = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}

	buf, err := audio.Collect(src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []float32{0, 0.5, -0.5, -1}
	got := buf.Samples()
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_Stereo(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(riffWAV(1, 2, 44100, 16, pcm16(16384, -16384, 8192, 8192))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", src.Channels())
	}

	dst := make([]float32, 4)
	n, _ := src.ReadSamples(dst)
	if n != 4 || dst[0] != 0.5 || dst[1] != -0.5 || dst[3] != 0.25 {
		t.Errorf("ReadSamples() = %d, %v", n, dst)
	}
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	// 0x400000 is half of full scale at 24 bits
	data := []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xC0}

	src, err := Decoder{}.Decode(bytes.NewReader(riffWAV(1, 1, 48000, 24, data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float32, 2)
	n, _ := src.ReadSamples(dst)
	if n != 2 || dst[0] != 0.5 || dst[1] != -0.5 {
		t.Errorf("ReadSamples() = %d, %v, want [0.5 -0.5]", n, dst)
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("definitely not a wave file, just some text padding"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"float", riffWAV(3, 1, 8000, 32, make([]byte, 16)), ErrOnlyPCMSupported},
		{"8 bit", riffWAV(1, 1, 8000, 8, make([]byte, 16)), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	r := io.MultiReader(bytes.NewReader(riffWAV(1, 1, 8000, 16, pcm16(1, 2, 3))))
	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.Collect(src)
	if err != nil || buf.Len() != 3 {
		t.Errorf("Collect() = %v samples, %v", buf.Len(), err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	in := audio.Adopt(audiotest.Sine(1000, 22050, 440, 0.8), 22050)

	data := encodeFile(t, in)
	if len(data) != 44+2*in.Len() {
		t.Errorf("file size = %d, want %d", len(data), 44+2*in.Len())
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	out, err := audio.Collect(src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if out.SampleRate() != 22050 || out.Len() != in.Len() {
		t.Fatalf("decoded %d samples at %d Hz", out.Len(), out.SampleRate())
	}
	for i, s := range in.Samples() {
		if d := math.Abs(float64(out.Samples()[i] - s)); d > 1.0/16384 {
			t.Fatalf("sample %d = %v, want %v", i, out.Samples()[i], s)
		}
	}
}

func TestEncode_Clips(t *testing.T) {
	t.Parallel()

	data := encodeFile(t, audio.Adopt([]float32{2, -2}, 8000))

	pcm := data[len(data)-4:]
	if hi, lo := int16(binary.LittleEndian.Uint16(pcm)), int16(binary.LittleEndian.Uint16(pcm[2:])); hi != 32767 || lo != -32767 {
		t.Errorf("clipped samples = %d, %d", hi, lo)
	}
}

func TestEncode_Nil(t *testing.T) {
	t.Parallel()

	if err := Encode(nil, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Encode(nil) error = %v", err)
	}
}

func BenchmarkDecode(b *testing.B) {
	samples := make([]int16, 44100)
	data := riffWAV(1, 1, 44100, 16, pcm16(samples...))
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
