// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/internal/audiotest"
)

func encodeFile(t testing.TB, buf *audio.Buffer) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.aiff")
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

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := audio.Adopt(audiotest.Sine(2000, 44100, 1000, 0.7), 44100)
	data := encodeFile(t, in)

	if !bytes.HasPrefix(data, []byte("FORM")) {
		t.Fatalf("file starts with %q, want FORM", data[:4])
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 44100 || src.Channels() != 1 {
		t.Errorf("format = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}

	out, err := audio.Collect(src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("decoded %d samples, want %d", out.Len(), in.Len())
	}
	for i, s := range in.Samples() {
		if d := math.Abs(float64(out.Samples()[i] - s)); d > 1.0/16384 {
			t.Fatalf("sample %d = %v, want %v", i, out.Samples()[i], s)
		}
	}
}

func TestDecode_NonSeekable(t *testing.T) {
	t.Parallel()

	data := encodeFile(t, audio.Adopt([]float32{0.5, -0.5, 0.25}, 8000))

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float32, 8)
	n, _ := src.ReadSamples(dst)
	if n != 3 || math.Abs(float64(dst[0]-0.5)) > 1.0/16384 {
		t.Errorf("ReadSamples() = %d, %v", n, dst[:n])
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("this is not an AIFF file, only text"),
		"riff":  []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("%s: Decode() error = %v, want ErrNotAiffFile", name, err)
		}
	}
}

func TestEncode_Nil(t *testing.T) {
	t.Parallel()

	if err := Encode(nil, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Encode(nil) error = %v", err)
	}
}

func BenchmarkDecode(b *testing.B) {
	data := encodeFile(b, audio.Adopt(audiotest.Sine(44100, 44100, 440, 0.5), 44100))
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
