// SPDX-License-Identifier: EPL-2.0

package soundfx

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/formats/aiff"
	"github.com/ik5/soundfx/formats/mp3"
	"github.com/ik5/soundfx/formats/vorbis"
	"github.com/ik5/soundfx/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder, keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// FormatOf returns the registry key for a file name: its lower-cased
// extension without the dot.
func FormatOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// LoadMono decodes r as format into a mono Buffer. Multi-channel input is
// averaged down to one channel. A positive targetRate resamples the result;
// zero keeps the file's rate.
func LoadMono(reg *audio.Registry, format string, r io.Reader, targetRate int) (*audio.Buffer, error) {
	if targetRate < 0 {
		return nil, fmt.Errorf("%w: target %d", audio.ErrInvalidRate, targetRate)
	}

	src, err := reg.Decode(format, r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.Collect(src)
	if err != nil || targetRate == 0 {
		return buf, err
	}

	return audio.ConvertRate(buf, targetRate)
}

// ExportWAV writes buf as a mono 16-bit PCM WAV.
func ExportWAV(w io.WriteSeeker, buf *audio.Buffer) error {
	return wav.Encode(w, buf)
}
