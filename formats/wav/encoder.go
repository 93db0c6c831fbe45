// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/soundfx/audio"
)

// Encode writes buf as a mono 16-bit PCM WAV. Samples outside [-1, 1] are
// clipped. The header sizes are patched on completion, hence the seeker.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf == nil {
		return ErrEmptyBuffer
	}

	enc := wav.NewEncoder(w, buf.SampleRate(), 16, 1, formatPCM)
	if err := enc.Write(buf.PCM16()); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write pcm: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav: %w", err)
	}
	return nil
}
