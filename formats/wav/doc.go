// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoding accepts integer PCM at 16, 24 or 32 bits with any channel count
// and sample rate. Samples come out of the returned audio.Source as
// interleaved float32 in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(src)
//
// Unknown chunks (LIST, smpl and friends) are skipped by the underlying
// decoder. Float WAV and 8-bit unsigned PCM are rejected with
// ErrOnlyPCMSupported and ErrUnsupportedBitDepth.
//
// Encode writes a mono audio.Buffer as 16-bit PCM:
//
//	out, _ := os.Create("edited.wav")
//	defer out.Close()
//	err := wav.Encode(out, buf)
package wav
