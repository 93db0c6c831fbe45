// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces stereo, so the returned audio.Source has two
// channels regardless of the file. Fold it to mono with audio.Collect or
// audio.NewMonoMixer:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(src)
//
// Encoding is not supported.
package mp3
