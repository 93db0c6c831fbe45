// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/formats/wav"
)

func ExampleEncode() {
	f, err := os.CreateTemp("", "soundfx-*.wav")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	buf := audio.Adopt([]float32{0, 0.5, -0.5, 0}, 8000)
	if err := wav.Encode(f, buf); err != nil {
		fmt.Println(err)
		return
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, _ := audio.Collect(src)
	fmt.Println(out.Len(), out.SampleRate())
	// Output: 4 8000
}
