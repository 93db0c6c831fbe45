// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundfx/audio"
)

// Backend executes a Graph. Each call owns the graph for its duration.
type Backend interface {
	Render(ctx context.Context, g *Graph) (*audio.Buffer, error)
}

// Offline renders a graph without real-time constraints. The output is a
// pure function of the graph.
type Offline struct {
	// BlockSize overrides the processing step; 0 keeps 4096.
	BlockSize int
}

func (o Offline) blockSize() int {
	if o.BlockSize > 0 {
		return o.BlockSize
	}
	return 4096
}

func (o Offline) Render(ctx context.Context, g *Graph) (*audio.Buffer, error) {
	if g.closed {
		return nil, ErrGraphClosed
	}

	src, err := audio.NewPlaybackResampler(g.Input.Reader(), g.Params.PitchRatio)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer src.Close()

	out := make([]float32, g.Length)
	block := o.blockSize()

	// the source stream ends before the echo tail; the rest stays silent
	for pos := 0; pos < len(out); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.ReadSamples(out[pos:min(pos+block, len(out))])
		pos += n

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read source at %d: %w", pos, err)
		}
	}

	for pos := 0; pos < len(out); pos += block {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.chain.Process(out[pos:min(pos+block, len(out))])
	}

	return audio.Adopt(out, g.Input.SampleRate()), nil
}

var _ Backend = Offline{}
