// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"fmt"
	"time"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/effects"
)

// Renderer builds a graph per request and hands it to a Backend.
type Renderer struct {
	backend Backend
	opts    Options
}

// NewRenderer returns a renderer using backend, or an Offline backend when
// backend is nil.
func NewRenderer(backend Backend, opts Options) *Renderer {
	if backend == nil {
		backend = Offline{BlockSize: opts.BlockSize}
	}
	return &Renderer{backend: backend, opts: opts}
}

func (r *Renderer) Options() Options { return r.opts }

// Render renders buf with p and blocks until the result is ready. Invalid
// parameters are reported without touching the backend; backend failures
// wrap ErrRenderFailure. buf is never modified.
func (r *Renderer) Render(ctx context.Context, buf *audio.Buffer, p effects.Params) (*audio.Buffer, error) {
	g, err := Build(buf, p, r.opts)
	if err != nil {
		return nil, err
	}

	return r.run(ctx, g)
}

func (r *Renderer) run(ctx context.Context, g *Graph) (*audio.Buffer, error) {
	defer g.Close()

	starttime := time.Now()
	out, err := r.backend.Render(ctx, g)
	if err != nil {
		logger.Ef(ctx, "render %v err %+v", g, err)
		return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
	}

	logger.Tf(ctx, "render %v done, cost=%v", g.ID, time.Since(starttime))
	return out, nil
}

// Start validates the request and renders it in the background. The
// returned Future resolves once with the rendered buffer or an error.
func (r *Renderer) Start(ctx context.Context, buf *audio.Buffer, p effects.Params) (*Future, error) {
	g, err := Build(buf, p, r.opts)
	if err != nil {
		return nil, err
	}

	f := newFuture()
	go func() {
		ctx := logger.WithContext(ctx)
		logger.Tf(ctx, "render %v start", g)
		f.resolve(r.run(ctx, g))
	}()

	return f, nil
}

// Future is the pending result of Renderer.Start.
type Future struct {
	done chan struct{}
	buf  *audio.Buffer
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(buf *audio.Buffer, err error) {
	f.buf, f.err = buf, err
	close(f.done)
}

// Done is closed when the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Result returns the outcome. It must only be called after Done is closed.
func (f *Future) Result() (*audio.Buffer, error) { return f.buf, f.err }

// Wait blocks until the render finishes or ctx is done.
func (f *Future) Wait(ctx context.Context) (*audio.Buffer, error) {
	select {
	case <-f.done:
		return f.buf, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
