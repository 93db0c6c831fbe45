// SPDX-License-Identifier: EPL-2.0

// Package editor is the sound editor controller. It keeps one edit session
// for the open sound, turns slider changes into debounced preview renders,
// commits effects, trims and reversals back to the project with undo
// history, and drives preview playback.
package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/config"
	"github.com/ik5/soundfx/effects"
	"github.com/ik5/soundfx/mutate"
	"github.com/ik5/soundfx/playback"
	"github.com/ik5/soundfx/project"
	"github.com/ik5/soundfx/render"
	"github.com/ik5/soundfx/scheduler"
	"github.com/ik5/soundfx/session"
	"github.com/ik5/soundfx/waveform"
)

type Editor struct {
	cfg       config.Config
	proj      project.Project
	device    playback.Device
	backend   render.Backend
	renderer  *render.Renderer
	sched     *scheduler.Scheduler
	schedOpts []scheduler.Option
	listener  func(Event)
	autoPlay  bool

	mu            sync.Mutex
	id            string
	sess          *session.Session
	sliders       effects.Sliders
	preview       *audio.Buffer
	previewParams effects.Params
	trim          *mutate.Range
	levels        waveform.Levels
	// gen changes whenever a preview request is issued or the adjustment is
	// dropped; a render result is installed only for the gen it was
	// requested in
	gen uint64

	// playback state is guarded separately because device callbacks may
	// arrive while mu is held
	playMu    sync.Mutex
	playhead  float64
	playToken uint64
}

func New(cfg config.Config, proj project.Project, opts ...Option) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:      cfg,
		proj:     proj,
		device:   playback.Silent{},
		autoPlay: true,
		playhead: -1,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.renderer = render.NewRenderer(e.backend, cfg.Render())
	e.sched = scheduler.New(e.renderer, cfg.Debounce, e.schedOpts...)

	return e, nil
}

func (e *Editor) emit(ev Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

// Open loads id from the project and starts a fresh session for it. Pending
// previews and playback of the previous sound are dropped.
func (e *Editor) Open(ctx context.Context, id string) error {
	buf, err := e.proj.GetSampleBuffer(ctx, id)
	if err != nil {
		return fmt.Errorf("open %v: %w", id, err)
	}

	e.Stop()

	e.mu.Lock()
	if e.id != "" {
		e.sched.Reset(e.id)
	}
	e.id = id
	e.sess = session.New(buf, session.WithLimit(e.cfg.UndoLimit))
	e.clearAdjust()
	err = e.refresh()
	e.mu.Unlock()

	if err != nil {
		return err
	}

	logger.Tf(ctx, "editor: open %v, samples=%v, rate=%v", id, buf.Len(), buf.SampleRate())
	e.emit(Event{Kind: EventOpened, ID: id})
	return nil
}

// clearAdjust drops slider, preview and trim state. Callers hold mu.
func (e *Editor) clearAdjust() {
	e.gen++
	e.sliders = effects.Sliders{}
	e.preview = nil
	e.previewParams = effects.Params{}
	e.trim = nil
	if e.sess != nil {
		e.sess.SetAdjusting(false)
	}
}

// display is the buffer shown and played: the preview when there is one.
func (e *Editor) display() *audio.Buffer {
	if e.preview != nil {
		return e.preview
	}
	return e.sess.Current()
}

// refresh recomputes the waveform of the displayed buffer. Callers hold mu.
func (e *Editor) refresh() error {
	var opts []waveform.Option
	if e.cfg.DisplayCeiling > 0 {
		opts = append(opts, waveform.WithCeiling(e.cfg.DisplayCeiling))
	}

	levels, err := waveform.Downsample(e.display(), e.cfg.ChunkSize, opts...)
	if err != nil {
		return err
	}
	e.levels = levels
	return nil
}

func (e *Editor) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Name returns the display name of the open sound.
func (e *Editor) Name(ctx context.Context) (string, error) {
	namer, ok := e.proj.(project.Namer)
	if !ok {
		return "", ErrNoNames
	}

	id := e.ID()
	if id == "" {
		return "", ErrNoSession
	}
	return namer.SoundName(ctx, id)
}

// Rename changes the display name of the open sound. Surrounding space is
// dropped and the name must not end up empty.
func (e *Editor) Rename(ctx context.Context, name string) error {
	namer, ok := e.proj.(project.Namer)
	if !ok {
		return ErrNoNames
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty sound name", effects.ErrInvalidParameter)
	}

	id := e.ID()
	if id == "" {
		return ErrNoSession
	}
	if err := namer.RenameSound(ctx, id, name); err != nil {
		return err
	}

	logger.Tf(ctx, "editor: renamed %v to %q", id, name)
	e.emit(Event{Kind: EventRenamed, ID: id})
	return nil
}

// Levels returns the waveform of the preview, or of the committed buffer
// when no preview exists.
func (e *Editor) Levels() waveform.Levels {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.levels
}

// Current returns the committed buffer.
func (e *Editor) Current() *audio.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return nil
	}
	return e.sess.Current()
}

// Preview returns the latest preview render, or nil.
func (e *Editor) Preview() *audio.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preview
}

func (e *Editor) Sliders() effects.Sliders {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sliders
}

// Activate switches to effect kind at slider value 0, cancelling any other
// adjustment. Activating the effect that is already active turns it off.
// It reports whether kind is active afterwards.
func (e *Editor) Activate(kind effects.Kind) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.activate(kind)
}

// activate is Activate for callers holding mu.
func (e *Editor) activate(kind effects.Kind) (bool, error) {
	if e.sess == nil {
		return false, ErrNoSession
	}

	_, wasActive := e.sliders.Get(kind)

	e.sched.Reset(e.id)
	e.clearAdjust()

	if !wasActive {
		e.sliders.Set(kind, 0)
		e.sess.SetAdjusting(true)
	}

	return !wasActive, e.refresh()
}

// Update moves the active slider to value and schedules a preview render.
func (e *Editor) Update(ctx context.Context, value float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return ErrNoSession
	}

	kind, ok := e.sliders.Active()
	if !ok {
		return ErrNotActive
	}

	if kind != effects.Volume && !(value >= 0 && value <= 1) {
		return fmt.Errorf("%w: %v slider %v outside [0, 1]", effects.ErrInvalidParameter, kind, value)
	}

	next := e.sliders
	next.Set(kind, value)

	p := effects.Map(next)
	if err := p.Validate(); err != nil {
		return err
	}

	e.sliders = next
	e.gen++

	id, gen := e.id, e.gen
	_, err := e.sched.Request(ctx, id, e.sess.Current(), p, func(buf *audio.Buffer, err error) func() {
		return e.applyPreview(ctx, id, gen, p, buf, err)
	})
	return err
}

// applyPreview installs a finished render and returns the listener
// notification, which runs after the scheduler released the render.
func (e *Editor) applyPreview(ctx context.Context, id string, gen uint64, p effects.Params, buf *audio.Buffer, err error) func() {
	e.mu.Lock()
	if e.id != id || e.sess == nil || e.gen != gen {
		e.mu.Unlock()
		logger.Tf(ctx, "editor: drop preview %v %v, superseded", id, p)
		return nil
	}

	// a failed render leaves the committed buffer as the display
	e.preview, e.previewParams = buf, p
	if err != nil {
		e.preview, e.previewParams = nil, effects.Params{}
		logger.Wf(ctx, "editor: preview %v %v err %+v", id, p, err)
	}
	_ = e.refresh()

	play := e.autoPlay && e.preview != nil
	e.mu.Unlock()

	if play {
		if err := e.playBuffer(buf, 0, 1); err != nil {
			logger.Wf(ctx, "editor: play preview %v err %+v", id, err)
		}
	}

	return func() { e.emit(Event{Kind: EventPreview, ID: id, Err: err}) }
}

// Submit commits the active effect. The latest preview is reused when it
// was rendered from the current slider values; otherwise the effect is
// rendered now.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()

	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}

	kind, ok := e.sliders.Active()
	if !ok {
		e.mu.Unlock()
		return ErrNotActive
	}

	p := effects.Map(e.sliders)
	e.sched.Reset(e.id)

	out := e.preview
	if out == nil || !e.previewParams.Equal(p) {
		var err error
		if out, err = e.renderer.Render(ctx, e.sess.Current(), p); err != nil {
			e.preview = nil
			_ = e.refresh()
			e.mu.Unlock()
			return err
		}
	}

	err := e.commit(ctx, out, "submit "+kind.String())
	e.mu.Unlock()

	if err == nil {
		e.emit(Event{Kind: EventCommitted, ID: e.ID()})
	}
	return err
}

// Cancel drops the active adjustment and its preview.
func (e *Editor) Cancel() {
	e.mu.Lock()
	id := e.id
	e.dropAdjust()
	e.mu.Unlock()

	e.emit(Event{Kind: EventCancelled, ID: id})
}

// dropAdjust abandons the adjustment together with any preview still
// waiting or rendering. Callers hold mu.
func (e *Editor) dropAdjust() {
	if e.sess == nil {
		return
	}
	e.sched.Reset(e.id)
	e.clearAdjust()
	_ = e.refresh()
}

// commit writes next to the project and records the previous buffer for
// undo. The session is only changed once the project accepted next.
// Callers hold mu.
func (e *Editor) commit(ctx context.Context, next *audio.Buffer, op string) error {
	if err := e.proj.SetSampleBuffer(ctx, e.id, next); err != nil {
		return fmt.Errorf("%v %v: %w", op, e.id, err)
	}

	e.sess.Commit(next)
	e.clearAdjust()
	if err := e.refresh(); err != nil {
		return err
	}

	e.notify(ctx, op, next)
	return nil
}

func (e *Editor) notify(ctx context.Context, op string, buf *audio.Buffer) {
	if err := e.proj.NotifyBufferChanged(ctx, e.id); err != nil {
		logger.Wf(ctx, "editor: notify %v err %+v", e.id, err)
	}
	logger.Tf(ctx, "editor: %v %v, samples=%v", op, e.id, buf.Len())
}

// AdjustTrim places trim markers without committing, cancelling any effect
// adjustment.
func (e *Editor) AdjustTrim(r mutate.Range) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return ErrNoSession
	}

	if _, _, err := r.Indices(e.sess.Current().Len()); err != nil {
		return err
	}

	if e.trim == nil {
		e.dropAdjust()
	}

	e.trim = &r
	e.sess.SetAdjusting(true)
	return nil
}

// TrimMarkers returns the markers placed by AdjustTrim.
func (e *Editor) TrimMarkers() (mutate.Range, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.trim == nil {
		return mutate.Range{}, false
	}
	return *e.trim, true
}

func (e *Editor) edit(ctx context.Context, op string, fn func(*audio.Buffer) (*audio.Buffer, error)) error {
	e.mu.Lock()

	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}

	next, err := fn(e.sess.Current())
	if err == nil {
		e.sched.Reset(e.id)
		err = e.commit(ctx, next, op)
	}
	id := e.id
	e.mu.Unlock()

	if err == nil {
		e.emit(Event{Kind: EventCommitted, ID: id})
	}
	return err
}

// Trim keeps the part of the committed buffer selected by r.
func (e *Editor) Trim(ctx context.Context, r mutate.Range) error {
	return e.edit(ctx, "trim "+r.String(), func(cur *audio.Buffer) (*audio.Buffer, error) {
		return mutate.Trim(cur, r)
	})
}

// Reverse reverses the committed buffer.
func (e *Editor) Reverse(ctx context.Context) error {
	return e.edit(ctx, "reverse", func(cur *audio.Buffer) (*audio.Buffer, error) {
		return mutate.Reverse(cur), nil
	})
}

// Restore commits the buffer the session started with.
func (e *Editor) Restore(ctx context.Context) error {
	e.mu.Lock()

	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}

	orig := e.sess.Original()
	err := e.proj.SetSampleBuffer(ctx, e.id, orig)
	if err == nil {
		e.sched.Reset(e.id)
		e.sess.Restore()
		e.clearAdjust()
		_ = e.refresh()
		e.notify(ctx, "restore", orig)
	}
	id := e.id
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("restore %v: %w", id, err)
	}
	e.emit(Event{Kind: EventCommitted, ID: id})
	return nil
}

func (e *Editor) history(ctx context.Context, op string, step, revert func() (*audio.Buffer, error)) error {
	e.mu.Lock()

	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if e.sess.Adjusting() {
		e.mu.Unlock()
		return ErrAdjusting
	}

	buf, err := step()
	if err == nil {
		if err = e.proj.SetSampleBuffer(ctx, e.id, buf); err != nil {
			_, _ = revert()
			err = fmt.Errorf("%v %v: %w", op, e.id, err)
		} else {
			_ = e.refresh()
			e.notify(ctx, op, buf)
		}
	}
	id := e.id
	e.mu.Unlock()

	if err == nil {
		e.emit(Event{Kind: EventCommitted, ID: id})
	}
	return err
}

func (e *Editor) Undo(ctx context.Context) error {
	return e.history(ctx, "undo", e.sessUndo, e.sessRedo)
}

func (e *Editor) Redo(ctx context.Context) error {
	return e.history(ctx, "redo", e.sessRedo, e.sessUndo)
}

func (e *Editor) sessUndo() (*audio.Buffer, error) { return e.sess.Undo() }
func (e *Editor) sessRedo() (*audio.Buffer, error) { return e.sess.Redo() }

func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess != nil && e.sess.CanUndo()
}

func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess != nil && e.sess.CanRedo()
}

// Close drops pending previews, waits for in-flight renders and stops
// playback.
func (e *Editor) Close() error {
	err := e.sched.Close()
	e.Stop()
	return err
}
