// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"github.com/ik5/soundfx/playback"
	"github.com/ik5/soundfx/render"
	"github.com/ik5/soundfx/scheduler"
)

// EventKind tells listeners what changed.
type EventKind int

const (
	// EventOpened follows Open.
	EventOpened EventKind = iota
	// EventPreview follows a finished preview render; Err is set when it failed.
	EventPreview
	// EventCommitted follows every change of the committed buffer.
	EventCommitted
	// EventCancelled follows Cancel.
	EventCancelled
	// EventStopped follows the end of playback.
	EventStopped
	// EventRenamed follows Rename.
	EventRenamed
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventPreview:
		return "preview"
	case EventCommitted:
		return "committed"
	case EventCancelled:
		return "cancelled"
	case EventStopped:
		return "stopped"
	case EventRenamed:
		return "renamed"
	}
	return "unknown"
}

type Event struct {
	Kind EventKind
	ID   string
	Err  error
}

type Option func(*Editor)

// WithDevice sets the preview device. The default plays nothing.
func WithDevice(d playback.Device) Option {
	return func(e *Editor) { e.device = d }
}

// WithBackend sets the render backend. The default renders offline.
func WithBackend(b render.Backend) Option {
	return func(e *Editor) { e.backend = b }
}

// WithSchedulerOptions passes options to the preview scheduler.
func WithSchedulerOptions(opts ...scheduler.Option) Option {
	return func(e *Editor) { e.schedOpts = append(e.schedOpts, opts...) }
}

// WithListener registers fn for editor events. fn runs without editor locks
// held and may call back into the editor, Close included.
func WithListener(fn func(Event)) Option {
	return func(e *Editor) { e.listener = fn }
}

// WithAutoPlay plays every finished preview. It is on by default.
func WithAutoPlay(v bool) Option {
	return func(e *Editor) { e.autoPlay = v }
}
