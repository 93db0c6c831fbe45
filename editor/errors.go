// SPDX-License-Identifier: EPL-2.0

package editor

import "errors"

var (
	ErrNoSession = errors.New("no sound open")
	ErrAdjusting = errors.New("effect adjustment in progress")
	ErrNotActive = errors.New("no effect active")
	ErrNoNames   = errors.New("project does not keep sound names")
)
