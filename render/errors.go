// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	ErrRenderFailure = errors.New("render failed")
	ErrGraphClosed   = errors.New("render graph already closed")
)
