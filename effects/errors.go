// SPDX-License-Identifier: EPL-2.0

package effects

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid effect parameter")
	ErrUnknownKind      = errors.New("unknown effect kind")
)
