// SPDX-License-Identifier: EPL-2.0

package render

import (
	"io"
	"os"
	"testing"

	"github.com/ossrs/go-oryx-lib/logger"
)

func TestMain(m *testing.M) {
	// Disable the logger during all tests.
	logger.Switch(io.Discard)

	os.Exit(m.Run())
}
