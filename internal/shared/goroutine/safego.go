// Package goroutine launches goroutines that log a panic instead of crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/perkloop/perkloop/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic is logged with its stack trace
// under the given name.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover logs a recovered panic. It must be deferred directly.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
