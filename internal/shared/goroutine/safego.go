// Package goroutine starts background work that must not take the process
// down with it.
package goroutine

import (
	"runtime/debug"

	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// Recover logs a panic under name. Call it deferred.
func Recover(log logger.Interface, name string) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorw("background task panicked",
		"task", name,
		"panic", r,
		"stack", string(debug.Stack()),
	)
}

// SafeGo runs fn on its own goroutine behind Recover.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}
