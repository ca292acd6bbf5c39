package hcitest

import (
	"fmt"
	"runtime/debug"

	"github.com/op/go-logging"
)

// RecoverToLog runs f, logging and swallowing any panic instead of letting
// it propagate, and returns the recovered value (nil if f didn't panic).
// worker.Worker.RunMain wraps its scenario callback in this so that one
// worker's panic becomes a logged failure on its own goroutine rather than
// bringing down the whole coordinator process (§5: worker failures are
// isolated and reported, not fatal to the run); it uses the returned value
// to turn the panic into the error it reports on the worker's terminated
// and aborted channels.
func RecoverToLog(f func(), log *logging.Logger) (recovered interface{}) {
	defer func() {
		if x := recover(); x != nil {
			recovered = x
			if log != nil {
				log.Error(fmt.Sprintf("run time panic: %v", x))
				log.Error(string(debug.Stack()))
			}
		}
	}()
	f()
	return
}
