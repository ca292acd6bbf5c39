// Package worker implements the worker (C8): a single controller-owning
// unit of a scenario run. The original design gives each worker its own OS
// process, a pipe to the coordinator and a cross-process binary event; this
// re-expression (§9 "per-worker process with shared signal + pipe → tasks +
// channels") gives each worker its own goroutine instead, a capacity-1
// channel standing in for the binary event, and a pair of typed channels
// standing in for the pipe. Interrupt propagation (worker → coordinator
// SIGINT) becomes a distinguished Aborted value sent on the coordinator's
// error fan-in channel.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/bthci/hcitest"
	"github.com/bthci/hcitest/hci/task"
	"github.com/bthci/hcitest/hcierr"
	"github.com/op/go-logging"
)

// Main is a scenario's worker-side entry point: the code that runs on the
// worker's own goroutine, using w to talk to the controller (w.Task) and to
// the coordinator (Send/Recv/Wait/Signal). Returning an error fails the
// worker the same way an uncaught exception would in the original design.
type Main func(ctx context.Context, w *Worker) error

// Aborted is the distinguished value a worker sends on the coordinator's
// error fan-in channel when its Main returns an error or panics (§9, §7
// propagation policy 2).
type Aborted struct {
	Worker string
	Cause  error
}

func (a *Aborted) Error() string {
	return fmt.Sprintf("worker %q aborted: %v", a.Worker, a.Cause)
}

// Worker holds everything a scenario needs for one controller: its name
// (the attribute_name a config binds it to), its BD_ADDR (read once at
// construction), and its task layer. The channel fields implement the
// wait/signal/send/recv contract of §4.8; Name/BDAddr/Task are read-only
// after construction.
type Worker struct {
	Name   string
	BDAddr [6]byte
	Task   *task.Task

	log *logging.Logger

	toWorker chan interface{}
	toCoord  chan interface{}
	signal   chan struct{}

	terminated chan<- string
	aborted    chan<- error
}

// New builds a Worker. terminated and aborted are the coordinator's shared
// queues (§5 "multi-producer, single-consumer" and "error fan-in"); both may
// be nil in unit tests that exercise a Worker in isolation.
func New(name string, bdAddr [6]byte, t *task.Task, log *logging.Logger, terminated chan<- string, aborted chan<- error) *Worker {
	return &Worker{
		Name:       name,
		BDAddr:     bdAddr,
		Task:       t,
		log:        log,
		toWorker:   make(chan interface{}, 16),
		toCoord:    make(chan interface{}, 16),
		signal:     make(chan struct{}, 1),
		terminated: terminated,
		aborted:    aborted,
	}
}

// Send delivers obj to the worker's pipe inbox. Called by the coordinator's
// main() (§4.9: "main() is expected to use worker.send").
func (w *Worker) Send(obj interface{}) {
	w.toWorker <- obj
}

// RecvFromCoordinator blocks for the next message sent via Send, for at
// most timeout (timeout <= 0 blocks indefinitely) or until ctx is
// cancelled. Called from within the worker's own Main.
func (w *Worker) RecvFromCoordinator(ctx context.Context, timeout time.Duration) (interface{}, error) {
	return recvFrom(ctx, w.toWorker, timeout, "worker recv")
}

// SendToCoordinator delivers obj to the coordinator's inbox for this
// worker. Called from within the worker's own Main.
func (w *Worker) SendToCoordinator(obj interface{}) {
	w.toCoord <- obj
}

// RecvFromWorker blocks for the next message the worker sent via
// SendToCoordinator. Called by the coordinator's main() (§4.9:
// "worker.recv").
func (w *Worker) RecvFromWorker(ctx context.Context, timeout time.Duration) (interface{}, error) {
	return recvFrom(ctx, w.toCoord, timeout, "coordinator recv")
}

func recvFrom(ctx context.Context, ch <-chan interface{}, timeout time.Duration, op string) (interface{}, error) {
	var fire <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		fire = timer.C
	}
	select {
	case obj := <-ch:
		return obj, nil
	case <-fire:
		return nil, &hcierr.Timeout{Op: op}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Signal wakes a pending Wait. Idempotent: if no Wait is pending, the next
// Wait call returns immediately (§4.8 "signal() ... idempotent"), matching
// a capacity-1 channel that never blocks the sender.
func (w *Worker) Signal() {
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Wait blocks until Signal has been called at least once since the last
// Wait, for at most timeout (timeout <= 0 blocks indefinitely) or until ctx
// is cancelled.
func (w *Worker) Wait(ctx context.Context, timeout time.Duration) error {
	var fire <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		fire = timer.C
	}
	select {
	case <-w.signal:
		return nil
	case <-fire:
		return &hcierr.Timeout{Op: "worker wait"}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunMain runs fn on the calling goroutine with panic recovery (§7
// propagation policy 2: "the worker's top-level catches any uncaught
// exception"). On panic or a returned error it pushes w.Name onto the
// terminated queue and an Aborted value onto the abort channel, exactly
// once, so the coordinator can terminate siblings and return non-zero
// (P10, S6).
func (w *Worker) RunMain(ctx context.Context, fn Main) {
	var failure error
	if x := hcitest.RecoverToLog(func() { failure = fn(ctx, w) }, w.log); x != nil {
		failure = fmt.Errorf("worker %q: panic: %v", w.Name, x)
	}

	if failure == nil || failure == context.Canceled {
		return
	}
	if w.log != nil {
		w.log.Warningf("worker %q failed: %v", w.Name, failure)
	}
	if w.terminated != nil {
		select {
		case w.terminated <- w.Name:
		default:
		}
	}
	if w.aborted != nil {
		select {
		case w.aborted <- &Aborted{Worker: w.Name, Cause: failure}:
		default:
		}
	}
}
