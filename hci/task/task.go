// Package task implements the task layer (§4.7): given a socket, it exposes
// the command/event primitives scenario code and the protocol helpers build
// on. It knows nothing about workers or coordination — a task only ever
// touches the one socket it was built with.
package task

import (
	"fmt"
	"time"

	"github.com/bthci/hcitest/hci/cmd"
	"github.com/bthci/hcitest/hci/evt"
	"github.com/bthci/hcitest/hci/socket"
	"github.com/bthci/hcitest/hcierr"
	"github.com/hashicorp/golang-lru"
	"github.com/op/go-logging"
)

// ignoredHistorySize bounds the recently-ignored-event cache WaitEvent
// feeds (§4.7 "log and discard"): enough to describe what a ParseError
// happened after, without growing unbounded across a long-running worker.
const ignoredHistorySize = 32

// Task sequences commands and events over one socket. It is not safe for
// concurrent use — a worker is single-threaded (§5) and owns exactly one
// Task per socket.
type Task struct {
	sock *socket.Socket
	log  *logging.Logger

	ignored    *lru.Cache
	ignoredSeq uint64
}

// New builds a Task over sock. log may be nil.
func New(sock *socket.Socket, log *logging.Logger) *Task {
	cache, err := lru.New(ignoredHistorySize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// ignoredHistorySize never is.
		panic(err)
	}
	return &Task{sock: sock, log: log, ignored: cache}
}

// RecentlyIgnored returns a snapshot of the events WaitEvent most recently
// skipped past (oldest first), for diagnostics when a ParseError follows a
// run of discarded events.
func (t *Task) RecentlyIgnored() []string {
	keys := t.ignored.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := t.ignored.Peek(k); ok {
			out = append(out, v.(string))
		}
	}
	return out
}

func (t *Task) infof(format string, args ...interface{}) {
	if t.log != nil {
		t.log.Infof(format, args...)
	}
}

func (t *Task) warningf(format string, args ...interface{}) {
	if t.log != nil {
		t.log.Warningf(format, args...)
	}
}

// remaining computes what's left of a wall-clock budget that started at
// entry, consistent with §4.7's "timeout applies to the call entry, each
// receive uses the remaining budget". A non-positive input timeout means
// block indefinitely, matching socket.Socket's own convention.
func remaining(entry time.Time, timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 0
	}
	left := timeout - time.Since(entry)
	if left <= 0 {
		// Force the next recv to time out immediately rather than silently
		// blocking past the caller's budget.
		return time.Nanosecond
	}
	return left
}

func (t *Task) nextEvent(entry time.Time, timeout time.Duration) (evt.Event, error) {
	body, err := t.sock.RecvEvent(remaining(entry, timeout))
	if err != nil {
		return nil, err
	}
	ev, err := evt.Parse(body)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// WaitEvent pulls events until predicate holds, logging and discarding every
// other event along the way (§4.7, §7 propagation policy 1). timeout <= 0
// blocks indefinitely; otherwise a Timeout propagates once the wall-clock
// budget from entry is exhausted.
func (t *Task) WaitEvent(predicate func(evt.Event) bool, timeout time.Duration) (evt.Event, error) {
	entry := time.Now()
	for {
		ev, err := t.nextEvent(entry, timeout)
		if err != nil {
			return nil, err
		}
		if predicate(ev) {
			return ev, nil
		}
		t.recordIgnored(ev)
		t.infof("ignored event while waiting: %T", ev)
	}
}

func (t *Task) recordIgnored(ev evt.Event) {
	t.ignoredSeq++
	t.ignored.Add(t.ignoredSeq, fmt.Sprintf("%T", ev))
}

// SendCmdWaitComplete sends c and returns the first CommandComplete whose
// opcode matches c.OpCode(), discarding anything else in between (P6).
func (t *Task) SendCmdWaitComplete(c cmd.Command, timeout time.Duration) (*evt.CommandComplete, error) {
	if err := t.sock.SendCommand(c.OpCode(), c.Serialize()); err != nil {
		return nil, err
	}
	ev, err := t.WaitEvent(func(e evt.Event) bool {
		cc, ok := e.(*evt.CommandComplete)
		return ok && cc.Opcode == c.OpCode()
	}, timeout)
	if err != nil {
		return nil, err
	}
	return ev.(*evt.CommandComplete), nil
}

// SendCmdWaitStatus sends c and returns the first CommandStatus whose opcode
// matches c.OpCode().
func (t *Task) SendCmdWaitStatus(c cmd.Command, timeout time.Duration) (*evt.CommandStatus, error) {
	if err := t.sock.SendCommand(c.OpCode(), c.Serialize()); err != nil {
		return nil, err
	}
	ev, err := t.WaitEvent(func(e evt.Event) bool {
		cs, ok := e.(*evt.CommandStatus)
		return ok && cs.Opcode == c.OpCode()
	}, timeout)
	if err != nil {
		return nil, err
	}
	return ev.(*evt.CommandStatus), nil
}

// SendCmdWaitCompleteCheckStatus is SendCmdWaitComplete plus a status check:
// a non-zero status byte in the return params raises CommandError to the
// scenario (§7). Only return-parameter shapes starting with a status byte
// (cmd.StatusRP and everything that embeds it) can be checked this way; a
// command whose return params failed to parse surfaces that parse error
// instead.
func (t *Task) SendCmdWaitCompleteCheckStatus(c cmd.Command, timeout time.Duration) (*evt.CommandComplete, error) {
	cc, err := t.SendCmdWaitComplete(c, timeout)
	if err != nil {
		return nil, err
	}
	if cc.ReturnParamsErr != nil {
		return nil, cc.ReturnParamsErr
	}
	status, ok := statusOf(cc.ReturnParams)
	if !ok {
		return cc, nil
	}
	if status != 0 {
		t.warningf("command 0x%04x failed with status 0x%02x", c.OpCode(), status)
		return cc, &hcierr.CommandError{Opcode: c.OpCode(), Status: status}
	}
	return cc, nil
}

// statusHolder is implemented by every return-parameter struct whose first
// field is the status byte (cmd.StatusRP and everything that embeds it, plus
// every hand-written RP in the catalogue that starts the same way).
type statusHolder interface {
	CommandStatus() uint8
}

func statusOf(rp cmd.ReturnParams) (uint8, bool) {
	h, ok := rp.(statusHolder)
	if !ok {
		return 0, false
	}
	return h.CommandStatus(), true
}
