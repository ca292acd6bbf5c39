package socket

import (
	"io"
	"sync"
	"time"

	"github.com/bthci/hcitest/hcierr"
)

// ScriptedConn is a Conn whose reads are driven by pre-enqueued chunks
// rather than a real kernel socket. It is used both by unit tests in this
// module and as the seed "mock controller" for the end-to-end scenarios in
// spec.md §8 (S1–S6): Enqueue lets a test control exactly how a packet is
// split across recv boundaries.
type ScriptedConn struct {
	mu      sync.Mutex
	written [][]byte
	chunks  chan []byte
	closed  bool
}

// NewScriptedConn returns an empty ScriptedConn.
func NewScriptedConn() *ScriptedConn {
	return &ScriptedConn{chunks: make(chan []byte, 256)}
}

// Enqueue appends one chunk that a future ReadTimeout call will return
// verbatim. Splitting one logical packet across multiple Enqueue calls
// simulates a partial recv.
func (c *ScriptedConn) Enqueue(chunk []byte) {
	cp := append([]byte(nil), chunk...)
	c.chunks <- cp
}

// Written returns every buffer previously passed to Write, in order.
func (c *ScriptedConn) Written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.written))
	copy(out, c.written)
	return out
}

func (c *ScriptedConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	c.written = append(c.written, append([]byte(nil), p...))
	c.mu.Unlock()
	return len(p), nil
}

// ReadTimeout returns the next enqueued chunk, or a Timeout if none arrives
// within timeout (timeout <= 0 blocks indefinitely).
func (c *ScriptedConn) ReadTimeout(buf []byte, timeout time.Duration) (int, error) {
	var fire <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		fire = t.C
	}
	select {
	case chunk, ok := <-c.chunks:
		if !ok {
			return 0, io.EOF
		}
		n := copy(buf, chunk)
		return n, nil
	case <-fire:
		return 0, &hcierr.Timeout{Op: "mock socket recv"}
	}
}

func (c *ScriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.chunks)
		c.closed = true
	}
	return nil
}
