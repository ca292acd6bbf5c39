package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bthci/hcitest/hci"
	"github.com/bthci/hcitest/hci/cmd"
	"github.com/bthci/hcitest/hci/evt"
	"github.com/bthci/hcitest/hci/socket"
	"github.com/bthci/hcitest/worker"
)

func eventDatagram(code uint8, params []byte) []byte {
	buf := []byte{byte(hci.PacketTypeEvent), code, uint8(len(params))}
	return append(buf, params...)
}

func commandCompleteParams(opcode uint16, rp []byte) []byte {
	return append([]byte{0x01, byte(opcode), byte(opcode >> 8)}, rp...)
}

// scriptedOpenConn returns one fresh ScriptedConn per devID, each
// preloaded with a Read BD_ADDR response whose low byte is devID so tests
// can tell workers apart (P9's "separate simulated sockets").
func scriptedOpenConn(conns map[int]*socket.ScriptedConn) OpenConn {
	return func(devID int) (socket.Conn, error) {
		conn := socket.NewScriptedConn()
		bdAddr := []byte{byte(devID), 0, 0, 0, 0, 0}
		rp := append([]byte{0x00}, bdAddr...)
		conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams((&cmd.ReadBDAddr{}).OpCode(), rp)))
		conns[devID] = conn
		return conn, nil
	}
}

// TestAddWorkerIsolatesSockets covers P9: two workers opened on separate
// simulated sockets each read back their own BD_ADDR and never see bytes
// meant for the other.
func TestAddWorkerIsolatesSockets(t *testing.T) {
	conns := map[int]*socket.ScriptedConn{}
	c := New(nil, scriptedOpenConn(conns))

	if err := c.AddWorker("a", 0, func(ctx context.Context, w *worker.Worker) error { return nil }); err != nil {
		t.Fatalf("AddWorker a: %v", err)
	}
	if err := c.AddWorker("b", 1, func(ctx context.Context, w *worker.Worker) error { return nil }); err != nil {
		t.Fatalf("AddWorker b: %v", err)
	}

	a := c.Worker("a")
	b := c.Worker("b")
	if a.BDAddr[0] != 0 {
		t.Fatalf("worker a BDAddr[0] = %d, want 0", a.BDAddr[0])
	}
	if b.BDAddr[0] != 1 {
		t.Fatalf("worker b BDAddr[0] = %d, want 1", b.BDAddr[0])
	}
	if len(conns[0].Written()) == 0 || len(conns[1].Written()) == 0 {
		t.Fatalf("expected both sockets to have received a command")
	}
}

// TestRunTerminatesSiblingsOnWorkerFailure covers P10/S6: worker A fails
// after "connecting"; worker B is blocked awaiting a pipe message. Run must
// terminate B and return non-zero within a bounded time.
func TestRunTerminatesSiblingsOnWorkerFailure(t *testing.T) {
	conns := map[int]*socket.ScriptedConn{}
	c := New(nil, scriptedOpenConn(conns))

	connected := make(chan struct{})
	if err := c.AddWorker("a", 0, func(ctx context.Context, w *worker.Worker) error {
		close(connected)
		return errors.New("worker a failed after connecting")
	}); err != nil {
		t.Fatalf("AddWorker a: %v", err)
	}
	if err := c.AddWorker("b", 1, func(ctx context.Context, w *worker.Worker) error {
		_, err := w.RecvFromCoordinator(ctx, 0) // blocks until ctx is cancelled
		return err
	}); err != nil {
		t.Fatalf("AddWorker b: %v", err)
	}

	start := time.Now()
	rc := c.Run(func(ctx context.Context, c *Coordinator) int {
		<-connected
		<-ctx.Done()
		return 0
	})
	elapsed := time.Since(start)

	if rc == 0 {
		t.Fatalf("Run returned 0, want non-zero on worker failure")
	}
	if elapsed > 2*time.Second {
		t.Fatalf("Run took %v to terminate siblings, want < 2s", elapsed)
	}
}

// TestRunReturnsMainsCodeOnSuccess: no worker fails, Run returns whatever
// main() returned.
func TestRunReturnsMainsCodeOnSuccess(t *testing.T) {
	conns := map[int]*socket.ScriptedConn{}
	c := New(nil, scriptedOpenConn(conns))

	if err := c.AddWorker("a", 0, func(ctx context.Context, w *worker.Worker) error {
		<-ctx.Done()
		return nil
	}); err != nil {
		t.Fatalf("AddWorker a: %v", err)
	}

	rc := c.Run(func(ctx context.Context, c *Coordinator) int {
		return 7
	})
	if rc != 7 {
		t.Fatalf("Run returned %d, want 7", rc)
	}
}
