package task

import (
	"testing"
	"time"

	"github.com/bthci/hcitest/hci"
	"github.com/bthci/hcitest/hci/cmd"
	"github.com/bthci/hcitest/hci/evt"
	"github.com/bthci/hcitest/hci/socket"
	"github.com/bthci/hcitest/hcierr"
)

func eventDatagram(code uint8, params []byte) []byte {
	buf := []byte{byte(hci.PacketTypeEvent), code, uint8(len(params))}
	return append(buf, params...)
}

func commandCompleteParams(opcode uint16, rp []byte) []byte {
	return append([]byte{0x01, byte(opcode), byte(opcode >> 8)}, rp...)
}

func commandStatusParams(status uint8, opcode uint16) []byte {
	return []byte{status, 0x01, byte(opcode), byte(opcode >> 8)}
}

func newTestTask() (*Task, *socket.ScriptedConn) {
	conn := socket.NewScriptedConn()
	sock := socket.New(conn, nil)
	return New(sock, nil), conn
}

// TestSendCmdWaitCompleteSkipsUnrelatedEvents mirrors S4: a Number Of
// Completed Packets event precedes the Command Complete for the opcode the
// caller is actually waiting on.
func TestSendCmdWaitCompleteSkipsUnrelatedEvents(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.LESetAdvertisingParameters{}
	if c.OpCode() != 0x2006 {
		t.Fatalf("opcode = 0x%04x, want 0x2006", c.OpCode())
	}

	noOfCompleted := eventDatagram(evt.CodeNumberOfCompletedPackets, []byte{0x01, 0x40, 0x00, 0x01, 0x00})
	complete := eventDatagram(evt.CodeCommandComplete, commandCompleteParams(c.OpCode(), []byte{0x00}))
	conn.Enqueue(noOfCompleted)
	conn.Enqueue(complete)

	cc, err := tk.SendCmdWaitComplete(c, time.Second)
	if err != nil {
		t.Fatalf("SendCmdWaitComplete: %v", err)
	}
	if cc.Opcode != c.OpCode() {
		t.Fatalf("opcode = 0x%04x, want 0x%04x", cc.Opcode, c.OpCode())
	}

	written := conn.Written()
	if len(written) != 1 {
		t.Fatalf("wrote %d datagrams, want 1", len(written))
	}

	recent := tk.RecentlyIgnored()
	if len(recent) != 1 || recent[0] != "*evt.NumberOfCompletedPackets" {
		t.Fatalf("RecentlyIgnored() = %v, want [*evt.NumberOfCompletedPackets]", recent)
	}
}

func TestSendCmdWaitStatus(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.CreateConnection{}
	conn.Enqueue(eventDatagram(evt.CodeCommandStatus, commandStatusParams(0x00, c.OpCode())))

	cs, err := tk.SendCmdWaitStatus(c, time.Second)
	if err != nil {
		t.Fatalf("SendCmdWaitStatus: %v", err)
	}
	if cs.Status != 0 || cs.Opcode != c.OpCode() {
		t.Fatalf("unexpected CommandStatus: %+v", cs)
	}
}

func TestSendCmdWaitCompleteCheckStatusRaisesCommandError(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.Reset{}
	const nonZeroStatus = 0x0C // Command Disallowed
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(c.OpCode(), []byte{nonZeroStatus})))

	_, err := tk.SendCmdWaitCompleteCheckStatus(c, time.Second)
	cmdErr, ok := err.(*hcierr.CommandError)
	if !ok {
		t.Fatalf("err = %v (%T), want *hcierr.CommandError", err, err)
	}
	if cmdErr.Status != nonZeroStatus || cmdErr.Opcode != c.OpCode() {
		t.Fatalf("unexpected CommandError: %+v", cmdErr)
	}
}

func TestSendCmdWaitCompleteCheckStatusOK(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.Reset{}
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(c.OpCode(), []byte{0x00})))

	cc, err := tk.SendCmdWaitCompleteCheckStatus(c, time.Second)
	if err != nil {
		t.Fatalf("SendCmdWaitCompleteCheckStatus: %v", err)
	}
	if cc.Opcode != c.OpCode() {
		t.Fatalf("opcode mismatch")
	}
}

// TestWaitEventTimeoutIsTight exercises P7: a predicate that never matches
// must raise Timeout roughly at the requested budget, never long after it.
func TestWaitEventTimeoutIsTight(t *testing.T) {
	tk, conn := newTestTask()
	_ = conn // no events enqueued; the wait must time out on its own

	const budget = 80 * time.Millisecond
	start := time.Now()
	_, err := tk.WaitEvent(func(evt.Event) bool { return false }, budget)
	elapsed := time.Since(start)

	if _, ok := err.(*hcierr.Timeout); !ok {
		t.Fatalf("err = %v (%T), want *hcierr.Timeout", err, err)
	}
	if elapsed < budget {
		t.Fatalf("elapsed %v < budget %v", elapsed, budget)
	}
	if elapsed > budget+100*time.Millisecond {
		t.Fatalf("elapsed %v exceeds budget %v by more than epsilon", elapsed, budget)
	}
}

// TestSendCmdWaitCompleteReadBDAddr mirrors S1 end to end through the task
// layer rather than the socket layer directly.
func TestSendCmdWaitCompleteReadBDAddr(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.ReadBDAddr{}
	rp := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(c.OpCode(), rp)))

	cc, err := tk.SendCmdWaitComplete(c, time.Second)
	if err != nil {
		t.Fatalf("SendCmdWaitComplete: %v", err)
	}
	bdAddrRP, ok := cc.ReturnParams.(*cmd.ReadBDAddrRP)
	if !ok {
		t.Fatalf("ReturnParams = %T", cc.ReturnParams)
	}
	want := [6]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	if bdAddrRP.BDAddr != want {
		t.Fatalf("bd_addr = % X, want % X", bdAddrRP.BDAddr, want)
	}

	written := conn.Written()
	if len(written) != 1 {
		t.Fatalf("wrote %d datagrams, want 1", len(written))
	}
	wantOpcode := c.OpCode()
	gotOpcode := uint16(written[0][1]) | uint16(written[0][2])<<8
	if gotOpcode != wantOpcode {
		t.Fatalf("wrote opcode 0x%04x, want 0x%04x", gotOpcode, wantOpcode)
	}
}
