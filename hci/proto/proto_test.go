package proto

import (
	"testing"
	"time"

	"github.com/bthci/hcitest/hci"
	"github.com/bthci/hcitest/hci/cmd"
	"github.com/bthci/hcitest/hci/evt"
	"github.com/bthci/hcitest/hci/socket"
	"github.com/bthci/hcitest/hci/task"
)

func eventDatagram(code uint8, params []byte) []byte {
	buf := []byte{byte(hci.PacketTypeEvent), code, uint8(len(params))}
	return append(buf, params...)
}

func commandStatusParams(status uint8, opcode uint16) []byte {
	return []byte{status, 0x01, byte(opcode), byte(opcode >> 8)}
}

func commandCompleteParams(opcode uint16, rp []byte) []byte {
	return append([]byte{0x01, byte(opcode), byte(opcode >> 8)}, rp...)
}

func newTestTask() (*task.Task, *socket.ScriptedConn) {
	conn := socket.NewScriptedConn()
	sock := socket.New(conn, nil)
	return task.New(sock, nil), conn
}

func leConnectionCompleteParams(subCode uint8, handle uint16) []byte {
	return []byte{
		subCode,
		0x00,                               // status
		byte(handle), byte(handle >> 8),    // conn handle
		0x00,                               // role
		0x00,                               // peer addr type
		0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, // peer address
		0x18, 0x00, // conn interval
		0x00, 0x00, // latency
		0x2A, 0x00, // supervision timeout
		0x05, // clock accuracy
	}
}

// TestCreateLEConnectionByWhiteListSetsFilterPolicy mirrors §4.10's
// white-list-initiated connection variant: filter policy must be 0x01 and
// the helper waits through to the connection-complete sub-event.
func TestCreateLEConnectionByWhiteListSetsFilterPolicy(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.LECreateConnection{}
	conn.Enqueue(eventDatagram(evt.CodeCommandStatus, commandStatusParams(0x00, c.OpCode())))
	conn.Enqueue(eventDatagram(evt.CodeLEMeta, leConnectionCompleteParams(evt.SubCodeLEConnectionComplete, 0x0040)))

	ev, err := CreateLEConnectionByWhiteList(tk, c, time.Second)
	if err != nil {
		t.Fatalf("CreateLEConnectionByWhiteList: %v", err)
	}
	if c.InitiatorFilterPolicy != 0x01 {
		t.Fatalf("InitiatorFilterPolicy = 0x%02x, want 0x01", c.InitiatorFilterPolicy)
	}
	cc, ok := ev.(*evt.LEConnectionComplete)
	if !ok || cc.ConnectionHandle != 0x0040 {
		t.Fatalf("got %T (%+v), want *evt.LEConnectionComplete with handle 0x0040", ev, ev)
	}
}

// TestWaitLEConnectionCompleteAcceptsEnhancedVariant covers §4.10's "accept
// either the plain or enhanced variant" rule.
func TestWaitLEConnectionCompleteAcceptsEnhancedVariant(t *testing.T) {
	tk, conn := newTestTask()
	params := []byte{
		evt.SubCodeLEEnhancedConnectionComplete,
		0x00,       // status
		0x41, 0x00, // conn handle
		0x00,                               // role
		0x00,                               // peer addr type
		0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, // peer address
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // local resolvable private address
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // peer resolvable private address
		0x18, 0x00, // conn interval
		0x00, 0x00, // latency
		0x2A, 0x00, // supervision timeout
		0x05, // clock accuracy
	}
	conn.Enqueue(eventDatagram(evt.CodeLEMeta, params))

	ev, err := WaitLEConnectionComplete(tk, time.Second)
	if err != nil {
		t.Fatalf("WaitLEConnectionComplete: %v", err)
	}
	if ev.SubCode() != evt.SubCodeLEEnhancedConnectionComplete {
		t.Fatalf("sub code = 0x%02x, want enhanced", ev.SubCode())
	}
}

// TestSniffModeWaitsForMatchingHandle: a Mode Change for an unrelated
// handle must not satisfy the wait; only the matching handle does.
func TestSniffModeWaitsForMatchingHandle(t *testing.T) {
	tk, conn := newTestTask()
	c := &cmd.SniffMode{ConnectionHandle: 0x0040}
	conn.Enqueue(eventDatagram(evt.CodeCommandStatus, commandStatusParams(0x00, c.OpCode())))
	otherHandleParams := []byte{0x00, 0x41, 0x00, 0x02, 0x10, 0x00}
	conn.Enqueue(eventDatagram(evt.CodeModeChange, otherHandleParams))
	matchingParams := []byte{0x00, 0x40, 0x00, 0x02, 0x10, 0x00}
	conn.Enqueue(eventDatagram(evt.CodeModeChange, matchingParams))

	mc, err := SniffMode(tk, c, time.Second)
	if err != nil {
		t.Fatalf("SniffMode: %v", err)
	}
	if mc.ConnectionHandle != 0x0040 {
		t.Fatalf("ConnectionHandle = 0x%04x, want 0x0040", mc.ConnectionHandle)
	}
}

func TestExitSniffMode(t *testing.T) {
	tk, conn := newTestTask()
	const handle = 0x0040
	c := &cmd.ExitSniffMode{ConnectionHandle: handle}
	conn.Enqueue(eventDatagram(evt.CodeCommandStatus, commandStatusParams(0x00, c.OpCode())))
	conn.Enqueue(eventDatagram(evt.CodeModeChange, []byte{0x00, 0x40, 0x00, 0x00, 0x00, 0x00}))

	mc, err := ExitSniffMode(tk, handle, time.Second)
	if err != nil {
		t.Fatalf("ExitSniffMode: %v", err)
	}
	if mc.ConnectionHandle != handle {
		t.Fatalf("ConnectionHandle = 0x%04x, want 0x%04x", mc.ConnectionHandle, handle)
	}
}

// TestAdvertiseStartSetsChannelMapAndEnables covers §4.10's advertising
// parameter recipe end to end.
func TestAdvertiseStartSetsChannelMapAndEnables(t *testing.T) {
	tk, conn := newTestTask()
	paramsOpcode := (&cmd.LESetAdvertisingParameters{}).OpCode()
	enableOpcode := (&cmd.LESetAdvertiseEnable{}).OpCode()
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(paramsOpcode, []byte{0x00})))
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(enableOpcode, []byte{0x00})))

	if err := AdvertiseStart(tk, 0x00A0, time.Second); err != nil {
		t.Fatalf("AdvertiseStart: %v", err)
	}

	written := conn.Written()
	if len(written) != 2 {
		t.Fatalf("wrote %d datagrams, want 2", len(written))
	}
	channelMap := written[0][len(written[0])-2]
	if channelMap != 0x7 {
		t.Fatalf("channel map = 0x%x, want 0x7", channelMap)
	}
}

func TestAdvertiseStop(t *testing.T) {
	tk, conn := newTestTask()
	enableOpcode := (&cmd.LESetAdvertiseEnable{}).OpCode()
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(enableOpcode, []byte{0x00})))

	if err := AdvertiseStop(tk, time.Second); err != nil {
		t.Fatalf("AdvertiseStop: %v", err)
	}
	written := conn.Written()
	if len(written) != 1 || written[0][len(written[0])-1] != 0 {
		t.Fatalf("unexpected AdvertiseStop write: % X", written)
	}
}

// TestLEEventMaskDerivation covers P8: every feature-bit combination listed
// in §4.10 must OR-accumulate exactly as stated.
func TestLEEventMaskDerivation(t *testing.T) {
	cases := []struct {
		name     string
		features uint64
		want     uint64
	}{
		{"no optional features", 0, 0x1F},
		{"conn-param request (bit 1)", 1 << 1, 0x1F | 0x20},
		{"data length extension (bit 5)", 1 << 5, 0x1F | 0x40},
		{"LL privacy (bit 6)", 1 << 6, 0x1F | 0x780},
		{"LE 2M PHY (bit 8)", 1 << 8, 0x1F | 0x800},
		{"LE Coded PHY (bit 11)", 1 << 11, 0x1F | 0x800},
		{"extended advertising (bit 12)", 1 << 12, 0x1F | 0x71000},
		{"periodic advertising (bit 13)", 1 << 13, 0x1F | 0xE000},
		{"channel selection algorithm 2 (bit 14)", 1 << 14, 0x1F | 0x80000},
	}
	for _, c := range cases {
		if got := LEEventMask(c.features); got != c.want {
			t.Errorf("%s: LEEventMask(0x%x) = 0x%x, want 0x%x", c.name, c.features, got, c.want)
		}
	}
}

// TestLEEventMaskMatchesS3: controller reports LE local supported features
// `02 00 00 00 00 00 00 00` (conn-param request only, little-endian byte 0
// bit 1 set); the derived LE Set Event Mask value must be 0x3F.
func TestLEEventMaskMatchesS3(t *testing.T) {
	features := uint64(0x02) // byte[0] = 0x02 little-endian == bit 1 set
	if got := LEEventMask(features); got != 0x3F {
		t.Fatalf("LEEventMask(0x%x) = 0x%x, want 0x3F", features, got)
	}
}

func TestSetDataLengthTxTimeMatchesS2(t *testing.T) {
	tk, conn := newTestTask()
	opcode := (&cmd.LESetDataLength{}).OpCode()
	conn.Enqueue(eventDatagram(evt.CodeCommandComplete, commandCompleteParams(opcode, []byte{0x00, 0x40, 0x00})))

	if _, err := SetDataLength(tk, 0x0040, 251, time.Second); err != nil {
		t.Fatalf("SetDataLength: %v", err)
	}
	written := conn.Written()
	if len(written) != 1 {
		t.Fatalf("wrote %d datagrams, want 1", len(written))
	}
	w := written[0]
	got := uint16(w[len(w)-2]) | uint16(w[len(w)-1])<<8
	if got != 0x0828 {
		t.Fatalf("tx_time = 0x%04x, want 0x0828", got)
	}
}
