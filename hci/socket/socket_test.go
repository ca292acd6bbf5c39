package socket

import (
	"testing"
	"time"

	"github.com/bthci/hcitest/hci"
)

// TestACLFramingAcrossRecvBoundaries is scenario S5: feed the first 3 bytes
// of an ACL packet, then the remaining 23 bytes on a subsequent read.
// RecvPacket must return exactly one ACL frame with the correct payload.
func TestACLFramingAcrossRecvBoundaries(t *testing.T) {
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i)
	}
	acl := &hci.ACLData{ConnHandle: 0x0040, PBFlag: 0, BCFlag: 0, Data: payload}
	frame := append([]byte{byte(hci.PacketTypeACL)}, acl.Marshal()...)
	if len(frame) != 26 {
		t.Fatalf("test setup: frame len = %d, want 26", len(frame))
	}

	conn := NewScriptedConn()
	conn.Enqueue(frame[:3])
	conn.Enqueue(frame[3:])

	sock := New(conn, nil)
	pt, body, err := sock.RecvPacket(time.Second)
	if err != nil {
		t.Fatalf("RecvPacket: %v", err)
	}
	if pt != hci.PacketTypeACL {
		t.Fatalf("packet type = %v, want ACL", pt)
	}
	got, err := hci.ParseACLData(body)
	if err != nil {
		t.Fatalf("ParseACLData: %v", err)
	}
	if got.ConnHandle != 0x0040 || len(got.Data) != 20 {
		t.Fatalf("parsed ACL = %+v", got)
	}
	for i, b := range got.Data {
		if b != byte(i) {
			t.Fatalf("payload[%d] = %d, want %d", i, b, i)
		}
	}
}

func TestRecvPacketTimeoutDoesNotDrain(t *testing.T) {
	conn := NewScriptedConn()
	sock := New(conn, nil)
	_, _, err := sock.RecvPacket(20 * time.Millisecond)
	if err == nil {
		t.Fatalf("expected timeout")
	}
	if sock.rbuf != nil {
		t.Fatalf("rbuf should remain empty after a timeout with nothing enqueued")
	}
}

func TestRecvEventRejectsNonEventFrame(t *testing.T) {
	conn := NewScriptedConn()
	conn.Enqueue([]byte{byte(hci.PacketTypeACL), 0x40, 0x00, 0x01, 0x00, 0xAA})
	sock := New(conn, nil)
	if _, err := sock.RecvEvent(time.Second); err == nil {
		t.Fatalf("expected protocol error for non-event frame")
	}
}

func TestSendCommandWritesWholeDatagram(t *testing.T) {
	conn := NewScriptedConn()
	sock := New(conn, nil)
	if err := sock.SendCommand(0x1009, nil); err != nil {
		t.Fatalf("SendCommand: %v", err)
	}
	written := conn.Written()
	if len(written) != 1 {
		t.Fatalf("expected exactly one datagram written, got %d", len(written))
	}
	want := []byte{byte(hci.PacketTypeCommand), 0x09, 0x10, 0x00}
	if string(written[0]) != string(want) {
		t.Fatalf("written = % X, want % X", written[0], want)
	}
}
