package hci

import "testing"

func buildEvent(code, data byte, body ...byte) []byte {
	buf := []byte{byte(PacketTypeEvent), code, byte(len(body))}
	return append(buf, body...)
}

func buildACL(handle uint16, data []byte) []byte {
	buf := []byte{byte(PacketTypeACL)}
	buf = WriteUint16(buf, handle)
	buf = WriteUint16(buf, uint16(len(data)))
	return append(buf, data...)
}

func TestSplitConcatenatedPackets(t *testing.T) {
	p1 := buildEvent(0x05, 0, 0x01, 0x02)
	p2 := buildACL(0x0040, []byte{0x0A, 0x0B, 0x0C})
	p3 := buildEvent(0x0E, 0, 0xAA)

	stream := append(append(append([]byte{}, p1...), p2...), p3...)
	var got [][]byte
	for len(stream) > 0 {
		_, size, err := Split(stream)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		got = append(got, stream[:size])
		stream = stream[size:]
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got))
	}
	if len(got[0]) != len(p1) || len(got[1]) != len(p2) || len(got[2]) != len(p3) {
		t.Fatalf("frame sizes mismatch: %v", got)
	}
}

func TestSplitNeedMoreBytes(t *testing.T) {
	full := buildEvent(0x05, 0, 0x01, 0x02, 0x03)
	for i := 0; i < len(full); i++ {
		partial := append([]byte(nil), full[:i]...)
		_, _, err := Split(partial)
		if err != ErrNeedMoreBytes {
			t.Fatalf("Split(%d/%d bytes) = %v, want ErrNeedMoreBytes", i, len(full), err)
		}
		if len(partial) != i {
			t.Fatalf("Split mutated buffer on underflow")
		}
	}
}

func TestSplitUnknownPacketType(t *testing.T) {
	_, _, err := Split([]byte{0xFE, 0x00, 0x00})
	if err == nil {
		t.Fatalf("expected ProtocolError for unknown packet type")
	}
}

func TestFrameSizeEachClass(t *testing.T) {
	cmd := []byte{0x01, 0x02, 0x03, 0xAA, 0xBB, 0xCC}
	if sz, err := FrameSize(PacketTypeCommand, cmd[0:]); err != nil || sz != 3+3 {
		t.Fatalf("cmd frame size = %d, %v", sz, err)
	}

	evt := []byte{0x05, 0x02, 0xAA, 0xBB}
	if sz, err := FrameSize(PacketTypeEvent, evt); err != nil || sz != 2+2 {
		t.Fatalf("evt frame size = %d, %v", sz, err)
	}

	acl := buildACL(0x40, []byte{1, 2, 3})[1:]
	if sz, err := FrameSize(PacketTypeACL, acl); err != nil || sz != 4+3 {
		t.Fatalf("acl frame size = %d, %v", sz, err)
	}

	sco := []byte{0x40, 0x00, 0x02, 0xAA, 0xBB}
	if sz, err := FrameSize(PacketTypeSCO, sco); err != nil || sz != 3+2 {
		t.Fatalf("sco frame size = %d, %v", sz, err)
	}
}
