package hci

import "github.com/bthci/hcitest/hcierr"

// ErrNeedMoreBytes is returned by Split when buf does not yet hold a
// complete header or a complete body for the next frame. It is a sentinel,
// not a typed error: callers compare it with errors.Is.
var ErrNeedMoreBytes = &needMoreBytesErr{}

type needMoreBytesErr struct{}

func (*needMoreBytesErr) Error() string { return "hci: need more bytes" }

// FrameSize reports the full size of the next packet of the given class,
// header included, given a buffer that starts at the packet's own header
// (i.e. buf[0] is the first header byte, NOT the leading packet-type tag).
// It is a total function on the four packet classes as long as buf holds at
// least the fixed portion of the header; callers must check that first.
func FrameSize(t PacketType, buf []byte) (int, error) {
	switch t {
	case PacketTypeCommand:
		if len(buf) < 3 {
			return 0, ErrNeedMoreBytes
		}
		return 3 + int(buf[2]), nil
	case PacketTypeEvent:
		if len(buf) < 2 {
			return 0, ErrNeedMoreBytes
		}
		return 2 + int(buf[1]), nil
	case PacketTypeACL:
		if len(buf) < 4 {
			return 0, ErrNeedMoreBytes
		}
		dataLen, err := ReadUint16(buf, 2)
		if err != nil {
			return 0, ErrNeedMoreBytes
		}
		return 4 + int(dataLen), nil
	case PacketTypeSCO:
		if len(buf) < 3 {
			return 0, ErrNeedMoreBytes
		}
		return 3 + int(buf[2]), nil
	default:
		return 0, &hcierr.ProtocolError{What: "unknown packet type tag"}
	}
}

// headerLen is the fixed portion of each packet class's header that must be
// present before FrameSize can even read the length field.
func headerLen(t PacketType) int {
	switch t {
	case PacketTypeCommand, PacketTypeSCO:
		return 3
	case PacketTypeEvent:
		return 2
	case PacketTypeACL:
		return 4
	default:
		return 0
	}
}

// Split inspects a stream buffer that begins with a 1-byte packet-type tag
// followed by that packet's header+body, and reports the packet type and
// total datagram size (tag included) of the next complete frame. It returns
// ErrNeedMoreBytes without mutating buf if the buffer does not yet hold a
// full header or a full body. An unrecognised tag is a fatal ProtocolError:
// the caller must treat the owning socket as desynchronised and close it.
func Split(buf []byte) (PacketType, int, error) {
	if len(buf) < 1 {
		return 0, 0, ErrNeedMoreBytes
	}
	t := PacketType(buf[0])
	hl := headerLen(t)
	if hl == 0 {
		return 0, 0, &hcierr.ProtocolError{What: "unknown packet type tag"}
	}
	if len(buf) < 1+hl {
		return 0, 0, ErrNeedMoreBytes
	}
	size, err := FrameSize(t, buf[1:])
	if err != nil {
		return 0, 0, err
	}
	total := 1 + size
	if len(buf) < total {
		return 0, 0, ErrNeedMoreBytes
	}
	return t, total, nil
}
