package socket

import (
	"sync"
	"time"

	"github.com/bthci/hcitest/hci"
	"github.com/bthci/hcitest/hcierr"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

// mtu is the implementation-defined read chunk size (§4.6 item 4): at
// least 1024 bytes, matching the value the original bluetool source and the
// vendored currantlabs/ble sktLoop both use.
const mtu = 1024

// Socket owns one transport and the private byte buffer used to reassemble
// a packet across recv boundaries. It is not safe for concurrent use by
// more than one goroutine at a time; the task layer above it is already
// single-threaded per worker (§5).
type Socket struct {
	conn Conn
	log  *logging.Logger

	mu       sync.Mutex
	rbuf     []byte
	closed   bool
}

// New wraps conn. log may be nil, in which case the socket is silent.
func New(conn Conn, log *logging.Logger) *Socket {
	return &Socket{conn: conn, log: log}
}

// SendCommand serialises cmd's header and parameters and writes one
// datagram: the CMD tag, the opcode, plen and the parameter bytes.
func (s *Socket) SendCommand(opcode uint16, params []byte) error {
	buf := make([]byte, 0, 4+len(params))
	buf = append(buf, byte(hci.PacketTypeCommand))
	buf = hci.WriteUint16(buf, opcode)
	buf = hci.WriteUint8(buf, uint8(len(params)))
	buf = append(buf, params...)
	return s.write(buf)
}

// SendACL serialises and writes one ACL datagram. The canonical spelling
// per spec.md §9 Open Questions: (connHandle, pbFlag, bcFlag, payload).
func (s *Socket) SendACL(connHandle uint16, pbFlag, bcFlag uint8, payload []byte) error {
	acl := &hci.ACLData{ConnHandle: connHandle, PBFlag: pbFlag, BCFlag: bcFlag, Data: payload}
	buf := make([]byte, 0, 1+4+len(payload))
	buf = append(buf, byte(hci.PacketTypeACL))
	buf = append(buf, acl.Marshal()...)
	return s.write(buf)
}

func (s *Socket) write(buf []byte) error {
	_, err := s.conn.Write(buf)
	return errors.Wrap(err, "socket: write")
}

// RecvPacket returns the next framed packet, blocking for at most timeout
// (timeout <= 0 means block indefinitely) for a whole frame to become
// available. It never drains bytes out of the internal buffer on timeout.
func (s *Socket) RecvPacket(timeout time.Duration) (hci.PacketType, []byte, error) {
	deadline, hasDeadline := deadlineFrom(timeout)

	for {
		s.mu.Lock()
		t, size, splitErr := hci.Split(s.rbuf)
		if splitErr == nil {
			body := make([]byte, size)
			copy(body, s.rbuf[:size])
			s.rbuf = append(s.rbuf[:0], s.rbuf[size:]...)
			s.mu.Unlock()
			return t, body[1:], nil
		}
		s.mu.Unlock()

		if splitErr != hci.ErrNeedMoreBytes {
			// Unknown packet-type tag: the stream is desynchronised.
			return 0, nil, splitErr
		}

		remaining := time.Duration(0)
		if hasDeadline {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return 0, nil, &hcierr.Timeout{Op: "socket recv"}
			}
		}

		chunk := make([]byte, mtu)
		n, err := s.conn.ReadTimeout(chunk, remaining)
		if err != nil {
			if _, isTimeout := err.(*hcierr.Timeout); isTimeout {
				return 0, nil, err
			}
			return 0, nil, errors.Wrap(err, "socket: read")
		}
		s.mu.Lock()
		s.rbuf = append(s.rbuf, chunk[:n]...)
		s.mu.Unlock()
	}
}

// RecvEvent wraps RecvPacket; a non-event frame is a protocol error (stream
// desync), matching §4.6.
func (s *Socket) RecvEvent(timeout time.Duration) ([]byte, error) {
	t, body, err := s.RecvPacket(timeout)
	if err != nil {
		return nil, err
	}
	if t != hci.PacketTypeEvent {
		return nil, &hcierr.ProtocolError{What: "expected event, got " + t.String()}
	}
	return body, nil
}

// Close closes the underlying transport exactly once.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

func deadlineFrom(timeout time.Duration) (time.Time, bool) {
	if timeout <= 0 {
		return time.Time{}, false
	}
	return time.Now().Add(timeout), true
}
