//go:build linux

package socket

import (
	"time"
	"unsafe"

	"github.com/bthci/hcitest/hci/filter"
	"github.com/bthci/hcitest/hcierr"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// conn is the real HCI user-channel transport: a raw AF_BLUETOOTH socket
// bound to one controller index, exactly the way the teacher's
// linux/hci/socket package opens it, generalised with a read timeout via
// SO_RCVTIMEO so RecvPacket's per-call budget (§4.6) is enforceable.
type conn struct {
	fd int
}

const (
	ioctlSize     = 4
	hciMaxDevices = 16
	typHCI        = 72 // 'H'
)

func ioR(t, nr, size uintptr) uintptr { return (2 << 30) | (t << 8) | nr | (size << 16) }
func ioW(t, nr, size uintptr) uintptr { return (1 << 30) | (t << 8) | nr | (size << 16) }

var (
	hciUpDevice    = ioW(typHCI, 201, ioctlSize)
	hciDownDevice  = ioW(typHCI, 202, ioctlSize)
	hciGetDevList  = ioR(typHCI, 210, ioctlSize)
)

type devListRequest struct {
	devNum     uint16
	devRequest [hciMaxDevices]struct {
		id  uint16
		opt uint32
	}
}

func ioctl(fd int, op, arg uintptr) error {
	if _, _, ep := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), op, arg); ep != 0 {
		return ep
	}
	return nil
}

// Open binds an HCI user-channel raw socket to devID. devID == -1 opens the
// first controller index that accepts the user channel, matching the
// teacher's NewSocket(-1) fallback scan.
func Open(devID int) (Conn, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "hci socket: can't create socket")
	}
	if devID != -1 {
		return bind(fd, devID)
	}

	req := devListRequest{devNum: hciMaxDevices}
	if err := ioctl(fd, hciGetDevList, uintptr(unsafe.Pointer(&req))); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "hci socket: can't get device list")
	}
	var lastErr error
	for id := 0; id < int(req.devNum); id++ {
		c, err := bind(fd, id)
		if err == nil {
			return c, nil
		}
		lastErr = err
	}
	unix.Close(fd)
	return nil, errors.Wrap(lastErr, "hci socket: no devices available")
}

func bind(fd, devID int) (Conn, error) {
	if err := ioctl(fd, hciDownDevice, uintptr(devID)); err != nil {
		return nil, errors.Wrap(err, "hci socket: can't down device")
	}
	if err := ioctl(fd, hciUpDevice, uintptr(devID)); err != nil {
		return nil, errors.Wrap(err, "hci socket: can't up device")
	}
	if err := ioctl(fd, hciDownDevice, uintptr(devID)); err != nil {
		return nil, errors.Wrap(err, "hci socket: can't down device")
	}
	sa := &unix.SockaddrHCI{Dev: uint16(devID), Channel: unix.HCI_CHANNEL_USER}
	if err := unix.Bind(fd, sa); err != nil {
		return nil, errors.Wrap(err, "hci socket: can't bind to user channel")
	}
	c := &conn{fd: fd}
	if err := c.SetFilter(filter.Permissive()); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return c, nil
}

// SetFilter applies f to the socket via setsockopt(SOL_HCI, HCI_FILTER, ...).
func (c *conn) SetFilter(f *filter.Filter) error {
	mask := f.Mask()
	_, _, ep := unix.Syscall6(unix.SYS_SETSOCKOPT, uintptr(c.fd), unix.SOL_HCI, unix.HCI_FILTER,
		uintptr(unsafe.Pointer(&mask[0])), uintptr(len(mask)), 0)
	if ep != 0 {
		return errors.Wrap(ep, "hci socket: can't set filter")
	}
	return nil
}

func (c *conn) Write(p []byte) (int, error) {
	n, err := unix.Write(c.fd, p)
	return n, errors.Wrap(err, "hci socket: write")
}

// ReadTimeout sets SO_RCVTIMEO to timeout (0 means block indefinitely) and
// issues one read. EAGAIN/EWOULDBLOCK from an expired deadline is surfaced
// as hcierr.Timeout.
func (c *conn) ReadTimeout(buf []byte, timeout time.Duration) (int, error) {
	tv := unix.NsecToTimeval(int64(timeout))
	if err := unix.SetsockoptTimeval(c.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return 0, errors.Wrap(err, "hci socket: set recv timeout")
	}
	n, err := unix.Read(c.fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, &hcierr.Timeout{Op: "hci socket recv"}
		}
		return 0, errors.Wrap(err, "hci socket: read")
	}
	return n, nil
}

func (c *conn) Close() error {
	return errors.Wrap(unix.Close(c.fd), "hci socket: close")
}
