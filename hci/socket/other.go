//go:build !linux

package socket

import "github.com/pkg/errors"

// Open is only implemented on Linux: the HCI user channel (HCI_CHANNEL_USER)
// is a Linux bluez socket concept. Other platforms can still use
// ScriptedConn for tests.
func Open(devID int) (Conn, error) {
	return nil, errors.New("hci socket: HCI user channel is only supported on linux")
}
