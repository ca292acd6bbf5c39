// Package hci implements the wire-level pieces of the HCI host: the byte
// codec, packet framing and the packet-type tag/ACL/SCO structures shared by
// the command and event catalogues.
//
// Field widths and byte order follow the Bluetooth Core HCI specification:
// everything multi-byte is little-endian (spec.md §6).
package hci

import "github.com/bthci/hcitest/hcierr"

// ReadUint8 reads an unsigned 8-bit field at offset.
func ReadUint8(buf []byte, offset int) (uint8, error) {
	if err := checkLen(buf, offset, 1); err != nil {
		return 0, err
	}
	return buf[offset], nil
}

// ReadInt8 reads a signed 8-bit field at offset.
func ReadInt8(buf []byte, offset int) (int8, error) {
	if err := checkLen(buf, offset, 1); err != nil {
		return 0, err
	}
	return int8(buf[offset]), nil
}

// ReadUint16 reads an unsigned 16-bit little-endian field at offset.
func ReadUint16(buf []byte, offset int) (uint16, error) {
	if err := checkLen(buf, offset, 2); err != nil {
		return 0, err
	}
	return uint16(buf[offset]) | uint16(buf[offset+1])<<8, nil
}

// ReadUint24 reads an unsigned 24-bit little-endian field at offset.
func ReadUint24(buf []byte, offset int) (uint32, error) {
	if err := checkLen(buf, offset, 3); err != nil {
		return 0, err
	}
	return uint32(buf[offset]) | uint32(buf[offset+1])<<8 | uint32(buf[offset+2])<<16, nil
}

// ReadUint32 reads an unsigned 32-bit little-endian field at offset.
func ReadUint32(buf []byte, offset int) (uint32, error) {
	if err := checkLen(buf, offset, 4); err != nil {
		return 0, err
	}
	return uint32(buf[offset]) | uint32(buf[offset+1])<<8 | uint32(buf[offset+2])<<16 | uint32(buf[offset+3])<<24, nil
}

// ReadUint64 reads an unsigned 64-bit little-endian field at offset.
func ReadUint64(buf []byte, offset int) (uint64, error) {
	if err := checkLen(buf, offset, 8); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(buf[offset+i]) << (8 * uint(i))
	}
	return v, nil
}

// WriteUint8 appends an unsigned 8-bit field.
func WriteUint8(buf []byte, v uint8) []byte { return append(buf, v) }

// WriteInt8 appends a signed 8-bit field.
func WriteInt8(buf []byte, v int8) []byte { return append(buf, byte(v)) }

// WriteUint16 appends an unsigned 16-bit little-endian field.
func WriteUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

// WriteUint24 appends an unsigned 24-bit little-endian field.
func WriteUint24(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16))
}

// WriteUint32 appends an unsigned 32-bit little-endian field.
func WriteUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// WriteUint64 appends an unsigned 64-bit little-endian field.
func WriteUint64(buf []byte, v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return append(buf, b...)
}

func checkLen(buf []byte, offset, width int) error {
	if offset < 0 || offset+width > len(buf) {
		return &hcierr.Underflow{Width: width, Offset: offset, Len: len(buf)}
	}
	return nil
}
