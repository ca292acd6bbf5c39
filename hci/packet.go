package hci

import "github.com/bthci/hcitest/hcierr"

// PacketType is the 1-byte tag prepended to every datagram exchanged with
// the controller over the HCI user-channel socket.
type PacketType uint8

const (
	PacketTypeCommand PacketType = 0x01
	PacketTypeACL      PacketType = 0x02
	PacketTypeSCO       PacketType = 0x03
	PacketTypeEvent     PacketType = 0x04
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeCommand:
		return "CMD"
	case PacketTypeACL:
		return "ACL"
	case PacketTypeSCO:
		return "SCO"
	case PacketTypeEvent:
		return "EVENT"
	default:
		return "UNKNOWN"
	}
}

// ACLData is the parsed body of an ACL data packet: header_le16 |
// data_len_le16 | data[data_len].
type ACLData struct {
	ConnHandle uint16 // 12 bits
	PBFlag     uint8  // 2 bits
	BCFlag     uint8  // 2 bits
	Data       []byte
}

// ParseACLData parses an ACL packet body (without the leading packet-type
// tag) per §3: header_le16 | data_len_le16 | data[data_len].
func ParseACLData(buf []byte) (*ACLData, error) {
	header, err := ReadUint16(buf, 0)
	if err != nil {
		return nil, &hcierr.ParseError{What: "acl header: " + err.Error()}
	}
	dataLen, err := ReadUint16(buf, 2)
	if err != nil {
		return nil, &hcierr.ParseError{What: "acl data_len: " + err.Error()}
	}
	if len(buf) < 4+int(dataLen) {
		return nil, &hcierr.ParseError{What: "acl payload shorter than data_len"}
	}
	data := make([]byte, dataLen)
	copy(data, buf[4:4+int(dataLen)])
	return &ACLData{
		ConnHandle: header & 0x0FFF,
		PBFlag:     uint8((header >> 12) & 0x3),
		BCFlag:     uint8((header >> 14) & 0x3),
		Data:       data,
	}, nil
}

// Marshal serializes the ACL packet body (header + data_len + data), without
// the leading packet-type tag.
func (a *ACLData) Marshal() []byte {
	header := (a.ConnHandle & 0x0FFF) | (uint16(a.PBFlag)&0x3)<<12 | (uint16(a.BCFlag)&0x3)<<14
	buf := make([]byte, 0, 4+len(a.Data))
	buf = WriteUint16(buf, header)
	buf = WriteUint16(buf, uint16(len(a.Data)))
	buf = append(buf, a.Data...)
	return buf
}

// SCOData is the parsed body of a SCO data packet: header_le16 |
// data_len_u8 | data[data_len].
type SCOData struct {
	ConnHandle uint16
	Status     uint8
	Data       []byte
}

// ParseSCOData parses a SCO packet body per §3.
func ParseSCOData(buf []byte) (*SCOData, error) {
	header, err := ReadUint16(buf, 0)
	if err != nil {
		return nil, &hcierr.ParseError{What: "sco header: " + err.Error()}
	}
	dataLen, err := ReadUint8(buf, 2)
	if err != nil {
		return nil, &hcierr.ParseError{What: "sco data_len: " + err.Error()}
	}
	if len(buf) < 3+int(dataLen) {
		return nil, &hcierr.ParseError{What: "sco payload shorter than data_len"}
	}
	data := make([]byte, dataLen)
	copy(data, buf[3:3+int(dataLen)])
	return &SCOData{
		ConnHandle: header & 0x0FFF,
		Status:     uint8((header >> 12) & 0x3),
		Data:       data,
	}, nil
}

// Marshal serializes the SCO packet body.
func (s *SCOData) Marshal() []byte {
	header := (s.ConnHandle & 0x0FFF) | (uint16(s.Status)&0x3)<<12
	buf := make([]byte, 0, 3+len(s.Data))
	buf = WriteUint16(buf, header)
	buf = WriteUint8(buf, uint8(len(s.Data)))
	buf = append(buf, s.Data...)
	return buf
}
