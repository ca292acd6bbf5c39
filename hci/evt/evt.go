// Package evt is the event catalogue (§4.4): one Go type per HCI event (and
// per LE meta sub-event), plus the dispatch that turns a raw event body into
// one of them.
//
// Grounded on the teacher's vendored currantlabs/ble/linux/hci/evt package
// for field layout, generalised to return copied, typed structs instead of
// byte-slice views (the socket's receive buffer must never be aliased past
// the call that produced it, §9).
package evt

import (
	"errors"

	"github.com/bthci/hcitest/hci"
	"github.com/bthci/hcitest/hcierr"
)

// Event codes (§4.4).
const (
	CodeInquiryComplete                  uint8 = 0x01
	CodeConnectionComplete               uint8 = 0x03
	CodeConnectionRequest                uint8 = 0x04
	CodeDisconnectionComplete            uint8 = 0x05
	CodeRemoteNameReqComplete            uint8 = 0x07
	CodeEncryptionChange                 uint8 = 0x08
	CodeReadRemoteFeaturesComplete       uint8 = 0x0B
	CodeReadRemoteVersionComplete        uint8 = 0x0C
	CodeCommandComplete                  uint8 = 0x0E
	CodeCommandStatus                    uint8 = 0x0F
	CodeRoleChange                       uint8 = 0x12
	CodeNumberOfCompletedPackets         uint8 = 0x13
	CodeModeChange                       uint8 = 0x14
	CodeMaxSlotsChange                   uint8 = 0x1B
	CodePageScanRepetitionModeChange     uint8 = 0x20
	CodeInquiryResultWithRSSI            uint8 = 0x22
	CodeReadRemoteExtFeaturesComplete    uint8 = 0x23
	CodeLEMeta                           uint8 = 0x3E
	CodeVendor                           uint8 = 0xFF
)

// LE meta sub-event codes.
const (
	SubCodeLEConnectionComplete             uint8 = 0x01
	SubCodeLEAdvertisingReport              uint8 = 0x02
	SubCodeLEConnectionUpdateComplete       uint8 = 0x03
	SubCodeLEReadRemoteUsedFeaturesComplete uint8 = 0x04
	SubCodeLELTKRequest                     uint8 = 0x05
	SubCodeLEDataLengthChange               uint8 = 0x07
	SubCodeLEEnhancedConnectionComplete     uint8 = 0x0A
)

// Event is the common surface of every catalogue entry.
type Event interface {
	Code() uint8
}

// LEMetaEvent is additionally implemented by LE sub-events.
type LEMetaEvent interface {
	Event
	SubCode() uint8
}

// Unknown is returned by Parse for an unrecognised event code; it is never
// a parse failure, only "nothing more specific is registered" (§4.4).
type Unknown struct {
	EventCode uint8
	Params    []byte
}

func (e *Unknown) Code() uint8 { return e.EventCode }

// UnknownLESubEvent is the LE-meta analogue of Unknown.
type UnknownLESubEvent struct {
	LESubCode uint8
	Params    []byte
}

func (e *UnknownLESubEvent) Code() uint8    { return CodeLEMeta }
func (e *UnknownLESubEvent) SubCode() uint8 { return e.LESubCode }

// Parse turns a raw event body (code_u8 | plen_u8 | params[plen], i.e. what
// socket.Socket.RecvEvent returns) into a typed Event. An unrecognised
// code/subcode yields Unknown/UnknownLESubEvent rather than an error —
// callers (hci/task) log and skip these, they never abort the stream.
// A body shorter than its declared plen, or a recognised event whose fixed
// fields don't fit in the declared params, is a hcierr.ParseError: the
// stream itself may still be framed correctly, but the payload is corrupt,
// so the caller should treat the socket as desynchronised per §4.4.
func Parse(buf []byte) (Event, error) {
	code, err := hci.ReadUint8(buf, 0)
	if err != nil {
		return nil, parseErrorf("event code: %v", err)
	}
	plen, err := hci.ReadUint8(buf, 1)
	if err != nil {
		return nil, parseErrorf("event plen: %v", err)
	}
	if len(buf) < 2+int(plen) {
		return nil, parseErrorf("event body shorter than plen %d", plen)
	}
	params := buf[2 : 2+int(plen)]

	var ev Event
	if code == CodeLEMeta {
		ev, err = parseLEMeta(params)
	} else {
		ev, err = parseEvent(code, params)
	}
	if err != nil {
		var pe *hcierr.ParseError
		if !errors.As(err, &pe) {
			err = parseErrorf("event 0x%02x: %v", code, err)
		}
	}
	return ev, err
}
