// Package cmd is the command catalogue (§4.3): one Go type per HCI command,
// each carrying its OGF/OCF as compile-time constants, a parameter
// serializer, and — where the controller's Command Complete event returns
// data — a registered return-parameter parser.
//
// Field widths and layouts are bit-exact against the Bluetooth Core HCI
// specification, grounded on the teacher's vendored
// currantlabs/ble/linux/hci/cmd package.
package cmd

import "github.com/bthci/hcitest/hci"

// Opcode group fields (§3): OGF is 6 bits, OCF is 10 bits.
const (
	OGFLinkControl         = 0x01
	OGFLinkPolicy          = 0x02
	OGFControllerBaseband  = 0x03
	OGFInformational       = 0x04
	OGFLEController        = 0x08
	OGFVendor              = 0x3F
)

// Opcode packs an OGF/OCF pair into the 16-bit command opcode (§3).
func Opcode(ogf uint8, ocf uint16) uint16 {
	return uint16(ogf)<<10 | ocf
}

// CompletionKind distinguishes commands whose HCI flow terminates in a
// Command Complete event from those that terminate in a Command Status
// followed later by an unsolicited event (e.g. Create Connection completes
// via Connection Complete). Grounded on bluetool's command.py
// expected_event attribute (see SPEC_FULL.md "Supplemented features").
type CompletionKind int

const (
	CompletesWithCommandComplete CompletionKind = iota
	CompletesWithCommandStatus
)

// Command is the common surface every catalogue entry implements.
type Command interface {
	OpCode() uint16
	Serialize() []byte // nil encodes a parameterless command
	Completion() CompletionKind
}

// ReturnParams is implemented by the typed return-parameter struct attached
// to a Command Complete event for commands that return data.
type ReturnParams interface {
	Unmarshal(b []byte) error
}

// StatusRP is the return-parameter shape shared by every command whose
// Command Complete carries nothing but the status byte (the common case;
// §4.3's CmdCompltEvtParamUnpacker default in bluetool's terms — see
// DESIGN.md "trait composition" note).
type StatusRP struct {
	Status uint8
}

func (r *StatusRP) Unmarshal(b []byte) error {
	v, err := hci.ReadUint8(b, 0)
	if err != nil {
		return err
	}
	r.Status = v
	return nil
}

// CommandStatus lets task.Task's generic status check (§4.7
// send_cmd_wait_complete_check_status) work on any return-parameter struct
// that embeds StatusRP, without task needing to know each concrete shape.
func (r *StatusRP) CommandStatus() uint8 { return r.Status }
