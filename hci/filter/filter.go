// Package filter builds the kernel-side HCI_FILTER mask that limits which
// packet types, event codes and command opcodes the HCI user-channel socket
// delivers to userspace.
//
// The mask layout mirrors the Linux bluez HCI_FILTER socket option: a
// type-mask word, an event-mask (two 32-bit words), and an opcode word. The
// mask is opaque to callers beyond the operations below; hci/socket applies
// it atomically via setsockopt(SOL_HCI, HCI_FILTER, ...).
package filter

import "github.com/bthci/hcitest/hci"

// Size is the byte length of the mask as understood by the kernel socket
// option (type mask u32, event mask u32*2, opcode u16, padded to match the
// historical bluez struct hci_filter).
const Size = 14

// Filter accumulates ptype/event/opcode acceptance bits. The zero value
// accepts nothing; build one with New and the chained setters below.
type Filter struct {
	typeMask  uint32
	eventMask uint64
	opcode    uint16
}

// New returns an empty filter.
func New() *Filter { return &Filter{} }

// PType accepts packets of the given type(s) in addition to whatever is
// already accepted.
func (f *Filter) PType(types ...hci.PacketType) *Filter {
	for _, t := range types {
		f.typeMask |= 1 << uint(t)
	}
	return f
}

// Event accepts the given event code(s).
func (f *Filter) Event(codes ...uint8) *Filter {
	for _, c := range codes {
		f.eventMask |= 1 << uint(c&0x3F)
	}
	return f
}

// AllEvents accepts every event code.
func (f *Filter) AllEvents() *Filter {
	f.eventMask = ^uint64(0)
	return f
}

// Opcode sets the command-opcode filter used for completion correlation.
// Only one opcode can be the "currently expected" one at a time, matching
// the kernel filter's single opcode word.
func (f *Filter) Opcode(opcode uint16) *Filter {
	f.opcode = opcode
	return f
}

// Mask renders the filter to the wire-format byte mask the socket option
// expects.
func (f *Filter) Mask() []byte {
	buf := make([]byte, 0, Size)
	buf = hci.WriteUint32(buf, f.typeMask)
	buf = hci.WriteUint32(buf, uint32(f.eventMask))
	buf = hci.WriteUint32(buf, uint32(f.eventMask>>32))
	buf = hci.WriteUint16(buf, f.opcode)
	return buf
}

// Permissive returns the filter the task layer uses for the lifetime of a
// socket: every packet type of interest and every event code. Correlation
// between a sent command and its completion is done in user code (hci/task),
// so the kernel-side opcode filter need not be narrowed per command (§4.5).
func Permissive() *Filter {
	return New().
		PType(hci.PacketTypeEvent, hci.PacketTypeACL, hci.PacketTypeSCO).
		AllEvents()
}
