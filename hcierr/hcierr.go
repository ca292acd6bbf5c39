// Package hcierr collects the error taxonomy shared by the codec, socket,
// task and worker layers. Every error a caller needs to branch on is a
// concrete type here rather than an opaque wrapped string, so callers use
// errors.As instead of string matching.
package hcierr

import "fmt"

// ParseError means the byte stream did not satisfy the length a recognised
// packet body requires. It is always fatal to the owning socket: once the
// stream cannot be trusted to be frame-aligned, nothing built on top of it
// is trustworthy either.
type ParseError struct {
	What string
}

func (e *ParseError) Error() string { return fmt.Sprintf("hci: parse error: %s", e.What) }

// ProtocolError is raised on an unrecognised packet-type tag. Fatal, same as
// ParseError: the framer has no way to resynchronise mid-stream.
type ProtocolError struct {
	What string
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("hci: protocol error: %s", e.What) }

// CommandError means the controller accepted a command but returned a
// non-zero status byte. Recoverable: the caller decides whether to retry,
// abort the scenario, or ignore it.
type CommandError struct {
	Opcode uint16
	Status uint8
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("hci: command 0x%04x failed with status 0x%02x", e.Opcode, e.Status)
}

// InvalidCommandParameters is raised by a command's serializer before any
// byte reaches the controller.
type InvalidCommandParameters struct {
	What string
}

func (e *InvalidCommandParameters) Error() string {
	return fmt.Sprintf("hci: invalid command parameters: %s", e.What)
}

// Timeout is raised by any bounded blocking call whose deadline elapsed.
type Timeout struct {
	Op string
}

func (e *Timeout) Error() string { return fmt.Sprintf("hci: timeout waiting for %s", e.Op) }

// TestError is a scenario-level expectation failure, not a protocol error.
type TestError struct {
	What string
}

func (e *TestError) Error() string { return fmt.Sprintf("hci: test failure: %s", e.What) }

// EventNotImplemented covers an event code this build does not know how to
// parse. Recoverable: the event surfaces as evt.Unknown instead.
type EventNotImplemented struct {
	Code uint8
}

func (e *EventNotImplemented) Error() string {
	return fmt.Sprintf("hci: event 0x%02x not implemented", e.Code)
}

// LEEventNotImplemented is the LE-meta-event analogue of EventNotImplemented.
type LEEventNotImplemented struct {
	SubCode uint8
}

func (e *LEEventNotImplemented) Error() string {
	return fmt.Sprintf("hci: LE sub-event 0x%02x not implemented", e.SubCode)
}

// CommandCompleteNotImplemented covers a Command Complete event whose
// cmd_opcode has no registered return-parameter parser.
type CommandCompleteNotImplemented struct {
	Opcode uint16
}

func (e *CommandCompleteNotImplemented) Error() string {
	return fmt.Sprintf("hci: command complete return params for opcode 0x%04x not implemented", e.Opcode)
}

// Underflow is raised by the byte codec when the buffer is shorter than the
// width being read.
type Underflow struct {
	Width  int
	Offset int
	Len    int
}

func (e *Underflow) Error() string {
	return fmt.Sprintf("hci: underflow reading %d-byte field at offset %d (buf len %d)", e.Width, e.Offset, e.Len)
}
