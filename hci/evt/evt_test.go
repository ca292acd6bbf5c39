package evt

import (
	"testing"

	"github.com/bthci/hcitest/hci/cmd"
)

func buildEventBody(code uint8, params []byte) []byte {
	buf := []byte{code, uint8(len(params))}
	return append(buf, params...)
}

func TestParseCommandCompleteKnownOpcode(t *testing.T) {
	// Mirrors S1: Read BD_ADDR's Command Complete.
	opcode := (&cmd.ReadBDAddr{}).OpCode()
	params := []byte{0x01, byte(opcode), byte(opcode >> 8), 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	body := buildEventBody(CodeCommandComplete, params)

	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cc, ok := ev.(*CommandComplete)
	if !ok {
		t.Fatalf("got %T, want *CommandComplete", ev)
	}
	if cc.Opcode != opcode {
		t.Fatalf("opcode = 0x%04x, want 0x%04x", cc.Opcode, opcode)
	}
	if cc.ReturnParamsErr != nil {
		t.Fatalf("ReturnParamsErr = %v", cc.ReturnParamsErr)
	}
	rp, ok := cc.ReturnParams.(*cmd.ReadBDAddrRP)
	if !ok {
		t.Fatalf("ReturnParams = %T, want *cmd.ReadBDAddrRP", cc.ReturnParams)
	}
	if rp.BDAddr != [6]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66} {
		t.Fatalf("bd_addr = % X", rp.BDAddr)
	}
}

func TestParseCommandCompleteUnknownOpcode(t *testing.T) {
	const unregistered = 0x3F00
	params := []byte{0x01, byte(unregistered & 0xFF), byte(unregistered >> 8), 0xAA}
	body := buildEventBody(CodeCommandComplete, params)

	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cc := ev.(*CommandComplete)
	if cc.ReturnParamsErr == nil {
		t.Fatalf("expected ReturnParamsErr for unregistered opcode")
	}
}

func TestParseCommandStatus(t *testing.T) {
	opcode := (&cmd.CreateConnection{}).OpCode()
	params := []byte{0x00, 0x01, byte(opcode), byte(opcode >> 8)}
	body := buildEventBody(CodeCommandStatus, params)

	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cs, ok := ev.(*CommandStatus)
	if !ok {
		t.Fatalf("got %T, want *CommandStatus", ev)
	}
	if cs.Opcode != opcode || cs.Status != 0 {
		t.Fatalf("unexpected CommandStatus: %+v", cs)
	}
}

func TestParseUnknownEventCode(t *testing.T) {
	body := buildEventBody(0x7E, []byte{0x01, 0x02})
	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u, ok := ev.(*Unknown)
	if !ok {
		t.Fatalf("got %T, want *Unknown", ev)
	}
	if u.EventCode != 0x7E {
		t.Fatalf("event code = 0x%02x", u.EventCode)
	}
}

func TestParseLEConnectionComplete(t *testing.T) {
	params := append([]byte{SubCodeLEConnectionComplete,
		0x00,       // status
		0x40, 0x00, // conn handle
		0x00,                         // role
		0x00,                         // peer addr type
		0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, // peer address
		0x18, 0x00, // conn interval
		0x00, 0x00, // latency
		0x2A, 0x00, // supervision timeout
		0x05, // clock accuracy
	})
	body := buildEventBody(CodeLEMeta, params)

	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	le, ok := ev.(*LEConnectionComplete)
	if !ok {
		t.Fatalf("got %T, want *LEConnectionComplete", ev)
	}
	if le.ConnectionHandle != 0x0040 {
		t.Fatalf("connection handle = 0x%04x", le.ConnectionHandle)
	}
	if le.SubCode() != SubCodeLEConnectionComplete {
		t.Fatalf("sub code = 0x%02x", le.SubCode())
	}
}

func TestParseLEDataLengthChangeMatchesS2(t *testing.T) {
	// tx_time = (251+14)*8 = 2120 = 0x0828, mirrors the LE Set Data Length
	// scenario's controller confirmation.
	params := []byte{
		0x40, 0x00, // conn handle
		0xFB, 0x00, // max tx octets = 251
		0x28, 0x08, // max tx time = 2120
		0xFB, 0x00, // max rx octets
		0x28, 0x08, // max rx time
	}
	body := buildEventBody(CodeLEMeta, append([]byte{SubCodeLEDataLengthChange}, params...))

	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dl := ev.(*LEDataLengthChange)
	if dl.MaxTxTime != 0x0828 {
		t.Fatalf("max tx time = 0x%04x, want 0x0828", dl.MaxTxTime)
	}
}

func TestParseUnknownLESubEvent(t *testing.T) {
	body := buildEventBody(CodeLEMeta, []byte{0x7F, 0x01})
	ev, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u, ok := ev.(*UnknownLESubEvent)
	if !ok {
		t.Fatalf("got %T, want *UnknownLESubEvent", ev)
	}
	if u.LESubCode != 0x7F {
		t.Fatalf("sub code = 0x%02x", u.LESubCode)
	}
}

func TestParseTruncatedEventIsParseError(t *testing.T) {
	body := []byte{CodeConnectionComplete, 0x0B, 0x00, 0x40, 0x00}
	if _, err := Parse(body); err == nil {
		t.Fatalf("expected parse error for truncated connection complete")
	}
}
