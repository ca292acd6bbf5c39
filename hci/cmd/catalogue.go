package cmd

import (
	"github.com/bthci/hcitest/hci"
	"github.com/bthci/hcitest/hcierr"
)

// ---- BR/EDR Link Control (OGF 0x01) ----

// Inquiry implements Inquiry (0x01|0x0001).
type Inquiry struct {
	LAP             [3]byte
	InquiryLength   uint8
	NumResponses    uint8
}

func (c *Inquiry) OpCode() uint16             { return Opcode(OGFLinkControl, 0x0001) }
func (c *Inquiry) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *Inquiry) Serialize() []byte {
	buf := make([]byte, 0, 5)
	buf = append(buf, c.LAP[:]...)
	buf = hci.WriteUint8(buf, c.InquiryLength)
	buf = hci.WriteUint8(buf, c.NumResponses)
	return buf
}

// CreateConnection implements Create Connection (0x01|0x0005).
type CreateConnection struct {
	BDAddr                 [6]byte
	PacketType             uint16
	PageScanRepetitionMode uint8
	Reserved               uint8
	ClockOffset            uint16
	AllowRoleSwitch        uint8
}

func (c *CreateConnection) OpCode() uint16             { return Opcode(OGFLinkControl, 0x0005) }
func (c *CreateConnection) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *CreateConnection) Serialize() []byte {
	buf := make([]byte, 0, 13)
	buf = append(buf, c.BDAddr[:]...)
	buf = hci.WriteUint16(buf, c.PacketType)
	buf = hci.WriteUint8(buf, c.PageScanRepetitionMode)
	buf = hci.WriteUint8(buf, c.Reserved)
	buf = hci.WriteUint16(buf, c.ClockOffset)
	buf = hci.WriteUint8(buf, c.AllowRoleSwitch)
	return buf
}

// Disconnect implements Disconnect (0x01|0x0006).
type Disconnect struct {
	ConnectionHandle uint16
	Reason           uint8
}

func (c *Disconnect) OpCode() uint16             { return Opcode(OGFLinkControl, 0x0006) }
func (c *Disconnect) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *Disconnect) Serialize() []byte {
	buf := make([]byte, 0, 3)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = hci.WriteUint8(buf, c.Reason)
	return buf
}

// AcceptConnectionRequest implements Accept Connection Request (0x01|0x0009).
type AcceptConnectionRequest struct {
	BDAddr [6]byte
	Role   uint8
}

func (c *AcceptConnectionRequest) OpCode() uint16             { return Opcode(OGFLinkControl, 0x0009) }
func (c *AcceptConnectionRequest) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *AcceptConnectionRequest) Serialize() []byte {
	buf := make([]byte, 0, 7)
	buf = append(buf, c.BDAddr[:]...)
	buf = hci.WriteUint8(buf, c.Role)
	return buf
}

// ReadRemoteVersion implements Read Remote Version Information (0x01|0x001D).
type ReadRemoteVersion struct {
	ConnectionHandle uint16
}

func (c *ReadRemoteVersion) OpCode() uint16             { return Opcode(OGFLinkControl, 0x001D) }
func (c *ReadRemoteVersion) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *ReadRemoteVersion) Serialize() []byte {
	return hci.WriteUint16(make([]byte, 0, 2), c.ConnectionHandle)
}

// ---- Link Policy (OGF 0x02) ----

// SniffMode implements Sniff Mode (0x02|0x0003).
type SniffMode struct {
	ConnectionHandle  uint16
	SniffMaxInterval  uint16
	SniffMinInterval  uint16
	SniffAttempt      uint16
	SniffTimeout      uint16
}

func (c *SniffMode) OpCode() uint16             { return Opcode(OGFLinkPolicy, 0x0003) }
func (c *SniffMode) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *SniffMode) Serialize() []byte {
	buf := make([]byte, 0, 10)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = hci.WriteUint16(buf, c.SniffMaxInterval)
	buf = hci.WriteUint16(buf, c.SniffMinInterval)
	buf = hci.WriteUint16(buf, c.SniffAttempt)
	buf = hci.WriteUint16(buf, c.SniffTimeout)
	return buf
}

// ExitSniffMode implements Exit Sniff Mode (0x02|0x0004).
type ExitSniffMode struct {
	ConnectionHandle uint16
}

func (c *ExitSniffMode) OpCode() uint16             { return Opcode(OGFLinkPolicy, 0x0004) }
func (c *ExitSniffMode) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *ExitSniffMode) Serialize() []byte {
	return hci.WriteUint16(make([]byte, 0, 2), c.ConnectionHandle)
}

// WriteLinkPolicySettings implements Write Link Policy Settings (0x02|0x000D).
type WriteLinkPolicySettings struct {
	ConnectionHandle   uint16
	LinkPolicySettings uint16
}

func (c *WriteLinkPolicySettings) OpCode() uint16             { return Opcode(OGFLinkPolicy, 0x000D) }
func (c *WriteLinkPolicySettings) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *WriteLinkPolicySettings) Serialize() []byte {
	buf := make([]byte, 0, 4)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = hci.WriteUint16(buf, c.LinkPolicySettings)
	return buf
}

// WriteLinkPolicySettingsRP is the Command Complete payload for Write Link
// Policy Settings.
type WriteLinkPolicySettingsRP struct {
	StatusRP
	ConnectionHandle uint16
}

func (r *WriteLinkPolicySettingsRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.ConnectionHandle, err = hci.ReadUint16(b, 1)
	return err
}

// ---- Controller & Baseband (OGF 0x03) ----

// Reset implements Reset (0x03|0x0003).
type Reset struct{}

func (c *Reset) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x0003) }
func (c *Reset) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *Reset) Serialize() []byte          { return nil }

// SetEventMask implements Set Event Mask (0x03|0x0001).
type SetEventMask struct {
	EventMask uint64
}

func (c *SetEventMask) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x0001) }
func (c *SetEventMask) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *SetEventMask) Serialize() []byte {
	return hci.WriteUint64(make([]byte, 0, 8), c.EventMask)
}

// ReadStoredLinkKey implements Read Stored Link Key (0x03|0x000D).
type ReadStoredLinkKey struct {
	BDAddr      [6]byte
	ReadAllFlag uint8
}

func (c *ReadStoredLinkKey) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x000D) }
func (c *ReadStoredLinkKey) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *ReadStoredLinkKey) Serialize() []byte {
	buf := make([]byte, 0, 7)
	buf = append(buf, c.BDAddr[:]...)
	buf = hci.WriteUint8(buf, c.ReadAllFlag)
	return buf
}

// ReadStoredLinkKeyRP is the Command Complete payload for Read Stored Link Key.
type ReadStoredLinkKeyRP struct {
	StatusRP
	MaxNumKeys  uint16
	NumKeysRead uint16
}

func (r *ReadStoredLinkKeyRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	if r.MaxNumKeys, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	r.NumKeysRead, err = hci.ReadUint16(b, 3)
	return err
}

// WritePageTimeout implements Write Page Timeout (0x03|0x0018).
type WritePageTimeout struct {
	PageTimeout uint16
}

func (c *WritePageTimeout) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x0018) }
func (c *WritePageTimeout) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *WritePageTimeout) Serialize() []byte {
	return hci.WriteUint16(make([]byte, 0, 2), c.PageTimeout)
}

// ReadScanEnable implements Read Scan Enable (0x03|0x0019).
type ReadScanEnable struct{}

func (c *ReadScanEnable) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x0019) }
func (c *ReadScanEnable) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *ReadScanEnable) Serialize() []byte          { return nil }

// ReadScanEnableRP is the Command Complete payload for Read Scan Enable.
type ReadScanEnableRP struct {
	StatusRP
	ScanEnable uint8
}

func (r *ReadScanEnableRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.ScanEnable, err = hci.ReadUint8(b, 1)
	return err
}

// WriteScanEnable implements Write Scan Enable (0x03|0x001A).
type WriteScanEnable struct {
	ScanEnable uint8
}

func (c *WriteScanEnable) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x001A) }
func (c *WriteScanEnable) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *WriteScanEnable) Serialize() []byte {
	return hci.WriteUint8(make([]byte, 0, 1), c.ScanEnable)
}

// WritePageScanActivity implements Write Page Scan Activity (0x03|0x001C).
type WritePageScanActivity struct {
	PageScanInterval uint16
	PageScanWindow   uint16
}

func (c *WritePageScanActivity) OpCode() uint16 { return Opcode(OGFControllerBaseband, 0x001C) }
func (c *WritePageScanActivity) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *WritePageScanActivity) Serialize() []byte {
	buf := make([]byte, 0, 4)
	buf = hci.WriteUint16(buf, c.PageScanInterval)
	buf = hci.WriteUint16(buf, c.PageScanWindow)
	return buf
}

// ReadInquiryMode implements Read Inquiry Mode (0x03|0x0044).
type ReadInquiryMode struct{}

func (c *ReadInquiryMode) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x0044) }
func (c *ReadInquiryMode) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *ReadInquiryMode) Serialize() []byte          { return nil }

// ReadInquiryModeRP is the Command Complete payload for Read Inquiry Mode.
type ReadInquiryModeRP struct {
	StatusRP
	InquiryMode uint8
}

func (r *ReadInquiryModeRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.InquiryMode, err = hci.ReadUint8(b, 1)
	return err
}

// WriteInquiryMode implements Write Inquiry Mode (0x03|0x0045).
type WriteInquiryMode struct {
	InquiryMode uint8
}

func (c *WriteInquiryMode) OpCode() uint16             { return Opcode(OGFControllerBaseband, 0x0045) }
func (c *WriteInquiryMode) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *WriteInquiryMode) Serialize() []byte {
	return hci.WriteUint8(make([]byte, 0, 1), c.InquiryMode)
}

// ---- Informational Parameters (OGF 0x04) ----

// ReadLocalSupportedFeatures implements Read Local Supported Features (0x04|0x0003).
type ReadLocalSupportedFeatures struct{}

func (c *ReadLocalSupportedFeatures) OpCode() uint16 { return Opcode(OGFInformational, 0x0003) }
func (c *ReadLocalSupportedFeatures) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *ReadLocalSupportedFeatures) Serialize() []byte { return nil }

// ReadLocalSupportedFeaturesRP is the Command Complete payload.
type ReadLocalSupportedFeaturesRP struct {
	StatusRP
	LMPFeatures [8]byte
}

func (r *ReadLocalSupportedFeaturesRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	if len(b) < 9 {
		return &hcierr.Underflow{Width: 8, Offset: 1, Len: len(b)}
	}
	copy(r.LMPFeatures[:], b[1:9])
	return nil
}

// ReadLocalExtendedFeatures implements Read Local Extended Features (0x04|0x0004).
type ReadLocalExtendedFeatures struct {
	PageNumber uint8
}

func (c *ReadLocalExtendedFeatures) OpCode() uint16 { return Opcode(OGFInformational, 0x0004) }
func (c *ReadLocalExtendedFeatures) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *ReadLocalExtendedFeatures) Serialize() []byte {
	return hci.WriteUint8(make([]byte, 0, 1), c.PageNumber)
}

// ReadLocalExtendedFeaturesRP is the Command Complete payload.
type ReadLocalExtendedFeaturesRP struct {
	StatusRP
	PageNumber          uint8
	MaxPageNumber       uint8
	ExtendedLMPFeatures [8]byte
}

func (r *ReadLocalExtendedFeaturesRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	if r.PageNumber, err = hci.ReadUint8(b, 1); err != nil {
		return err
	}
	if r.MaxPageNumber, err = hci.ReadUint8(b, 2); err != nil {
		return err
	}
	if len(b) < 11 {
		return &hcierr.Underflow{Width: 8, Offset: 3, Len: len(b)}
	}
	copy(r.ExtendedLMPFeatures[:], b[3:11])
	return nil
}

// ReadBDAddr implements Read BD_ADDR (0x04|0x0009).
type ReadBDAddr struct{}

func (c *ReadBDAddr) OpCode() uint16             { return Opcode(OGFInformational, 0x0009) }
func (c *ReadBDAddr) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *ReadBDAddr) Serialize() []byte          { return nil }

// ReadBDAddrRP is the Command Complete payload for Read BD_ADDR.
type ReadBDAddrRP struct {
	StatusRP
	BDAddr [6]byte
}

func (r *ReadBDAddrRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	if len(b) < 7 {
		return &hcierr.Underflow{Width: 6, Offset: 1, Len: len(b)}
	}
	copy(r.BDAddr[:], b[1:7])
	return nil
}
