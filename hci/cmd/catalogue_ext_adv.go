package cmd

import "github.com/bthci/hcitest/hci"

// ---- LE Extended Advertising family (OGF 0x08) ----

// LESetExtendedAdvertisingParameters implements
// LE Set Extended Advertising Parameters (0x08|0x0036).
type LESetExtendedAdvertisingParameters struct {
	AdvertisingHandle             uint8
	AdvertisingEventProperties    uint16
	PrimaryAdvertisingIntervalMin uint32 // 24-bit
	PrimaryAdvertisingIntervalMax uint32 // 24-bit
	PrimaryAdvertisingChannelMap  uint8
	OwnAddressType                uint8
	PeerAddressType               uint8
	PeerAddress                   [6]byte
	AdvertisingFilterPolicy       uint8
	AdvertisingTxPower            int8
	PrimaryAdvertisingPHY         uint8
	SecondaryAdvertisingMaxSkip   uint8
	SecondaryAdvertisingPHY       uint8
	AdvertisingSID                uint8
	ScanRequestNotificationEnable uint8
}

func (c *LESetExtendedAdvertisingParameters) OpCode() uint16 {
	return Opcode(OGFLEController, 0x0036)
}
func (c *LESetExtendedAdvertisingParameters) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetExtendedAdvertisingParameters) Serialize() []byte {
	buf := make([]byte, 0, 25)
	buf = hci.WriteUint8(buf, c.AdvertisingHandle)
	buf = hci.WriteUint16(buf, c.AdvertisingEventProperties)
	buf = hci.WriteUint24(buf, c.PrimaryAdvertisingIntervalMin)
	buf = hci.WriteUint24(buf, c.PrimaryAdvertisingIntervalMax)
	buf = hci.WriteUint8(buf, c.PrimaryAdvertisingChannelMap)
	buf = hci.WriteUint8(buf, c.OwnAddressType)
	buf = hci.WriteUint8(buf, c.PeerAddressType)
	buf = append(buf, c.PeerAddress[:]...)
	buf = hci.WriteUint8(buf, c.AdvertisingFilterPolicy)
	buf = hci.WriteInt8(buf, c.AdvertisingTxPower)
	buf = hci.WriteUint8(buf, c.PrimaryAdvertisingPHY)
	buf = hci.WriteUint8(buf, c.SecondaryAdvertisingMaxSkip)
	buf = hci.WriteUint8(buf, c.SecondaryAdvertisingPHY)
	buf = hci.WriteUint8(buf, c.AdvertisingSID)
	buf = hci.WriteUint8(buf, c.ScanRequestNotificationEnable)
	return buf
}

// LESetExtendedAdvertisingParametersRP is the Command Complete payload.
type LESetExtendedAdvertisingParametersRP struct {
	StatusRP
	SelectedTxPower int8
}

func (r *LESetExtendedAdvertisingParametersRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	v, err := hci.ReadInt8(b, 1)
	r.SelectedTxPower = v
	return err
}

// LESetExtendedAdvertisingData implements LE Set Extended Advertising Data (0x08|0x0037).
type LESetExtendedAdvertisingData struct {
	AdvertisingHandle     uint8
	Operation             uint8
	FragmentPreference    uint8
	AdvertisingDataLength uint8
	AdvertisingData       []byte
}

func (c *LESetExtendedAdvertisingData) OpCode() uint16 { return Opcode(OGFLEController, 0x0037) }
func (c *LESetExtendedAdvertisingData) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetExtendedAdvertisingData) Serialize() []byte {
	buf := make([]byte, 0, 4+len(c.AdvertisingData))
	buf = hci.WriteUint8(buf, c.AdvertisingHandle)
	buf = hci.WriteUint8(buf, c.Operation)
	buf = hci.WriteUint8(buf, c.FragmentPreference)
	buf = hci.WriteUint8(buf, c.AdvertisingDataLength)
	buf = append(buf, c.AdvertisingData...)
	return buf
}

// LESetExtendedScanResponseData implements LE Set Extended Scan Response Data (0x08|0x0038).
type LESetExtendedScanResponseData struct {
	AdvertisingHandle      uint8
	Operation              uint8
	FragmentPreference     uint8
	ScanResponseDataLength uint8
	ScanResponseData       []byte
}

func (c *LESetExtendedScanResponseData) OpCode() uint16 { return Opcode(OGFLEController, 0x0038) }
func (c *LESetExtendedScanResponseData) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetExtendedScanResponseData) Serialize() []byte {
	buf := make([]byte, 0, 4+len(c.ScanResponseData))
	buf = hci.WriteUint8(buf, c.AdvertisingHandle)
	buf = hci.WriteUint8(buf, c.Operation)
	buf = hci.WriteUint8(buf, c.FragmentPreference)
	buf = hci.WriteUint8(buf, c.ScanResponseDataLength)
	buf = append(buf, c.ScanResponseData...)
	return buf
}

// ExtAdvSet is one entry of the per-set duration/event-count list taken by
// LE Set Extended Advertising Enable.
type ExtAdvSet struct {
	AdvertisingHandle uint8
	Duration          uint16
	MaxExtAdvEvents   uint8
}

// LESetExtendedAdvertisingEnable implements LE Set Extended Advertising Enable (0x08|0x0039).
type LESetExtendedAdvertisingEnable struct {
	Enable uint8
	Sets   []ExtAdvSet
}

func (c *LESetExtendedAdvertisingEnable) OpCode() uint16 { return Opcode(OGFLEController, 0x0039) }
func (c *LESetExtendedAdvertisingEnable) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetExtendedAdvertisingEnable) Serialize() []byte {
	buf := make([]byte, 0, 2+4*len(c.Sets))
	buf = hci.WriteUint8(buf, c.Enable)
	buf = hci.WriteUint8(buf, uint8(len(c.Sets)))
	for _, s := range c.Sets {
		buf = hci.WriteUint8(buf, s.AdvertisingHandle)
		buf = hci.WriteUint16(buf, s.Duration)
		buf = hci.WriteUint8(buf, s.MaxExtAdvEvents)
	}
	return buf
}

// LEReadMaximumAdvertisingDataLength implements
// LE Read Maximum Advertising Data Length (0x08|0x003A).
type LEReadMaximumAdvertisingDataLength struct{}

func (c *LEReadMaximumAdvertisingDataLength) OpCode() uint16 {
	return Opcode(OGFLEController, 0x003A)
}
func (c *LEReadMaximumAdvertisingDataLength) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEReadMaximumAdvertisingDataLength) Serialize() []byte { return nil }

// LEReadMaximumAdvertisingDataLengthRP is the Command Complete payload.
type LEReadMaximumAdvertisingDataLengthRP struct {
	StatusRP
	MaxAdvertisingDataLength uint16
}

func (r *LEReadMaximumAdvertisingDataLengthRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.MaxAdvertisingDataLength, err = hci.ReadUint16(b, 1)
	return err
}

// LEReadNumberOfSupportedAdvertisingSets implements
// LE Read Number Of Supported Advertising Sets (0x08|0x003B).
type LEReadNumberOfSupportedAdvertisingSets struct{}

func (c *LEReadNumberOfSupportedAdvertisingSets) OpCode() uint16 {
	return Opcode(OGFLEController, 0x003B)
}
func (c *LEReadNumberOfSupportedAdvertisingSets) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEReadNumberOfSupportedAdvertisingSets) Serialize() []byte { return nil }

// LEReadNumberOfSupportedAdvertisingSetsRP is the Command Complete payload.
type LEReadNumberOfSupportedAdvertisingSetsRP struct {
	StatusRP
	NumSupportedAdvertisingSets uint8
}

func (r *LEReadNumberOfSupportedAdvertisingSetsRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.NumSupportedAdvertisingSets, err = hci.ReadUint8(b, 1)
	return err
}

// LERemoveAdvertisingSet implements LE Remove Advertising Set (0x08|0x003C).
type LERemoveAdvertisingSet struct {
	AdvertisingHandle uint8
}

func (c *LERemoveAdvertisingSet) OpCode() uint16 { return Opcode(OGFLEController, 0x003C) }
func (c *LERemoveAdvertisingSet) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LERemoveAdvertisingSet) Serialize() []byte {
	return hci.WriteUint8(make([]byte, 0, 1), c.AdvertisingHandle)
}

// LEClearAdvertisingSets implements LE Clear Advertising Sets (0x08|0x003D).
type LEClearAdvertisingSets struct{}

func (c *LEClearAdvertisingSets) OpCode() uint16 { return Opcode(OGFLEController, 0x003D) }
func (c *LEClearAdvertisingSets) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEClearAdvertisingSets) Serialize() []byte { return nil }

// LESetExtendedScanParameters implements LE Set Extended Scan Parameters (0x08|0x0041).
// Simplified to a single scanning PHY (1M), the common case the helpers in
// hci/proto drive.
type LESetExtendedScanParameters struct {
	OwnAddressType       uint8
	ScanningFilterPolicy uint8
	ScanType             uint8
	ScanInterval         uint16
	ScanWindow           uint16
}

func (c *LESetExtendedScanParameters) OpCode() uint16 { return Opcode(OGFLEController, 0x0041) }
func (c *LESetExtendedScanParameters) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetExtendedScanParameters) Serialize() []byte {
	const scanningPHYs = 0x01 // LE 1M PHY only
	buf := make([]byte, 0, 8)
	buf = hci.WriteUint8(buf, c.OwnAddressType)
	buf = hci.WriteUint8(buf, c.ScanningFilterPolicy)
	buf = hci.WriteUint8(buf, scanningPHYs)
	buf = hci.WriteUint8(buf, c.ScanType)
	buf = hci.WriteUint16(buf, c.ScanInterval)
	buf = hci.WriteUint16(buf, c.ScanWindow)
	return buf
}

// LESetExtendedScanEnable implements LE Set Extended Scan Enable (0x08|0x0042).
type LESetExtendedScanEnable struct {
	Enable           uint8
	FilterDuplicates uint8
	Duration         uint16
	Period           uint16
}

func (c *LESetExtendedScanEnable) OpCode() uint16 { return Opcode(OGFLEController, 0x0042) }
func (c *LESetExtendedScanEnable) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetExtendedScanEnable) Serialize() []byte {
	buf := make([]byte, 0, 6)
	buf = hci.WriteUint8(buf, c.Enable)
	buf = hci.WriteUint8(buf, c.FilterDuplicates)
	buf = hci.WriteUint16(buf, c.Duration)
	buf = hci.WriteUint16(buf, c.Period)
	return buf
}

// LEExtendedCreateConnection implements LE Extended Create Connection (0x08|0x0043).
// Simplified to a single initiating PHY (1M), same rationale as
// LESetExtendedScanParameters.
type LEExtendedCreateConnection struct {
	InitiatorFilterPolicy uint8
	OwnAddressType        uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	ScanInterval          uint16
	ScanWindow            uint16
	ConnIntervalMin       uint16
	ConnIntervalMax       uint16
	ConnLatency           uint16
	SupervisionTimeout    uint16
	MinimumCELength       uint16
	MaximumCELength       uint16
}

func (c *LEExtendedCreateConnection) OpCode() uint16 { return Opcode(OGFLEController, 0x0043) }
func (c *LEExtendedCreateConnection) Completion() CompletionKind {
	return CompletesWithCommandStatus
}
func (c *LEExtendedCreateConnection) Serialize() []byte {
	const initiatingPHYs = 0x01 // LE 1M PHY only
	buf := make([]byte, 0, 10+16)
	buf = hci.WriteUint8(buf, c.InitiatorFilterPolicy)
	buf = hci.WriteUint8(buf, c.OwnAddressType)
	buf = hci.WriteUint8(buf, c.PeerAddressType)
	buf = append(buf, c.PeerAddress[:]...)
	buf = hci.WriteUint8(buf, initiatingPHYs)
	buf = hci.WriteUint16(buf, c.ScanInterval)
	buf = hci.WriteUint16(buf, c.ScanWindow)
	buf = hci.WriteUint16(buf, c.ConnIntervalMin)
	buf = hci.WriteUint16(buf, c.ConnIntervalMax)
	buf = hci.WriteUint16(buf, c.ConnLatency)
	buf = hci.WriteUint16(buf, c.SupervisionTimeout)
	buf = hci.WriteUint16(buf, c.MinimumCELength)
	buf = hci.WriteUint16(buf, c.MaximumCELength)
	return buf
}
