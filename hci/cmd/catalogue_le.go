package cmd

import "github.com/bthci/hcitest/hci"

// ---- LE Controller (OGF 0x08), core commands ----

// LESetEventMask implements LE Set Event Mask (0x08|0x0001).
type LESetEventMask struct {
	LEEventMask uint64
}

func (c *LESetEventMask) OpCode() uint16             { return Opcode(OGFLEController, 0x0001) }
func (c *LESetEventMask) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LESetEventMask) Serialize() []byte {
	return hci.WriteUint64(make([]byte, 0, 8), c.LEEventMask)
}

// LEReadBufferSize implements LE Read Buffer Size (0x08|0x0002).
type LEReadBufferSize struct{}

func (c *LEReadBufferSize) OpCode() uint16             { return Opcode(OGFLEController, 0x0002) }
func (c *LEReadBufferSize) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LEReadBufferSize) Serialize() []byte          { return nil }

// LEReadBufferSizeRP is the Command Complete payload for LE Read Buffer Size.
type LEReadBufferSizeRP struct {
	StatusRP
	HCLEACLDataPacketLength uint16
	HCTotalNumLEDataPackets uint8
}

func (r *LEReadBufferSizeRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	if r.HCLEACLDataPacketLength, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	r.HCTotalNumLEDataPackets, err = hci.ReadUint8(b, 3)
	return err
}

// LEReadLocalSupportedFeatures implements LE Read Local Supported Features (0x08|0x0003).
type LEReadLocalSupportedFeatures struct{}

func (c *LEReadLocalSupportedFeatures) OpCode() uint16 { return Opcode(OGFLEController, 0x0003) }
func (c *LEReadLocalSupportedFeatures) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEReadLocalSupportedFeatures) Serialize() []byte { return nil }

// LEReadLocalSupportedFeaturesRP is the Command Complete payload.
type LEReadLocalSupportedFeaturesRP struct {
	StatusRP
	LEFeatures uint64
}

func (r *LEReadLocalSupportedFeaturesRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.LEFeatures, err = hci.ReadUint64(b, 1)
	return err
}

// LESetAdvertisingParameters implements LE Set Advertising Parameters (0x08|0x0006).
type LESetAdvertisingParameters struct {
	AdvertisingIntervalMin  uint16
	AdvertisingIntervalMax  uint16
	AdvertisingType         uint8
	OwnAddressType          uint8
	DirectAddressType       uint8
	DirectAddress           [6]byte
	AdvertisingChannelMap   uint8
	AdvertisingFilterPolicy uint8
}

func (c *LESetAdvertisingParameters) OpCode() uint16 { return Opcode(OGFLEController, 0x0006) }
func (c *LESetAdvertisingParameters) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetAdvertisingParameters) Serialize() []byte {
	buf := make([]byte, 0, 15)
	buf = hci.WriteUint16(buf, c.AdvertisingIntervalMin)
	buf = hci.WriteUint16(buf, c.AdvertisingIntervalMax)
	buf = hci.WriteUint8(buf, c.AdvertisingType)
	buf = hci.WriteUint8(buf, c.OwnAddressType)
	buf = hci.WriteUint8(buf, c.DirectAddressType)
	buf = append(buf, c.DirectAddress[:]...)
	buf = hci.WriteUint8(buf, c.AdvertisingChannelMap)
	buf = hci.WriteUint8(buf, c.AdvertisingFilterPolicy)
	return buf
}

// LESetAdvertisingData implements LE Set Advertising Data (0x08|0x0008).
type LESetAdvertisingData struct {
	AdvertisingDataLength uint8
	AdvertisingData       [31]byte
}

func (c *LESetAdvertisingData) OpCode() uint16             { return Opcode(OGFLEController, 0x0008) }
func (c *LESetAdvertisingData) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LESetAdvertisingData) Serialize() []byte {
	buf := make([]byte, 0, 32)
	buf = hci.WriteUint8(buf, c.AdvertisingDataLength)
	buf = append(buf, c.AdvertisingData[:]...)
	return buf
}

// LESetScanResponseData implements LE Set Scan Response Data (0x08|0x0009).
type LESetScanResponseData struct {
	ScanResponseDataLength uint8
	ScanResponseData       [31]byte
}

func (c *LESetScanResponseData) OpCode() uint16 { return Opcode(OGFLEController, 0x0009) }
func (c *LESetScanResponseData) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetScanResponseData) Serialize() []byte {
	buf := make([]byte, 0, 32)
	buf = hci.WriteUint8(buf, c.ScanResponseDataLength)
	buf = append(buf, c.ScanResponseData[:]...)
	return buf
}

// LESetAdvertiseEnable implements LE Set Advertise Enable (0x08|0x000A).
type LESetAdvertiseEnable struct {
	AdvertisingEnable uint8
}

func (c *LESetAdvertiseEnable) OpCode() uint16             { return Opcode(OGFLEController, 0x000A) }
func (c *LESetAdvertiseEnable) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LESetAdvertiseEnable) Serialize() []byte {
	return hci.WriteUint8(make([]byte, 0, 1), c.AdvertisingEnable)
}

// LESetScanParameters implements LE Set Scan Parameters (0x08|0x000B).
type LESetScanParameters struct {
	LEScanType         uint8
	LEScanInterval     uint16
	LEScanWindow       uint16
	OwnAddressType     uint8
	ScanningFilterPolicy uint8
}

func (c *LESetScanParameters) OpCode() uint16             { return Opcode(OGFLEController, 0x000B) }
func (c *LESetScanParameters) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LESetScanParameters) Serialize() []byte {
	buf := make([]byte, 0, 7)
	buf = hci.WriteUint8(buf, c.LEScanType)
	buf = hci.WriteUint16(buf, c.LEScanInterval)
	buf = hci.WriteUint16(buf, c.LEScanWindow)
	buf = hci.WriteUint8(buf, c.OwnAddressType)
	buf = hci.WriteUint8(buf, c.ScanningFilterPolicy)
	return buf
}

// LESetScanEnable implements LE Set Scan Enable (0x08|0x000C).
type LESetScanEnable struct {
	LEScanEnable     uint8
	FilterDuplicates uint8
}

func (c *LESetScanEnable) OpCode() uint16             { return Opcode(OGFLEController, 0x000C) }
func (c *LESetScanEnable) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LESetScanEnable) Serialize() []byte {
	buf := make([]byte, 0, 2)
	buf = hci.WriteUint8(buf, c.LEScanEnable)
	buf = hci.WriteUint8(buf, c.FilterDuplicates)
	return buf
}

// LECreateConnection implements LE Create Connection (0x08|0x000D).
type LECreateConnection struct {
	LEScanInterval      uint16
	LEScanWindow        uint16
	InitiatorFilterPolicy uint8
	PeerAddressType     uint8
	PeerAddress         [6]byte
	OwnAddressType      uint8
	ConnIntervalMin     uint16
	ConnIntervalMax     uint16
	ConnLatency         uint16
	SupervisionTimeout  uint16
	MinimumCELength     uint16
	MaximumCELength     uint16
}

func (c *LECreateConnection) OpCode() uint16             { return Opcode(OGFLEController, 0x000D) }
func (c *LECreateConnection) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *LECreateConnection) Serialize() []byte {
	buf := make([]byte, 0, 25)
	buf = hci.WriteUint16(buf, c.LEScanInterval)
	buf = hci.WriteUint16(buf, c.LEScanWindow)
	buf = hci.WriteUint8(buf, c.InitiatorFilterPolicy)
	buf = hci.WriteUint8(buf, c.PeerAddressType)
	buf = append(buf, c.PeerAddress[:]...)
	buf = hci.WriteUint8(buf, c.OwnAddressType)
	buf = hci.WriteUint16(buf, c.ConnIntervalMin)
	buf = hci.WriteUint16(buf, c.ConnIntervalMax)
	buf = hci.WriteUint16(buf, c.ConnLatency)
	buf = hci.WriteUint16(buf, c.SupervisionTimeout)
	buf = hci.WriteUint16(buf, c.MinimumCELength)
	buf = hci.WriteUint16(buf, c.MaximumCELength)
	return buf
}

// LECreateConnectionCancel implements LE Create Connection Cancel (0x08|0x000E).
type LECreateConnectionCancel struct{}

func (c *LECreateConnectionCancel) OpCode() uint16 { return Opcode(OGFLEController, 0x000E) }
func (c *LECreateConnectionCancel) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LECreateConnectionCancel) Serialize() []byte { return nil }

// LEReadWhiteListSize implements LE Read White List Size (0x08|0x000F).
type LEReadWhiteListSize struct{}

func (c *LEReadWhiteListSize) OpCode() uint16             { return Opcode(OGFLEController, 0x000F) }
func (c *LEReadWhiteListSize) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LEReadWhiteListSize) Serialize() []byte          { return nil }

// LEReadWhiteListSizeRP is the Command Complete payload.
type LEReadWhiteListSizeRP struct {
	StatusRP
	WhiteListSize uint8
}

func (r *LEReadWhiteListSizeRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.WhiteListSize, err = hci.ReadUint8(b, 1)
	return err
}

// LEClearWhiteList implements LE Clear White List (0x08|0x0010).
type LEClearWhiteList struct{}

func (c *LEClearWhiteList) OpCode() uint16             { return Opcode(OGFLEController, 0x0010) }
func (c *LEClearWhiteList) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LEClearWhiteList) Serialize() []byte          { return nil }

// LEAddDeviceToWhiteList implements LE Add Device To White List (0x08|0x0011).
type LEAddDeviceToWhiteList struct {
	AddressType uint8
	Address     [6]byte
}

func (c *LEAddDeviceToWhiteList) OpCode() uint16 { return Opcode(OGFLEController, 0x0011) }
func (c *LEAddDeviceToWhiteList) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEAddDeviceToWhiteList) Serialize() []byte {
	buf := make([]byte, 0, 7)
	buf = hci.WriteUint8(buf, c.AddressType)
	buf = append(buf, c.Address[:]...)
	return buf
}

// LERemoveDeviceFromWhiteList implements LE Remove Device From White List (0x08|0x0012).
type LERemoveDeviceFromWhiteList struct {
	AddressType uint8
	Address     [6]byte
}

func (c *LERemoveDeviceFromWhiteList) OpCode() uint16 { return Opcode(OGFLEController, 0x0012) }
func (c *LERemoveDeviceFromWhiteList) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LERemoveDeviceFromWhiteList) Serialize() []byte {
	buf := make([]byte, 0, 7)
	buf = hci.WriteUint8(buf, c.AddressType)
	buf = append(buf, c.Address[:]...)
	return buf
}

// LEConnectionUpdate implements LE Connection Update (0x08|0x0013).
type LEConnectionUpdate struct {
	ConnectionHandle   uint16
	ConnIntervalMin    uint16
	ConnIntervalMax    uint16
	ConnLatency        uint16
	SupervisionTimeout uint16
	MinimumCELength    uint16
	MaximumCELength    uint16
}

func (c *LEConnectionUpdate) OpCode() uint16             { return Opcode(OGFLEController, 0x0013) }
func (c *LEConnectionUpdate) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *LEConnectionUpdate) Serialize() []byte {
	buf := make([]byte, 0, 14)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = hci.WriteUint16(buf, c.ConnIntervalMin)
	buf = hci.WriteUint16(buf, c.ConnIntervalMax)
	buf = hci.WriteUint16(buf, c.ConnLatency)
	buf = hci.WriteUint16(buf, c.SupervisionTimeout)
	buf = hci.WriteUint16(buf, c.MinimumCELength)
	buf = hci.WriteUint16(buf, c.MaximumCELength)
	return buf
}

// LESetHostChannelClassification implements LE Set Host Channel Classification (0x08|0x0014).
type LESetHostChannelClassification struct {
	ChannelMap [5]byte
}

func (c *LESetHostChannelClassification) OpCode() uint16 { return Opcode(OGFLEController, 0x0014) }
func (c *LESetHostChannelClassification) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LESetHostChannelClassification) Serialize() []byte {
	buf := make([]byte, 0, 5)
	return append(buf, c.ChannelMap[:]...)
}

// LEStartEncryption implements LE Start Encryption (0x08|0x0019).
type LEStartEncryption struct {
	ConnectionHandle     uint16
	RandomNumber         uint64
	EncryptedDiversifier uint16
	LongTermKey          [16]byte
}

func (c *LEStartEncryption) OpCode() uint16             { return Opcode(OGFLEController, 0x0019) }
func (c *LEStartEncryption) Completion() CompletionKind { return CompletesWithCommandStatus }
func (c *LEStartEncryption) Serialize() []byte {
	buf := make([]byte, 0, 28)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = hci.WriteUint64(buf, c.RandomNumber)
	buf = hci.WriteUint16(buf, c.EncryptedDiversifier)
	buf = append(buf, c.LongTermKey[:]...)
	return buf
}

// LELTKReply implements LE Long Term Key Request Reply (0x08|0x001A).
type LELTKReply struct {
	ConnectionHandle uint16
	LongTermKey      [16]byte
}

func (c *LELTKReply) OpCode() uint16             { return Opcode(OGFLEController, 0x001A) }
func (c *LELTKReply) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LELTKReply) Serialize() []byte {
	buf := make([]byte, 0, 18)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = append(buf, c.LongTermKey[:]...)
	return buf
}

// LELTKReplyRP is the Command Complete payload shared by LE LTK Reply and its
// negative-reply counterpart.
type LELTKReplyRP struct {
	StatusRP
	ConnectionHandle uint16
}

func (r *LELTKReplyRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.ConnectionHandle, err = hci.ReadUint16(b, 1)
	return err
}

// LELTKNegReply implements LE Long Term Key Request Negative Reply (0x08|0x001B).
type LELTKNegReply struct {
	ConnectionHandle uint16
}

func (c *LELTKNegReply) OpCode() uint16             { return Opcode(OGFLEController, 0x001B) }
func (c *LELTKNegReply) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LELTKNegReply) Serialize() []byte {
	return hci.WriteUint16(make([]byte, 0, 2), c.ConnectionHandle)
}

// LESetDataLength implements LE Set Data Length (0x08|0x0022).
type LESetDataLength struct {
	ConnectionHandle uint16
	TxOctets         uint16
	TxTime           uint16
}

func (c *LESetDataLength) OpCode() uint16             { return Opcode(OGFLEController, 0x0022) }
func (c *LESetDataLength) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *LESetDataLength) Serialize() []byte {
	buf := make([]byte, 0, 6)
	buf = hci.WriteUint16(buf, c.ConnectionHandle)
	buf = hci.WriteUint16(buf, c.TxOctets)
	buf = hci.WriteUint16(buf, c.TxTime)
	return buf
}

// LESetDataLengthRP is the Command Complete payload for LE Set Data Length.
type LESetDataLengthRP struct {
	StatusRP
	ConnectionHandle uint16
}

func (r *LESetDataLengthRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	r.ConnectionHandle, err = hci.ReadUint16(b, 1)
	return err
}

// LEReadSuggestedDefaultDataLength implements LE Read Suggested Default Data Length (0x08|0x0023).
type LEReadSuggestedDefaultDataLength struct{}

func (c *LEReadSuggestedDefaultDataLength) OpCode() uint16 {
	return Opcode(OGFLEController, 0x0023)
}
func (c *LEReadSuggestedDefaultDataLength) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEReadSuggestedDefaultDataLength) Serialize() []byte { return nil }

// LEReadSuggestedDefaultDataLengthRP is the Command Complete payload.
type LEReadSuggestedDefaultDataLengthRP struct {
	StatusRP
	SuggestedMaxTxOctets uint16
	SuggestedMaxTxTime   uint16
}

func (r *LEReadSuggestedDefaultDataLengthRP) Unmarshal(b []byte) error {
	if err := r.StatusRP.Unmarshal(b); err != nil {
		return err
	}
	var err error
	if r.SuggestedMaxTxOctets, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	r.SuggestedMaxTxTime, err = hci.ReadUint16(b, 3)
	return err
}

// LEWriteSuggestedDefaultDataLength implements LE Write Suggested Default Data Length (0x08|0x0024).
type LEWriteSuggestedDefaultDataLength struct {
	SuggestedMaxTxOctets uint16
	SuggestedMaxTxTime   uint16
}

func (c *LEWriteSuggestedDefaultDataLength) OpCode() uint16 {
	return Opcode(OGFLEController, 0x0024)
}
func (c *LEWriteSuggestedDefaultDataLength) Completion() CompletionKind {
	return CompletesWithCommandComplete
}
func (c *LEWriteSuggestedDefaultDataLength) Serialize() []byte {
	buf := make([]byte, 0, 4)
	buf = hci.WriteUint16(buf, c.SuggestedMaxTxOctets)
	buf = hci.WriteUint16(buf, c.SuggestedMaxTxTime)
	return buf
}
