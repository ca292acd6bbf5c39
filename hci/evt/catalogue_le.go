package evt

import "github.com/bthci/hcitest/hci"

// LEConnectionComplete is the LE Connection Complete sub-event (0x01).
type LEConnectionComplete struct {
	Status                uint8
	ConnectionHandle      uint16
	Role                  uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	ConnInterval          uint16
	ConnLatency           uint16
	SupervisionTimeout    uint16
	MasterClockAccuracy   uint8
}

func (e *LEConnectionComplete) Code() uint8    { return CodeLEMeta }
func (e *LEConnectionComplete) SubCode() uint8 { return SubCodeLEConnectionComplete }
func (e *LEConnectionComplete) unmarshal(b []byte) error {
	var err error
	if e.Status, err = hci.ReadUint8(b, 0); err != nil {
		return err
	}
	if e.ConnectionHandle, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	if e.Role, err = hci.ReadUint8(b, 3); err != nil {
		return err
	}
	if e.PeerAddressType, err = hci.ReadUint8(b, 4); err != nil {
		return err
	}
	if len(b) < 18 {
		return parseErrorf("LE connection complete: need 18 bytes, have %d", len(b))
	}
	copy(e.PeerAddress[:], b[5:11])
	if e.ConnInterval, err = hci.ReadUint16(b, 11); err != nil {
		return err
	}
	if e.ConnLatency, err = hci.ReadUint16(b, 13); err != nil {
		return err
	}
	if e.SupervisionTimeout, err = hci.ReadUint16(b, 15); err != nil {
		return err
	}
	e.MasterClockAccuracy, err = hci.ReadUint8(b, 17)
	return err
}

// LEAdvertisingReport is the LE Advertising Report sub-event (0x02). A
// single event can carry multiple reports; ReportsRaw holds the undecoded
// repeated group since its per-report stride depends on a trailing
// variable-length AD payload (§4.4 leaves AD structure decoding out of
// scope — scenarios that need it parse ReportsRaw themselves).
type LEAdvertisingReport struct {
	NumReports  uint8
	ReportsRaw  []byte
}

func (e *LEAdvertisingReport) Code() uint8    { return CodeLEMeta }
func (e *LEAdvertisingReport) SubCode() uint8 { return SubCodeLEAdvertisingReport }
func (e *LEAdvertisingReport) unmarshal(b []byte) error {
	var err error
	if e.NumReports, err = hci.ReadUint8(b, 0); err != nil {
		return err
	}
	e.ReportsRaw = append([]byte(nil), b[1:]...)
	return nil
}

// LEConnectionUpdateComplete is the LE Connection Update Complete sub-event
// (0x03).
type LEConnectionUpdateComplete struct {
	Status             uint8
	ConnectionHandle   uint16
	ConnInterval       uint16
	ConnLatency        uint16
	SupervisionTimeout uint16
}

func (e *LEConnectionUpdateComplete) Code() uint8    { return CodeLEMeta }
func (e *LEConnectionUpdateComplete) SubCode() uint8 { return SubCodeLEConnectionUpdateComplete }
func (e *LEConnectionUpdateComplete) unmarshal(b []byte) error {
	var err error
	if e.Status, err = hci.ReadUint8(b, 0); err != nil {
		return err
	}
	if e.ConnectionHandle, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	if e.ConnInterval, err = hci.ReadUint16(b, 3); err != nil {
		return err
	}
	if e.ConnLatency, err = hci.ReadUint16(b, 5); err != nil {
		return err
	}
	e.SupervisionTimeout, err = hci.ReadUint16(b, 7)
	return err
}

// LEReadRemoteUsedFeaturesComplete is the LE Read Remote Used Features
// Complete sub-event (0x04).
type LEReadRemoteUsedFeaturesComplete struct {
	Status           uint8
	ConnectionHandle uint16
	LEFeatures       [8]byte
}

func (e *LEReadRemoteUsedFeaturesComplete) Code() uint8 { return CodeLEMeta }
func (e *LEReadRemoteUsedFeaturesComplete) SubCode() uint8 {
	return SubCodeLEReadRemoteUsedFeaturesComplete
}
func (e *LEReadRemoteUsedFeaturesComplete) unmarshal(b []byte) error {
	var err error
	if e.Status, err = hci.ReadUint8(b, 0); err != nil {
		return err
	}
	if e.ConnectionHandle, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	if len(b) < 11 {
		return parseErrorf("LE read remote used features complete: need 11 bytes, have %d", len(b))
	}
	copy(e.LEFeatures[:], b[3:11])
	return nil
}

// LELTKRequest is the LE Long Term Key Request sub-event (0x05).
type LELTKRequest struct {
	ConnectionHandle  uint16
	RandomNumber      [8]byte
	EncryptedDiversifier uint16
}

func (e *LELTKRequest) Code() uint8    { return CodeLEMeta }
func (e *LELTKRequest) SubCode() uint8 { return SubCodeLELTKRequest }
func (e *LELTKRequest) unmarshal(b []byte) error {
	var err error
	if e.ConnectionHandle, err = hci.ReadUint16(b, 0); err != nil {
		return err
	}
	if len(b) < 12 {
		return parseErrorf("LE LTK request: need 12 bytes, have %d", len(b))
	}
	copy(e.RandomNumber[:], b[2:10])
	e.EncryptedDiversifier, err = hci.ReadUint16(b, 10)
	return err
}

// LEDataLengthChange is the LE Data Length Change sub-event (0x07). This is
// the controller's confirmation of an LE Set Data Length request (§4.3's
// tx_time calculation, scenario S2).
type LEDataLengthChange struct {
	ConnectionHandle  uint16
	MaxTxOctets       uint16
	MaxTxTime         uint16
	MaxRxOctets       uint16
	MaxRxTime         uint16
}

func (e *LEDataLengthChange) Code() uint8    { return CodeLEMeta }
func (e *LEDataLengthChange) SubCode() uint8 { return SubCodeLEDataLengthChange }
func (e *LEDataLengthChange) unmarshal(b []byte) error {
	var err error
	if e.ConnectionHandle, err = hci.ReadUint16(b, 0); err != nil {
		return err
	}
	if e.MaxTxOctets, err = hci.ReadUint16(b, 2); err != nil {
		return err
	}
	if e.MaxTxTime, err = hci.ReadUint16(b, 4); err != nil {
		return err
	}
	if e.MaxRxOctets, err = hci.ReadUint16(b, 6); err != nil {
		return err
	}
	e.MaxRxTime, err = hci.ReadUint16(b, 8)
	return err
}

// LEEnhancedConnectionComplete is the LE Enhanced Connection Complete
// sub-event (0x0A) — the local/peer resolvable-address-aware superset of
// LEConnectionComplete that a controller may send instead, per whichever
// event mask bit the scenario enabled (§9's "either/or" wait-event note).
type LEEnhancedConnectionComplete struct {
	Status                uint8
	ConnectionHandle      uint16
	Role                  uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	LocalResolvablePrivateAddress [6]byte
	PeerResolvablePrivateAddress  [6]byte
	ConnInterval          uint16
	ConnLatency           uint16
	SupervisionTimeout    uint16
	MasterClockAccuracy   uint8
}

func (e *LEEnhancedConnectionComplete) Code() uint8    { return CodeLEMeta }
func (e *LEEnhancedConnectionComplete) SubCode() uint8 { return SubCodeLEEnhancedConnectionComplete }
func (e *LEEnhancedConnectionComplete) unmarshal(b []byte) error {
	var err error
	if e.Status, err = hci.ReadUint8(b, 0); err != nil {
		return err
	}
	if e.ConnectionHandle, err = hci.ReadUint16(b, 1); err != nil {
		return err
	}
	if e.Role, err = hci.ReadUint8(b, 3); err != nil {
		return err
	}
	if e.PeerAddressType, err = hci.ReadUint8(b, 4); err != nil {
		return err
	}
	if len(b) < 30 {
		return parseErrorf("LE enhanced connection complete: need 30 bytes, have %d", len(b))
	}
	copy(e.PeerAddress[:], b[5:11])
	copy(e.LocalResolvablePrivateAddress[:], b[11:17])
	copy(e.PeerResolvablePrivateAddress[:], b[17:23])
	if e.ConnInterval, err = hci.ReadUint16(b, 23); err != nil {
		return err
	}
	if e.ConnLatency, err = hci.ReadUint16(b, 25); err != nil {
		return err
	}
	if e.SupervisionTimeout, err = hci.ReadUint16(b, 27); err != nil {
		return err
	}
	e.MasterClockAccuracy, err = hci.ReadUint8(b, 29)
	return err
}
