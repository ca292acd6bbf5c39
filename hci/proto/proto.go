// Package proto implements the protocol helpers (§4.10): thin convenience
// recipes over the task layer for the sequences a scenario writes over and
// over — reset, LE connection establishment, teardown, sniff mode, and
// advertising.
package proto

import (
	"time"

	"github.com/bthci/hcitest/hci/cmd"
	"github.com/bthci/hcitest/hci/evt"
	"github.com/bthci/hcitest/hci/task"
)

// defaultTimeout bounds every helper call below unless the caller overrides
// it; scenarios pass their own budgets where the default doesn't fit.
const defaultTimeout = 5 * time.Second

// BREDRReset runs the classic BR/EDR bring-up recipe: Reset, Set Event Mask,
// Write Page Scan Activity, Write Scan Enable. Every step's status must be
// zero; the first non-zero status aborts the sequence with CommandError.
func BREDRReset(t *task.Task) error {
	const eventMask = 0x20001FFFFFFFFFFF
	steps := []cmd.Command{
		&cmd.Reset{},
		&cmd.SetEventMask{EventMask: eventMask},
		&cmd.WritePageScanActivity{PageScanInterval: 0x0800, PageScanWindow: 0x0012},
		&cmd.WriteScanEnable{ScanEnable: 0x02},
	}
	for _, c := range steps {
		if _, err := t.SendCmdWaitCompleteCheckStatus(c, defaultTimeout); err != nil {
			return err
		}
	}
	return nil
}

// LEFeatureBit checks whether feature bit n (0-indexed from the LSB of the
// 8-byte LE features field) is set.
func LEFeatureBit(features uint64, n uint) bool {
	return features&(1<<n) != 0
}

// LEEventMask computes the LE Set Event Mask value as a function of the
// controller's advertised LE features, per §4.10's OR-accumulation table.
func LEEventMask(features uint64) uint64 {
	mask := uint64(0x1F)
	if LEFeatureBit(features, 1) {
		mask |= 0x20
	}
	if LEFeatureBit(features, 5) {
		mask |= 0x40
	}
	if LEFeatureBit(features, 6) {
		mask |= 0x780
	}
	if LEFeatureBit(features, 8) || LEFeatureBit(features, 11) {
		mask |= 0x800
	}
	if LEFeatureBit(features, 12) {
		mask |= 0x71000
	}
	if LEFeatureBit(features, 13) {
		mask |= 0xE000
	}
	if LEFeatureBit(features, 14) {
		mask |= 0x80000
	}
	return mask
}

// LEReset runs the LE bring-up recipe: Reset, Set Event Mask, Read LE Local
// Supported Features, derive and set the LE event mask, then clear the
// white list. Returns the advertised LE feature bits for callers that need
// them (e.g. to decide whether extended advertising is available).
func LEReset(t *task.Task) (leFeatures uint64, err error) {
	if _, err := t.SendCmdWaitCompleteCheckStatus(&cmd.Reset{}, defaultTimeout); err != nil {
		return 0, err
	}
	const classicEventMask = 0x20001FFFFFFFFFFF
	if _, err := t.SendCmdWaitCompleteCheckStatus(&cmd.SetEventMask{EventMask: classicEventMask}, defaultTimeout); err != nil {
		return 0, err
	}

	cc, err := t.SendCmdWaitCompleteCheckStatus(&cmd.LEReadLocalSupportedFeatures{}, defaultTimeout)
	if err != nil {
		return 0, err
	}
	featuresRP := cc.ReturnParams.(*cmd.LEReadLocalSupportedFeaturesRP)
	leFeatures = featuresRP.LEFeatures

	leMask := LEEventMask(leFeatures)
	if _, err := t.SendCmdWaitCompleteCheckStatus(&cmd.LESetEventMask{LEEventMask: leMask}, defaultTimeout); err != nil {
		return 0, err
	}
	if _, err := t.SendCmdWaitCompleteCheckStatus(&cmd.LEClearWhiteList{}, defaultTimeout); err != nil {
		return 0, err
	}
	return leFeatures, nil
}

// CreateLEConnectionByPeerAddress issues LE Create Connection against a
// specific peer address and waits for the resulting connection-complete
// sub-event (§4.10 "accept either the plain or enhanced variant").
func CreateLEConnectionByPeerAddress(t *task.Task, c *cmd.LECreateConnection, timeout time.Duration) (evt.LEMetaEvent, error) {
	c.InitiatorFilterPolicy = 0x00 // use the peer address, not the white list
	if _, err := t.SendCmdWaitStatus(c, timeout); err != nil {
		return nil, err
	}
	return WaitLEConnectionComplete(t, timeout)
}

// CreateLEConnectionByWhiteList is CreateLEConnectionByPeerAddress's
// white-list-initiated counterpart.
func CreateLEConnectionByWhiteList(t *task.Task, c *cmd.LECreateConnection, timeout time.Duration) (evt.LEMetaEvent, error) {
	c.InitiatorFilterPolicy = 0x01
	if _, err := t.SendCmdWaitStatus(c, timeout); err != nil {
		return nil, err
	}
	return WaitLEConnectionComplete(t, timeout)
}

// WaitLESubEvent is the generic LE meta sub-event wait primitive §4.10
// names: wait_event(e.code == LE_META && e.subevent == s).
func WaitLESubEvent(t *task.Task, subCode uint8, timeout time.Duration) (evt.LEMetaEvent, error) {
	ev, err := t.WaitEvent(func(e evt.Event) bool {
		le, ok := e.(evt.LEMetaEvent)
		return ok && le.SubCode() == subCode
	}, timeout)
	if err != nil {
		return nil, err
	}
	return ev.(evt.LEMetaEvent), nil
}

// WaitLEConnectionComplete accepts either EVT_LE_CONN_COMPLETE or
// EVT_LE_ENHANCED_CONN_COMPLETE, whichever the controller emits, per §4.10.
func WaitLEConnectionComplete(t *task.Task, timeout time.Duration) (evt.LEMetaEvent, error) {
	ev, err := t.WaitEvent(func(e evt.Event) bool {
		le, ok := e.(evt.LEMetaEvent)
		if !ok {
			return false
		}
		return le.SubCode() == evt.SubCodeLEConnectionComplete || le.SubCode() == evt.SubCodeLEEnhancedConnectionComplete
	}, timeout)
	if err != nil {
		return nil, err
	}
	return ev.(evt.LEMetaEvent), nil
}

// Disconnect issues Disconnect and waits for its command status.
func Disconnect(t *task.Task, connHandle uint16, reason uint8, timeout time.Duration) error {
	c := &cmd.Disconnect{ConnectionHandle: connHandle, Reason: reason}
	_, err := t.SendCmdWaitStatus(c, timeout)
	return err
}

// SetDataLength computes tx_time per §4.10 (`(tx_octets + 14) * 8`
// microseconds, matching S2) and issues LE Set Data Length.
func SetDataLength(t *task.Task, connHandle uint16, txOctets uint16, timeout time.Duration) (*evt.CommandComplete, error) {
	txTime := (txOctets + 14) * 8
	c := &cmd.LESetDataLength{ConnectionHandle: connHandle, TxOctets: txOctets, TxTime: txTime}
	return t.SendCmdWaitCompleteCheckStatus(c, timeout)
}

// SniffMode enters sniff mode and waits for the Mode Change confirmation.
func SniffMode(t *task.Task, c *cmd.SniffMode, timeout time.Duration) (*evt.ModeChange, error) {
	if _, err := t.SendCmdWaitStatus(c, timeout); err != nil {
		return nil, err
	}
	ev, err := t.WaitEvent(func(e evt.Event) bool {
		mc, ok := e.(*evt.ModeChange)
		return ok && mc.ConnectionHandle == c.ConnectionHandle
	}, timeout)
	if err != nil {
		return nil, err
	}
	return ev.(*evt.ModeChange), nil
}

// ExitSniffMode leaves sniff mode and waits for the Mode Change confirmation.
func ExitSniffMode(t *task.Task, connHandle uint16, timeout time.Duration) (*evt.ModeChange, error) {
	c := &cmd.ExitSniffMode{ConnectionHandle: connHandle}
	if _, err := t.SendCmdWaitStatus(c, timeout); err != nil {
		return nil, err
	}
	ev, err := t.WaitEvent(func(e evt.Event) bool {
		mc, ok := e.(*evt.ModeChange)
		return ok && mc.ConnectionHandle == connHandle
	}, timeout)
	if err != nil {
		return nil, err
	}
	return ev.(*evt.ModeChange), nil
}

// AdvertiseStart issues LE Set Advertising Parameters (interval, interval,
// 0, 0, 0, zero-addr, channel_map=0x7, filter=0) then LE Set Advertise
// Enable(1), per §4.10.
func AdvertiseStart(t *task.Task, interval uint16, timeout time.Duration) error {
	params := &cmd.LESetAdvertisingParameters{
		AdvertisingIntervalMin:  interval,
		AdvertisingIntervalMax:  interval,
		AdvertisingType:         0,
		OwnAddressType:          0,
		DirectAddressType:       0,
		AdvertisingChannelMap:   0x7,
		AdvertisingFilterPolicy: 0,
	}
	if _, err := t.SendCmdWaitCompleteCheckStatus(params, timeout); err != nil {
		return err
	}
	enable := &cmd.LESetAdvertiseEnable{AdvertisingEnable: 1}
	_, err := t.SendCmdWaitCompleteCheckStatus(enable, timeout)
	return err
}

// AdvertiseStop issues LE Set Advertise Enable(0).
func AdvertiseStop(t *task.Task, timeout time.Duration) error {
	enable := &cmd.LESetAdvertiseEnable{AdvertisingEnable: 0}
	_, err := t.SendCmdWaitCompleteCheckStatus(enable, timeout)
	return err
}
