package evt

import (
	"fmt"

	"github.com/bthci/hcitest/hcierr"
)

func parseErrorf(format string, args ...interface{}) error {
	return &hcierr.ParseError{What: fmt.Sprintf(format, args...)}
}

func parseEvent(code uint8, params []byte) (Event, error) {
	switch code {
	case CodeInquiryComplete:
		e := &InquiryComplete{}
		return e, e.unmarshal(params)
	case CodeConnectionComplete:
		e := &ConnectionComplete{}
		return e, e.unmarshal(params)
	case CodeConnectionRequest:
		e := &ConnectionRequest{}
		return e, e.unmarshal(params)
	case CodeDisconnectionComplete:
		e := &DisconnectionComplete{}
		return e, e.unmarshal(params)
	case CodeRemoteNameReqComplete:
		e := &RemoteNameReqComplete{}
		return e, e.unmarshal(params)
	case CodeEncryptionChange:
		e := &EncryptionChange{}
		return e, e.unmarshal(params)
	case CodeReadRemoteFeaturesComplete:
		e := &ReadRemoteFeaturesComplete{}
		return e, e.unmarshal(params)
	case CodeReadRemoteVersionComplete:
		e := &ReadRemoteVersionComplete{}
		return e, e.unmarshal(params)
	case CodeCommandComplete:
		e := &CommandComplete{}
		return e, e.unmarshal(params)
	case CodeCommandStatus:
		e := &CommandStatus{}
		return e, e.unmarshal(params)
	case CodeRoleChange:
		e := &RoleChange{}
		return e, e.unmarshal(params)
	case CodeNumberOfCompletedPackets:
		e := &NumberOfCompletedPackets{}
		return e, e.unmarshal(params)
	case CodeModeChange:
		e := &ModeChange{}
		return e, e.unmarshal(params)
	case CodeMaxSlotsChange:
		e := &MaxSlotsChange{}
		return e, e.unmarshal(params)
	case CodePageScanRepetitionModeChange:
		e := &PageScanRepetitionModeChange{}
		return e, e.unmarshal(params)
	case CodeInquiryResultWithRSSI:
		e := &InquiryResultWithRSSI{}
		return e, e.unmarshal(params)
	case CodeReadRemoteExtFeaturesComplete:
		e := &ReadRemoteExtFeaturesComplete{}
		return e, e.unmarshal(params)
	case CodeVendor:
		return &Vendor{Params: append([]byte(nil), params...)}, nil
	default:
		return &Unknown{EventCode: code, Params: append([]byte(nil), params...)}, nil
	}
}

func parseLEMeta(params []byte) (Event, error) {
	if len(params) < 1 {
		return nil, parseErrorf("LE meta event missing sub-event code")
	}
	subCode := params[0]
	body := params[1:]

	switch subCode {
	case SubCodeLEConnectionComplete:
		e := &LEConnectionComplete{}
		return e, e.unmarshal(body)
	case SubCodeLEAdvertisingReport:
		e := &LEAdvertisingReport{}
		return e, e.unmarshal(body)
	case SubCodeLEConnectionUpdateComplete:
		e := &LEConnectionUpdateComplete{}
		return e, e.unmarshal(body)
	case SubCodeLEReadRemoteUsedFeaturesComplete:
		e := &LEReadRemoteUsedFeaturesComplete{}
		return e, e.unmarshal(body)
	case SubCodeLELTKRequest:
		e := &LELTKRequest{}
		return e, e.unmarshal(body)
	case SubCodeLEDataLengthChange:
		e := &LEDataLengthChange{}
		return e, e.unmarshal(body)
	case SubCodeLEEnhancedConnectionComplete:
		e := &LEEnhancedConnectionComplete{}
		return e, e.unmarshal(body)
	default:
		return &UnknownLESubEvent{LESubCode: subCode, Params: append([]byte(nil), body...)}, nil
	}
}
