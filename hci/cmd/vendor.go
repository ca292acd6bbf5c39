package cmd

import "sync"

// Vendor implements a controller-specific command under OGF 0x3F. Scenarios
// define concrete vendor commands by wrapping Vendor with their own OCF and
// parameter bytes; the registration point below lets them attach a return
// parameter parser for their opcode just like a built-in command.
type Vendor struct {
	OCF    uint16
	Params []byte
}

func (c *Vendor) OpCode() uint16             { return Opcode(OGFVendor, c.OCF) }
func (c *Vendor) Completion() CompletionKind { return CompletesWithCommandComplete }
func (c *Vendor) Serialize() []byte          { return c.Params }

// ReturnParamsFactory builds a fresh, empty ReturnParams value of the shape
// a given opcode's Command Complete carries. The factory pattern (rather
// than a bare instance) keeps concurrent completions from aliasing the same
// struct.
type ReturnParamsFactory func() ReturnParams

var (
	registryMu sync.RWMutex
	registry   = map[uint16]ReturnParamsFactory{}
)

// Register attaches a return-parameter parser to opcode. Built-in commands
// register themselves in this package's init(); vendor commands register at
// runtime from scenario code (§4.3's "registration point").
func Register(opcode uint16, factory ReturnParamsFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[opcode] = factory
}

// Lookup returns the registered factory for opcode, if any.
func Lookup(opcode uint16) (ReturnParamsFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[opcode]
	return f, ok
}

func init() {
	status := func() ReturnParams { return &StatusRP{} }

	Register((&Reset{}).OpCode(), status)
	Register((&SetEventMask{}).OpCode(), status)
	Register((&WritePageTimeout{}).OpCode(), status)
	Register((&WriteScanEnable{}).OpCode(), status)
	Register((&WritePageScanActivity{}).OpCode(), status)
	Register((&WriteInquiryMode{}).OpCode(), status)
	Register((&LESetEventMask{}).OpCode(), status)
	Register((&LESetAdvertisingParameters{}).OpCode(), status)
	Register((&LESetAdvertisingData{}).OpCode(), status)
	Register((&LESetScanResponseData{}).OpCode(), status)
	Register((&LESetAdvertiseEnable{}).OpCode(), status)
	Register((&LESetScanParameters{}).OpCode(), status)
	Register((&LESetScanEnable{}).OpCode(), status)
	Register((&LECreateConnectionCancel{}).OpCode(), status)
	Register((&LEClearWhiteList{}).OpCode(), status)
	Register((&LEAddDeviceToWhiteList{}).OpCode(), status)
	Register((&LERemoveDeviceFromWhiteList{}).OpCode(), status)
	Register((&LESetHostChannelClassification{}).OpCode(), status)
	Register((&LEWriteSuggestedDefaultDataLength{}).OpCode(), status)
	Register((&LESetExtendedAdvertisingData{}).OpCode(), status)
	Register((&LESetExtendedScanResponseData{}).OpCode(), status)
	Register((&LESetExtendedAdvertisingEnable{}).OpCode(), status)
	Register((&LERemoveAdvertisingSet{}).OpCode(), status)
	Register((&LEClearAdvertisingSets{}).OpCode(), status)
	Register((&LESetExtendedScanParameters{}).OpCode(), status)
	Register((&LESetExtendedScanEnable{}).OpCode(), status)

	Register((&WriteLinkPolicySettings{}).OpCode(), func() ReturnParams { return &WriteLinkPolicySettingsRP{} })
	Register((&ReadStoredLinkKey{}).OpCode(), func() ReturnParams { return &ReadStoredLinkKeyRP{} })
	Register((&ReadScanEnable{}).OpCode(), func() ReturnParams { return &ReadScanEnableRP{} })
	Register((&ReadInquiryMode{}).OpCode(), func() ReturnParams { return &ReadInquiryModeRP{} })
	Register((&ReadLocalSupportedFeatures{}).OpCode(), func() ReturnParams { return &ReadLocalSupportedFeaturesRP{} })
	Register((&ReadLocalExtendedFeatures{}).OpCode(), func() ReturnParams { return &ReadLocalExtendedFeaturesRP{} })
	Register((&ReadBDAddr{}).OpCode(), func() ReturnParams { return &ReadBDAddrRP{} })
	Register((&LEReadBufferSize{}).OpCode(), func() ReturnParams { return &LEReadBufferSizeRP{} })
	Register((&LEReadLocalSupportedFeatures{}).OpCode(), func() ReturnParams { return &LEReadLocalSupportedFeaturesRP{} })
	Register((&LEReadWhiteListSize{}).OpCode(), func() ReturnParams { return &LEReadWhiteListSizeRP{} })
	Register((&LELTKReply{}).OpCode(), func() ReturnParams { return &LELTKReplyRP{} })
	Register((&LELTKNegReply{}).OpCode(), func() ReturnParams { return &LELTKReplyRP{} })
	Register((&LESetDataLength{}).OpCode(), func() ReturnParams { return &LESetDataLengthRP{} })
	Register((&LEReadSuggestedDefaultDataLength{}).OpCode(), func() ReturnParams { return &LEReadSuggestedDefaultDataLengthRP{} })
	Register((&LESetExtendedAdvertisingParameters{}).OpCode(), func() ReturnParams { return &LESetExtendedAdvertisingParametersRP{} })
	Register((&LEReadMaximumAdvertisingDataLength{}).OpCode(), func() ReturnParams { return &LEReadMaximumAdvertisingDataLengthRP{} })
	Register((&LEReadNumberOfSupportedAdvertisingSets{}).OpCode(), func() ReturnParams { return &LEReadNumberOfSupportedAdvertisingSetsRP{} })
}
