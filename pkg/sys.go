package wifiscand

import "errors"

// see ./system/ for implementations

var (
	// ErrScanInProgress is returned by Radio.StartScan when the previous
	// scan has not finished yet. It is expected and not fatal.
	ErrScanInProgress = errors.New("scan already in progress")

	// ErrNoInterface means no usable wireless interface was found.
	ErrNoInterface = errors.New("no wireless interface found")

	// ErrRadioNotReady is returned by StartScan before a successful Init.
	ErrRadioNotReady = errors.New("radio is not initialized")

	// ErrInvalidFilterTarget is returned when a configured filter
	// parameter can't be parsed.
	ErrInvalidFilterTarget = errors.New("invalid filter target")
)

// ResultCallback is invoked by a Radio zero or more times with
// ScanIncomplete, then exactly once with a terminal status and a nil
// result. The result pointer is only valid for the duration of the call.
type ResultCallback func(result *ScanResult, status ScanStatus)

type InterfaceType string

const (
	InterfaceStation InterfaceType = "sta"
)

type InterfaceConfig struct {
	Name string // empty picks the first station interface
	Type InterfaceType
}

// Radio is the scan capable wireless device.
type Radio interface {
	Init(InterfaceConfig) error
	// StartScan must not block until the scan finishes. Results are
	// delivered to cb from another goroutine.
	StartScan(cb ResultCallback, filter *ScanFilter) error
}

// ResultObserver receives everything the sink prints. Both methods are
// called from the radio's delivery goroutine and must not block.
type ResultObserver interface {
	ObserveResult(ScanResult)
	ObserveComplete(status ScanStatus, count uint32)
}

// Pressable is implemented by anything a press source can poke.
type Pressable interface {
	Press()
}
