package wifiscand

import "fmt"

// FilterMode selects which ScanFilter the orchestrator builds for a cycle.
// Modes are visited in declaration order by FilterSelector.Advance.
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterBySSID
	FilterByRSSIRange
	FilterByHardwareAddress
	FilterByBand

	filterModeCount // keep last
)

func (m FilterMode) String() string {
	switch m {
	case FilterNone:
		return "none"
	case FilterBySSID:
		return "ssid"
	case FilterByRSSIRange:
		return "rssi"
	case FilterByHardwareAddress:
		return "mac"
	case FilterByBand:
		return "band"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// FilterSelector is the round robin mode selector driven by presses.
// It is owned by the orchestrator goroutine and is not safe for
// concurrent use.
type FilterSelector struct {
	mode FilterMode
}

func (t *FilterSelector) Mode() FilterMode {
	return t.mode
}

// Advance moves to the next mode, wrapping to FilterNone after the last.
func (t *FilterSelector) Advance() {
	t.mode++
	if t.mode >= filterModeCount {
		t.mode = FilterNone
	}
}

// FilterTargets holds the fixed parameter used by each filter mode.
type FilterTargets struct {
	SSID    string
	MinRSSI int16
	BSSID   MAC
	Band    Band
}

// ScanFilter is built fresh each cycle and handed to Radio.StartScan.
type ScanFilter struct {
	Mode    FilterMode
	SSID    string
	MinRSSI int16
	BSSID   MAC
	Band    Band
}

// BuildScanFilter returns nil for FilterNone.
func BuildScanFilter(mode FilterMode, targets FilterTargets) *ScanFilter {
	switch mode {
	case FilterBySSID:
		return &ScanFilter{Mode: mode, SSID: targets.SSID}
	case FilterByRSSIRange:
		return &ScanFilter{Mode: mode, MinRSSI: targets.MinRSSI}
	case FilterByHardwareAddress:
		return &ScanFilter{Mode: mode, BSSID: targets.BSSID}
	case FilterByBand:
		return &ScanFilter{Mode: mode, Band: targets.Band}
	default:
		return nil
	}
}

// Matches is used by radios that filter on the host side. A nil filter
// matches everything.
func (f *ScanFilter) Matches(r ScanResult) bool {
	if f == nil {
		return true
	}
	switch f.Mode {
	case FilterBySSID:
		return r.SSID == f.SSID
	case FilterByRSSIRange:
		return r.RSSI >= f.MinRSSI
	case FilterByHardwareAddress:
		return r.BSSID == f.BSSID
	case FilterByBand:
		return f.Band.Contains(r.Band)
	default:
		return true
	}
}

// Describe is the operator facing summary logged once per cycle.
func (f *ScanFilter) Describe() string {
	if f == nil {
		return "Scanning without any filter"
	}
	switch f.Mode {
	case FilterBySSID:
		return fmt.Sprintf("Scanning for %s.", f.SSID)
	case FilterByRSSIRange:
		return fmt.Sprintf("Scanning for RSSI > %d dBm.", f.MinRSSI)
	case FilterByHardwareAddress:
		return fmt.Sprintf("Scanning for %s.", f.BSSID)
	case FilterByBand:
		return fmt.Sprintf("Scanning in %s band.", f.Band)
	default:
		return "Scanning without any filter"
	}
}
