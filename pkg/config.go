package wifiscand

import (
	"fmt"
	"time"
)

const (
	DefaultScanDelay       = 5 * time.Second
	DefaultTargetSSID      = "MY_TARGET_SSID"
	DefaultTargetMinRSSI   = -60
	DefaultTargetBSSID     = "00:01:02:03:04:05"
	DefaultTargetBand      = "2.4"
	DefaultMonitorInterval = 30 * time.Second
)

type ServerConfig struct {
	Interface       string
	ScanDelay       time.Duration
	Targets         TargetConfig
	PressSources    []string // "signal", "stdin"
	Simulate        bool
	ReportURL       string
	MonitorInterval time.Duration
	Verbose         bool
}

// TargetConfig is the config file form of FilterTargets.
type TargetConfig struct {
	SSID    string
	MinRSSI int
	BSSID   string
	Band    string
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ScanDelay: DefaultScanDelay,
		Targets: TargetConfig{
			SSID:    DefaultTargetSSID,
			MinRSSI: DefaultTargetMinRSSI,
			BSSID:   DefaultTargetBSSID,
			Band:    DefaultTargetBand,
		},
		PressSources:    []string{"signal"},
		MonitorInterval: DefaultMonitorInterval,
	}
}

func (t ServerConfig) Validate() error {
	if t.ScanDelay <= 0 {
		return fmt.Errorf("scan delay must be positive, got %s", t.ScanDelay)
	}
	if _, err := t.Targets.FilterTargets(); err != nil {
		return err
	}
	for _, p := range t.PressSources {
		switch p {
		case "signal", "stdin":
		default:
			return fmt.Errorf("unknown press source %q", p)
		}
	}
	return nil
}

func (t TargetConfig) FilterTargets() (FilterTargets, error) {
	if t.MinRSSI > 0 || t.MinRSSI < -128 {
		return FilterTargets{}, fmt.Errorf("%w: rssi %d is not a valid dBm value", ErrInvalidFilterTarget, t.MinRSSI)
	}
	if len(t.SSID) > 32 {
		return FilterTargets{}, fmt.Errorf("%w: ssid %q is longer than 32 bytes", ErrInvalidFilterTarget, t.SSID)
	}
	mac, err := ParseMAC(t.BSSID)
	if err != nil {
		return FilterTargets{}, err
	}
	band, err := ParseBand(t.Band)
	if err != nil {
		return FilterTargets{}, err
	}
	return FilterTargets{
		SSID:    t.SSID,
		MinRSSI: int16(t.MinRSSI),
		BSSID:   mac,
		Band:    band,
	}, nil
}
