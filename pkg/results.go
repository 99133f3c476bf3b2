package wifiscand

import (
	"fmt"
	"net"
)

// ScanStatus is passed with every result callback. Incomplete means more
// results follow, anything else is terminal.
type ScanStatus int

const (
	ScanIncomplete ScanStatus = iota
	ScanComplete
	ScanAborted
)

func (s ScanStatus) String() string {
	switch s {
	case ScanIncomplete:
		return "incomplete"
	case ScanComplete:
		return "complete"
	case ScanAborted:
		return "aborted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether no further results follow this status.
func (s ScanStatus) Terminal() bool {
	return s != ScanIncomplete
}

// A single discovered network, as delivered by a Radio.
type ScanResult struct {
	SSID      string
	BSSID     MAC
	RSSI      int16 // dBm
	Channel   uint8
	Frequency uint32 // MHz, 0 if unknown
	Band      Band
	Security  Security
}

// MAC is a 6 byte hardware address, printed as XX:XX:XX:XX:XX:XX
type MAC [6]byte

func (m MAC) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

func ParseMAC(s string) (MAC, error) {
	var m MAC
	hw, err := net.ParseMAC(s)
	if err != nil {
		return m, fmt.Errorf("%w: %s", ErrInvalidFilterTarget, err)
	}
	if len(hw) != len(m) {
		return m, fmt.Errorf("%w: %q is not a 6 byte address", ErrInvalidFilterTarget, s)
	}
	copy(m[:], hw)
	return m, nil
}

type Security int

const (
	SecurityOpen Security = iota
	SecurityWEPPSK
	SecurityWEPShared
	SecurityWPATKIPPSK
	SecurityWPAAESPSK
	SecurityWPAMixedPSK
	SecurityWPA2AESPSK
	SecurityWPA2TKIPPSK
	SecurityWPA2MixedPSK
	SecurityWPA2FBTPSK
	SecurityWPA3SAE
	SecurityWPA3WPA2PSK
	SecurityIBSSOpen
	SecurityWPSSecure
	SecurityUnknown
	SecurityWPA2WPAAESPSK
	SecurityWPA2WPAMixedPSK
	SecurityWPATKIPEnt
	SecurityWPAAESEnt
	SecurityWPAMixedEnt
	SecurityWPA2TKIPEnt
	SecurityWPA2AESEnt
	SecurityWPA2MixedEnt
	SecurityWPA2FBTEnt
)

func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "OPEN"
	case SecurityWEPPSK:
		return "WEP-PSK"
	case SecurityWEPShared:
		return "WEP-SHARED"
	case SecurityWPATKIPPSK:
		return "WPA-TKIP-PSK"
	case SecurityWPAAESPSK:
		return "WPA-AES-PSK"
	case SecurityWPAMixedPSK:
		return "WPA-MIXED-PSK"
	case SecurityWPA2AESPSK:
		return "WPA2-AES-PSK"
	case SecurityWPA2TKIPPSK:
		return "WPA2-TKIP-PSK"
	case SecurityWPA2MixedPSK:
		return "WPA2-MIXED-PSK"
	case SecurityWPA2FBTPSK:
		return "WPA2-FBT-PSK"
	case SecurityWPA3SAE:
		return "WPA3-SAE"
	case SecurityWPA3WPA2PSK:
		return "WPA3-WPA2-PSK"
	case SecurityIBSSOpen:
		return "IBSS-OPEN"
	case SecurityWPSSecure:
		return "WPS-SECURE"
	case SecurityWPA2WPAAESPSK:
		return "WPA2-WPA-AES-PSK"
	case SecurityWPA2WPAMixedPSK:
		return "WPA2-WPA-MIXED-PSK"
	case SecurityWPATKIPEnt:
		return "WPA-TKIP-ENT"
	case SecurityWPAAESEnt:
		return "WPA-AES-ENT"
	case SecurityWPAMixedEnt:
		return "WPA-MIXED-ENT"
	case SecurityWPA2TKIPEnt:
		return "WPA2-TKIP-ENT"
	case SecurityWPA2AESEnt:
		return "WPA2-AES-ENT"
	case SecurityWPA2MixedEnt:
		return "WPA2-MIXED-ENT"
	case SecurityWPA2FBTEnt:
		return "WPA2-FBT-ENT"
	case SecurityUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

type Band int

const (
	BandAny Band = iota
	Band2_4GHz
	Band5GHz
	Band6GHz
)

func (b Band) String() string {
	switch b {
	case BandAny:
		return "2.4 GHz, 5 GHz and 6 GHz"
	case Band2_4GHz:
		return "2.4 GHz"
	case Band5GHz:
		return "5 GHz"
	case Band6GHz:
		return "6 GHz"
	default:
		return "unknown"
	}
}

// ParseBand accepts the short names used in config files.
func ParseBand(s string) (Band, error) {
	switch s {
	case "any", "":
		return BandAny, nil
	case "2.4", "2.4ghz", "2.4GHz":
		return Band2_4GHz, nil
	case "5", "5ghz", "5GHz":
		return Band5GHz, nil
	case "6", "6ghz", "6GHz":
		return Band6GHz, nil
	default:
		return BandAny, fmt.Errorf("%w: unknown band %q", ErrInvalidFilterTarget, s)
	}
}

// BandForFrequency maps a centre frequency in MHz to its band. Frequencies
// outside the three Wi-Fi bands return BandAny.
func BandForFrequency(mhz uint32) Band {
	switch {
	case mhz >= 2400 && mhz <= 2500:
		return Band2_4GHz
	case mhz >= 5150 && mhz < 5925:
		return Band5GHz
	case mhz >= 5925 && mhz <= 7125:
		return Band6GHz
	default:
		return BandAny
	}
}

// Contains reports whether b covers other. BandAny covers every band.
func (b Band) Contains(other Band) bool {
	return b == BandAny || b == other
}
