package radio

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
)

// IWListRunner returns the raw output of `iwlist <iface> scan`.
type IWListRunner func(ctx context.Context, interfaceName string) (string, error)

func RunIWList(ctx context.Context, interfaceName string) (string, error) {
	cmd := exec.CommandContext(ctx, "iwlist", interfaceName, "scan")
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

var (
	ssidRegex       = regexp.MustCompile(`ESSID:"(.*?)"`)
	addressRegex    = regexp.MustCompile(`Address: ([0-9A-Fa-f:]+)`)
	channelRegex    = regexp.MustCompile(`Channel:(\d+)`)
	frequencyRegex  = regexp.MustCompile(`Frequency:([\d.]+) GHz`)
	signalRegex     = regexp.MustCompile(`Signal level=(-?\d+) dBm`)
	qualityRegex    = regexp.MustCompile(`Quality=(\d+)/(\d+)`)
	encryptionRegex = regexp.MustCompile(`Encryption key:(on|off)`)
	modeRegex       = regexp.MustCompile(`Mode:(\S+)`)
)

// parseIWListOutput turns `iwlist scan` output into results. Cells
// without an address are skipped. Hidden networks come back with an
// empty SSID and are left for the sink to drop.
func parseIWListOutput(output string) []wifiscand.ScanResult {
	var networks []wifiscand.ScanResult
	cells := strings.Split(output, "Cell ")

	for _, cell := range cells {
		address := addressRegex.FindStringSubmatch(cell)
		if len(address) < 2 {
			continue
		}
		bssid, err := wifiscand.ParseMAC(address[1])
		if err != nil {
			continue
		}

		r := wifiscand.ScanResult{
			BSSID:    bssid,
			Security: wifiscand.SecurityUnknown,
		}

		if m := ssidRegex.FindStringSubmatch(cell); len(m) > 1 {
			r.SSID = m[1]
		}
		if m := channelRegex.FindStringSubmatch(cell); len(m) > 1 {
			if ch, err := strconv.ParseUint(m[1], 10, 8); err == nil {
				r.Channel = uint8(ch)
			}
		}
		if m := frequencyRegex.FindStringSubmatch(cell); len(m) > 1 {
			if ghz, err := strconv.ParseFloat(m[1], 64); err == nil {
				r.Frequency = uint32(ghz*1000 + 0.5)
				r.Band = wifiscand.BandForFrequency(r.Frequency)
			}
		}
		r.RSSI = parseSignal(cell)

		adhoc := false
		if m := modeRegex.FindStringSubmatch(cell); len(m) > 1 {
			adhoc = m[1] == "Ad-Hoc"
		}
		if m := encryptionRegex.FindStringSubmatch(cell); len(m) > 1 {
			r.Security = classifySecurity(cell, m[1] == "on", adhoc)
		}

		networks = append(networks, r)
	}

	return networks
}

// Some drivers only report Quality=x/y, map that onto -100..-30 dBm.
func parseSignal(cell string) int16 {
	if m := signalRegex.FindStringSubmatch(cell); len(m) > 1 {
		if dbm, err := strconv.ParseInt(m[1], 10, 16); err == nil {
			return int16(dbm)
		}
	}
	if m := qualityRegex.FindStringSubmatch(cell); len(m) > 2 {
		q, err1 := strconv.Atoi(m[1])
		scale, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && scale > 0 {
			return int16(-100 + (70*q)/scale)
		}
	}
	return -100
}

type ieInfo struct {
	present bool
	psk     bool
	ent     bool
	sae     bool
	ft      bool
	ccmp    bool
	tkip    bool
}

// parseIE reads the cipher and auth lines of the information element
// starting with header, up to the next IE.
func parseIE(cell, header string) ieInfo {
	var info ieInfo
	for _, block := range strings.Split(cell, "IE: ") {
		if !strings.HasPrefix(block, header) {
			continue
		}
		info.present = true
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "Pairwise Ciphers"):
				info.ccmp = info.ccmp || strings.Contains(line, "CCMP")
				info.tkip = info.tkip || strings.Contains(line, "TKIP")
			case strings.HasPrefix(line, "Authentication Suites"):
				info.psk = info.psk || strings.Contains(line, "PSK")
				info.ent = info.ent || strings.Contains(line, "802.1x")
				info.sae = info.sae || strings.Contains(line, "SAE")
				info.ft = info.ft || strings.Contains(line, "FT")
			}
		}
	}
	return info
}

func classifySecurity(cell string, encrypted, adhoc bool) wifiscand.Security {
	if !encrypted {
		if adhoc {
			return wifiscand.SecurityIBSSOpen
		}
		return wifiscand.SecurityOpen
	}

	rsn := parseIE(cell, "IEEE 802.11i/WPA2")
	wpa := parseIE(cell, "WPA Version 1")

	switch {
	case rsn.present && rsn.sae && rsn.psk:
		return wifiscand.SecurityWPA3WPA2PSK
	case rsn.present && rsn.sae:
		return wifiscand.SecurityWPA3SAE
	case rsn.present && rsn.ent:
		switch {
		case rsn.ft:
			return wifiscand.SecurityWPA2FBTEnt
		case rsn.ccmp && rsn.tkip:
			return wifiscand.SecurityWPA2MixedEnt
		case rsn.tkip:
			return wifiscand.SecurityWPA2TKIPEnt
		default:
			return wifiscand.SecurityWPA2AESEnt
		}
	case rsn.present && wpa.present:
		if rsn.tkip || wpa.tkip {
			return wifiscand.SecurityWPA2WPAMixedPSK
		}
		return wifiscand.SecurityWPA2WPAAESPSK
	case rsn.present:
		switch {
		case rsn.ft:
			return wifiscand.SecurityWPA2FBTPSK
		case rsn.ccmp && rsn.tkip:
			return wifiscand.SecurityWPA2MixedPSK
		case rsn.tkip:
			return wifiscand.SecurityWPA2TKIPPSK
		default:
			return wifiscand.SecurityWPA2AESPSK
		}
	case wpa.present && wpa.ent:
		switch {
		case wpa.ccmp && wpa.tkip:
			return wifiscand.SecurityWPAMixedEnt
		case wpa.ccmp:
			return wifiscand.SecurityWPAAESEnt
		default:
			return wifiscand.SecurityWPATKIPEnt
		}
	case wpa.present:
		switch {
		case wpa.ccmp && wpa.tkip:
			return wifiscand.SecurityWPAMixedPSK
		case wpa.ccmp:
			return wifiscand.SecurityWPAAESPSK
		default:
			return wifiscand.SecurityWPATKIPPSK
		}
	default:
		return wifiscand.SecurityWEPPSK
	}
}
