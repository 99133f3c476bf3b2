package radio

import (
	"sync/atomic"
	"time"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/sirupsen/logrus"
)

var _ wifiscand.Radio = &SimRadio{}

// DefaultSimNetworks is what SimRadio reports when no table is given.
var DefaultSimNetworks = []wifiscand.ScanResult{
	{SSID: "MY_TARGET_SSID", BSSID: wifiscand.MAC{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, RSSI: -40, Channel: 6, Frequency: 2437, Band: wifiscand.Band2_4GHz, Security: wifiscand.SecurityWPA2AESPSK},
	{SSID: "coffee-shop", BSSID: wifiscand.MAC{0x3C, 0x84, 0x6A, 0x11, 0x22, 0x33}, RSSI: -67, Channel: 1, Frequency: 2412, Band: wifiscand.Band2_4GHz, Security: wifiscand.SecurityOpen},
	{SSID: "", BSSID: wifiscand.MAC{0x3C, 0x84, 0x6A, 0x11, 0x22, 0x34}, RSSI: -70, Channel: 1, Frequency: 2412, Band: wifiscand.Band2_4GHz, Security: wifiscand.SecurityWPA2AESPSK},
	{SSID: "dogenet-5g", BSSID: wifiscand.MAC{0xA4, 0x2B, 0xB0, 0xDE, 0xAD, 0x01}, RSSI: -55, Channel: 36, Frequency: 5180, Band: wifiscand.Band5GHz, Security: wifiscand.SecurityWPA3WPA2PSK},
	{SSID: "corp-wlan", BSSID: wifiscand.MAC{0x00, 0x1A, 0x1E, 0x00, 0x10, 0x20}, RSSI: -72, Channel: 44, Frequency: 5220, Band: wifiscand.Band5GHz, Security: wifiscand.SecurityWPA2AESEnt},
	{SSID: "lab-6e", BSSID: wifiscand.MAC{0x00, 0x1A, 0x1E, 0x00, 0x60, 0x01}, RSSI: -61, Channel: 37, Frequency: 6135, Band: wifiscand.Band6GHz, Security: wifiscand.SecurityWPA3SAE},
}

// SimRadio streams a fixed table of networks through the normal callback
// contract, for development machines without a wireless card.
type SimRadio struct {
	Networks []wifiscand.ScanResult
	Spacing  time.Duration // delay between results

	log      logrus.FieldLogger
	ready    atomic.Bool
	scanning atomic.Bool
}

func NewSimRadio(log logrus.FieldLogger) *SimRadio {
	return &SimRadio{
		Networks: DefaultSimNetworks,
		Spacing:  50 * time.Millisecond,
		log:      log.WithField("component", "sim-radio"),
	}
}

func (t *SimRadio) Init(config wifiscand.InterfaceConfig) error {
	t.log.WithField("iface", config.Name).Info("using simulated radio")
	t.ready.Store(true)
	return nil
}

func (t *SimRadio) StartScan(cb wifiscand.ResultCallback, filter *wifiscand.ScanFilter) error {
	if !t.ready.Load() {
		return wifiscand.ErrRadioNotReady
	}
	if !t.scanning.CompareAndSwap(false, true) {
		return wifiscand.ErrScanInProgress
	}

	networks := make([]wifiscand.ScanResult, len(t.Networks))
	copy(networks, t.Networks)

	go func() {
		for _, r := range networks {
			if t.Spacing > 0 {
				time.Sleep(t.Spacing)
			}
			if !filter.Matches(r) {
				continue
			}
			cb(&r, wifiscand.ScanIncomplete)
		}
		cb(nil, wifiscand.ScanComplete)
		t.scanning.Store(false)
	}()
	return nil
}
