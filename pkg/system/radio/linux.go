package radio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/mdlayher/wifi"
	"github.com/sirupsen/logrus"
)

var _ wifiscand.Radio = &LinuxRadio{}

// LinuxRadio finds its interface over nl80211 and scans with iwlist.
type LinuxRadio struct {
	log        logrus.FieldLogger
	interfaces func() ([]*wifi.Interface, error)
	iwlist     IWListRunner
	timeout    time.Duration // per iwlist run

	mu       sync.Mutex
	iface    string
	scanning atomic.Bool
}

// DefaultScanTimeout bounds a single iwlist run. A wedged driver then
// aborts the scan instead of stalling the scan loop.
const DefaultScanTimeout = 30 * time.Second

func NewLinuxRadio(log logrus.FieldLogger) *LinuxRadio {
	return &LinuxRadio{
		log:        log.WithField("component", "radio"),
		interfaces: ListInterfaces,
		iwlist:     RunIWList,
		timeout:    DefaultScanTimeout,
	}
}

// ListInterfaces returns every nl80211 interface on the host.
func ListInterfaces() ([]*wifi.Interface, error) {
	wifiClient, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("could not init a wifi interface client: %w", err)
	}
	defer wifiClient.Close()

	wifiInterfaces, err := wifiClient.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("could not list wifi interfaces: %w", err)
	}
	return wifiInterfaces, nil
}

func (t *LinuxRadio) Init(config wifiscand.InterfaceConfig) error {
	wifiInterfaces, err := t.interfaces()
	if err != nil {
		return err
	}

	for _, ifi := range wifiInterfaces {
		if ifi.Name == "" {
			continue
		}
		if config.Name != "" && ifi.Name != config.Name {
			continue
		}
		if config.Name == "" && config.Type == wifiscand.InterfaceStation && ifi.Type != wifi.InterfaceTypeStation {
			continue
		}

		t.mu.Lock()
		t.iface = ifi.Name
		t.mu.Unlock()
		t.log.WithFields(logrus.Fields{
			"iface": ifi.Name,
			"mac":   ifi.HardwareAddr.String(),
			"phy":   ifi.PHY,
		}).Info("using wireless interface")
		return nil
	}

	if config.Name != "" {
		return fmt.Errorf("%w: %s", wifiscand.ErrNoInterface, config.Name)
	}
	return wifiscand.ErrNoInterface
}

func (t *LinuxRadio) Interface() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.iface
}

func (t *LinuxRadio) StartScan(cb wifiscand.ResultCallback, filter *wifiscand.ScanFilter) error {
	iface := t.Interface()
	if iface == "" {
		return wifiscand.ErrRadioNotReady
	}
	if !t.scanning.CompareAndSwap(false, true) {
		return wifiscand.ErrScanInProgress
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		output, err := t.iwlist(ctx, iface)
		if err != nil {
			t.log.WithError(err).WithField("iface", iface).Warn("iwlist scan failed")
			t.finish(cb, wifiscand.ScanAborted)
			return
		}
		for _, r := range parseIWListOutput(output) {
			if !filter.Matches(r) {
				continue
			}
			cb(&r, wifiscand.ScanIncomplete)
		}
		t.finish(cb, wifiscand.ScanComplete)
	}()
	return nil
}

// The busy flag is cleared before the terminal callback so the next
// StartScan issued after the wake-up is accepted.
// finish stays busy until the terminal callback returns, so nothing from
// the next scan can overlap it.
func (t *LinuxRadio) finish(cb wifiscand.ResultCallback, status wifiscand.ScanStatus) {
	cb(nil, status)
	t.scanning.Store(false)
}
