package system

import (
	"context"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"
)

// ProcStatus is a snapshot of the daemon's own resource use.
type ProcStatus struct {
	CPUPercent float64
	MEMPercent float64
	MEMMb      float64
	Threads    int32
}

/* SelfMonitor
 *
 * SelfMonitor tells systemd when the daemon is ready, keeps the
 * unit watchdog fed (if the unit has WatchdogSec set), and every
 * interval logs our own CPU and memory use so we can spot leaks
 * on small devices.
 */
type SelfMonitor struct {
	interval time.Duration
	log      logrus.FieldLogger
	notify   func(state string) (bool, error)
	watchdog func() (time.Duration, error)
	stats    func() (ProcStatus, error)
}

func NewSelfMonitor(interval time.Duration, log logrus.FieldLogger) SelfMonitor {
	return SelfMonitor{
		interval: interval,
		log:      log.WithField("component", "monitor"),
		notify: func(state string) (bool, error) {
			return daemon.SdNotify(false, state)
		},
		watchdog: func() (time.Duration, error) {
			return daemon.SdWatchdogEnabled(false)
		},
		stats: getStatus,
	}
}

func (t SelfMonitor) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		if _, err := t.notify(daemon.SdNotifyReady); err != nil {
			t.log.WithError(err).Warn("couldn't notify systemd")
		}

		var wdC <-chan time.Time
		if wd, err := t.watchdog(); err == nil && wd > 0 {
			wdTicker := time.NewTicker(wd / 2)
			defer wdTicker.Stop()
			wdC = wdTicker.C
		}

		var statC <-chan time.Time
		if t.interval > 0 {
			statTicker := time.NewTicker(t.interval)
			defer statTicker.Stop()
			statC = statTicker.C
		}

		started <- true
	mainloop:
		for {
			select {
			case <-stop:
				break mainloop
			case <-wdC:
				t.notify(daemon.SdNotifyWatchdog)
			case <-statC:
				s, err := t.stats()
				if err != nil {
					t.log.WithError(err).Warn("error getting process stats")
					continue mainloop
				}
				t.log.WithFields(logrus.Fields{
					"cpu":     s.CPUPercent,
					"mem":     s.MEMPercent,
					"rss_mb":  s.MEMMb,
					"threads": s.Threads,
				}).Debug("process stats")
			}
		}
		t.notify(daemon.SdNotifyStopping)
		stopped <- true
	}()
	return nil
}

func getStatus() (ProcStatus, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcStatus{}, err
	}

	out := ProcStatus{}
	if c, err := proc.CPUPercent(); err == nil {
		out.CPUPercent = c
	}
	if m, err := proc.MemoryPercent(); err == nil {
		out.MEMPercent = float64(m)
	}
	if memInfo, err := proc.MemoryInfo(); err == nil {
		out.MEMMb = float64(memInfo.RSS) / float64(1048576)
	}
	if n, err := proc.NumThreads(); err == nil {
		out.Threads = n
	}
	return out, nil
}
