package button

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/sirupsen/logrus"
)

// SignalButton turns SIGUSR1 into a press:
//
//	kill -USR1 $(pidof wifiscand)
type SignalButton struct {
	target wifiscand.Pressable
	sig    os.Signal
	log    logrus.FieldLogger
}

func NewSignalButton(target wifiscand.Pressable, log logrus.FieldLogger) SignalButton {
	return SignalButton{
		target: target,
		sig:    syscall.SIGUSR1,
		log:    log.WithField("component", "signal-button"),
	}
}

func (t SignalButton) Run(started, stopped chan bool, stop chan context.Context) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, t.sig)
	go func() {
		started <- true
	mainloop:
		for {
			select {
			case <-stop:
				break mainloop
			case <-sigs:
				t.log.Debug("press")
				t.target.Press()
			}
		}
		signal.Stop(sigs)
		stopped <- true
	}()
	return nil
}
