package button

import (
	"bufio"
	"context"
	"io"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/sirupsen/logrus"
)

// LineButton presses once per line read, so hitting enter on a terminal
// rotates the filter.
type LineButton struct {
	r      io.Reader
	target wifiscand.Pressable
	log    logrus.FieldLogger
}

func NewLineButton(r io.Reader, target wifiscand.Pressable, log logrus.FieldLogger) LineButton {
	return LineButton{
		r:      r,
		target: target,
		log:    log.WithField("component", "line-button"),
	}
}

func (t LineButton) Run(started, stopped chan bool, stop chan context.Context) error {
	lines := make(chan struct{})
	done := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(t.r)
		for scanner.Scan() {
			select {
			case lines <- struct{}{}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			t.log.WithError(err).Warn("press input closed")
		}
		close(lines)
	}()

	go func() {
		started <- true
	mainloop:
		for {
			select {
			case <-stop:
				break mainloop
			case _, ok := <-lines:
				if !ok {
					lines = nil
					continue mainloop
				}
				t.log.Debug("press")
				t.target.Press()
			}
		}
		// a reader still blocked on stdin is left behind, we're exiting.
		close(done)
		stopped <- true
	}()
	return nil
}
