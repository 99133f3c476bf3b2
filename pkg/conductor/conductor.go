// Package conductor starts a set of long running services in order and
// stops them in reverse order on request or on SIGINT/SIGTERM.
package conductor

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Service is anything with a run loop. Run must return promptly, send on
// started once running, and send on stopped after stop is closed.
type Service interface {
	Run(started, stopped chan bool, stop chan context.Context) error
}

type Option func(*Conductor)

// HookSignals stops the conductor on SIGINT or SIGTERM.
func HookSignals() Option {
	return func(c *Conductor) {
		c.hookSignals = true
	}
}

// Noisy logs every service start and stop at info level.
func Noisy() Option {
	return func(c *Conductor) {
		c.noisy = true
	}
}

// WithLogger replaces the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Conductor) {
		c.log = l
	}
}

type namedService struct {
	name    string
	service Service
	stop    chan context.Context
	stopped chan bool
}

type Conductor struct {
	services    []*namedService
	hookSignals bool
	noisy       bool
	log         logrus.FieldLogger
	stopOnce    sync.Once
	stopCh      chan struct{}
}

func NewConductor(opts ...Option) *Conductor {
	c := &Conductor{
		log:    logrus.StandardLogger(),
		stopCh: make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Service registers s. Services start in the order they are added.
func (c *Conductor) Service(name string, s Service) {
	c.services = append(c.services, &namedService{
		name:    name,
		service: s,
		stop:    make(chan context.Context),
		stopped: make(chan bool),
	})
}

// Stop asks all services to stop. Safe to call more than once.
func (c *Conductor) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Start runs all services and returns a channel that is closed once every
// service has stopped.
func (c *Conductor) Start() chan bool {
	done := make(chan bool)

	running := []*namedService{}
	for _, s := range c.services {
		started := make(chan bool)
		if err := s.service.Run(started, s.stopped, s.stop); err != nil {
			c.log.WithError(err).Errorf("service %s failed to start", s.name)
			c.Stop()
			break
		}
		<-started
		c.logf("started %s", s.name)
		running = append(running, s)
	}

	if c.hookSignals {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sigs:
				c.log.Infof("received %s, shutting down", sig)
				c.Stop()
			case <-c.stopCh:
			}
			signal.Stop(sigs)
		}()
	}

	go func() {
		<-c.stopCh
		for i := len(running) - 1; i >= 0; i-- {
			s := running[i]
			close(s.stop)
			<-s.stopped
			c.logf("stopped %s", s.name)
		}
		close(done)
	}()

	return done
}

func (c *Conductor) logf(format string, args ...any) {
	if c.noisy {
		c.log.Infof(format, args...)
	} else {
		c.log.Debugf(format, args...)
	}
}
