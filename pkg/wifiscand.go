/*
wifiscand internal architecture:

 The Orchestrator owns one goroutine that scans forever. Presses arrive
 from press sources (SIGUSR1, stdin) and only set a flag. Results arrive
 on the radio's own goroutine and go straight to the ResultSink, which
 prints them and wakes the Orchestrator once the scan is over.

                 ┌────────────────────────────┐
 Press source ──►│ PressFlag   (atomic bit)   │
                 │     │                      │
                 │     ▼                      │
                 │ Orchestrator ── StartScan ─┼──► Radio
                 │  ▲  Idle → Requested       │      │
                 │  │  → Waiting → Idle       │      │ results
                 │  │                         │      ▼
                 │ CompletionSignal ◄─────────┼── ResultSink ──► console
                 │  (1 slot chan)             │        │
                 └────────────────────────────┘        ▼
                                                   ResultObserver
*/

package wifiscand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type OrchestratorState int32

const (
	StateIdle OrchestratorState = iota
	StateScanRequested
	StateWaiting
)

func (s OrchestratorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanRequested:
		return "scan-requested"
	case StateWaiting:
		return "waiting"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// CycleOutcome says what a single Cycle did with its scan request.
type CycleOutcome int

const (
	// The radio accepted the request and the cycle waited for completion.
	CycleScanned CycleOutcome = iota
	// The radio was still busy, the cycle went straight to the delay.
	CycleSkipped
)

type Orchestrator struct {
	radio    Radio
	sink     *ResultSink
	selector FilterSelector
	press    PressFlag
	done     *CompletionSignal
	targets  FilterTargets
	iface    InterfaceConfig
	delay    time.Duration
	state    atomic.Int32
	log      logrus.FieldLogger
}

func NewOrchestrator(
	config ServerConfig,
	radio Radio,
	out io.Writer,
	observer ResultObserver,
	log logrus.FieldLogger,
) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	targets, err := config.Targets.FilterTargets()
	if err != nil {
		return nil, err
	}

	done := NewCompletionSignal()
	t := &Orchestrator{
		radio:   radio,
		sink:    NewResultSink(out, done, observer),
		done:    done,
		targets: targets,
		iface:   InterfaceConfig{Name: config.Interface, Type: InterfaceStation},
		delay:   config.ScanDelay,
		log:     log.WithField("component", "orchestrator"),
	}
	return t, nil
}

// Init brings up the radio. The loop must not start if this fails.
func (t *Orchestrator) Init() error {
	if err := t.radio.Init(t.iface); err != nil {
		return fmt.Errorf("radio init: %w", err)
	}
	return nil
}

// Press records a button press. Safe to call from any goroutine.
func (t *Orchestrator) Press() {
	t.press.Set()
}

func (t *Orchestrator) Mode() FilterMode {
	return t.selector.Mode()
}

func (t *Orchestrator) State() OrchestratorState {
	return OrchestratorState(t.state.Load())
}

func (t *Orchestrator) Sink() *ResultSink {
	return t.sink
}

func (t *Orchestrator) setState(s OrchestratorState) {
	t.state.Store(int32(s))
	t.log.WithField("state", s).Debug("state change")
}

// Cycle runs one scan: consume a pending press, scan, wait for completion
// when the scan was accepted, then sleep the inter-scan delay. An error is
// either ctx's error or a fatal radio error.
func (t *Orchestrator) Cycle(ctx context.Context) (CycleOutcome, error) {
	if t.press.Take() {
		t.selector.Advance()
	}

	mode := t.selector.Mode()
	filter := BuildScanFilter(mode, t.targets)
	t.log.WithField("mode", mode).Info(filter.Describe())

	t.sink.Header()
	if t.done.Drain() {
		t.log.Debug("dropped stale completion")
	}

	t.setState(StateScanRequested)
	outcome := CycleScanned
	err := t.radio.StartScan(t.sink.OnResult, filter)
	switch {
	case err == nil:
		t.setState(StateWaiting)
		if err := t.done.Wait(ctx); err != nil {
			t.setState(StateIdle)
			return outcome, err
		}
	case errors.Is(err, ErrScanInProgress):
		t.log.Debug("scan already in progress, not waiting")
		outcome = CycleSkipped
	default:
		t.setState(StateIdle)
		return outcome, fmt.Errorf("start scan: %w", err)
	}
	t.setState(StateIdle)

	timer := time.NewTimer(t.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return outcome, ctx.Err()
	}
	return outcome, nil
}

// Loop calls Cycle until ctx is cancelled (returns nil) or the radio fails
// (returns the error).
func (t *Orchestrator) Loop(ctx context.Context) error {
	for {
		if _, err := t.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Run lets the conductor manage the scan loop. A radio failure halts the
// process.
func (t *Orchestrator) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		loopDone := make(chan struct{})
		go func() {
			defer close(loopDone)
			if err := t.Loop(ctx); err != nil {
				t.log.WithError(err).Fatal("scan loop stopped")
			}
		}()
		// flag to Conductor we are running
		started <- true
		<-stop
		cancel()
		<-loopDone
		stopped <- true
	}()
	return nil
}
