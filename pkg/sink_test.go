package wifiscand

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	sink      *ResultSink
	counts    []uint32 // sink count seen at each result
	results   []ScanResult
	completes []ScanStatus
	totals    []uint32
}

func (r *recordingObserver) ObserveResult(res ScanResult) {
	r.counts = append(r.counts, r.sink.Count())
	r.results = append(r.results, res)
}

func (r *recordingObserver) ObserveComplete(status ScanStatus, count uint32) {
	r.completes = append(r.completes, status)
	r.totals = append(r.totals, count)
}

func newTestSink() (*ResultSink, *recordingObserver, *CompletionSignal, *bytes.Buffer) {
	var out bytes.Buffer
	done := NewCompletionSignal()
	obs := &recordingObserver{}
	sink := NewResultSink(&out, done, obs)
	obs.sink = sink
	return sink, obs, done, &out
}

func signalled(done *CompletionSignal) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	return done.Wait(ctx) == nil
}

func TestSinkCountsThenResets(t *testing.T) {
	sink, obs, done, out := newTestSink()

	for _, name := range []string{"a", "b", "c", "d"} {
		sink.OnResult(&ScanResult{SSID: name}, ScanIncomplete)
	}
	assert.Equal(t, []uint32{1, 2, 3, 4}, obs.counts)
	assert.False(t, signalled(done))

	sink.OnResult(nil, ScanComplete)
	assert.Equal(t, uint32(0), sink.Count())
	assert.Equal(t, []ScanStatus{ScanComplete}, obs.completes)
	assert.Equal(t, []uint32{4}, obs.totals)
	assert.True(t, signalled(done))
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))
}

func TestSinkCompletesWithNoResults(t *testing.T) {
	sink, _, done, out := newTestSink()
	sink.OnResult(nil, ScanComplete)
	assert.True(t, signalled(done))
	assert.Empty(t, out.String())
}

func TestSinkAbortedWakesOrchestrator(t *testing.T) {
	sink, obs, done, _ := newTestSink()
	sink.OnResult(&ScanResult{SSID: "a"}, ScanIncomplete)
	sink.OnResult(nil, ScanAborted)
	assert.Equal(t, uint32(0), sink.Count())
	assert.Equal(t, []ScanStatus{ScanAborted}, obs.completes)
	assert.True(t, signalled(done))
}

func TestSinkDropsEmptyNames(t *testing.T) {
	sink, obs, done, out := newTestSink()

	sink.OnResult(&ScanResult{SSID: ""}, ScanIncomplete)
	sink.OnResult(nil, ScanIncomplete)
	assert.Equal(t, uint32(0), sink.Count())
	assert.Empty(t, obs.results)
	assert.Empty(t, out.String())

	// an empty name on the terminal call still completes but isn't counted
	sink.OnResult(&ScanResult{SSID: ""}, ScanComplete)
	assert.Empty(t, obs.results)
	assert.Equal(t, []uint32{0}, obs.totals)
	assert.True(t, signalled(done))
}

func TestSinkIgnoresResultOnTerminalCall(t *testing.T) {
	sink, obs, _, out := newTestSink()
	sink.OnResult(&ScanResult{SSID: "late"}, ScanComplete)
	assert.Empty(t, obs.results)
	assert.Empty(t, out.String())
}

func TestSinkResultLine(t *testing.T) {
	sink, _, _, out := newTestSink()
	sink.OnResult(&ScanResult{
		SSID:     "MY_TARGET_SSID",
		RSSI:     -40,
		Channel:  6,
		BSSID:    MAC{0xAB, 0x01, 0x02, 0x03, 0x04, 0xEF},
		Security: SecurityWPA2AESPSK,
	}, ScanIncomplete)

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "  1   MY_TARGET_SSID "), line)
	assert.Contains(t, line, "  -40      6      AB:01:02:03:04:EF         WPA2-AES-PSK")
}

func TestSinkUnknownSecurity(t *testing.T) {
	sink, _, _, out := newTestSink()
	sink.OnResult(&ScanResult{SSID: "x", Security: Security(999)}, ScanIncomplete)
	assert.Contains(t, out.String(), "UNKNOWN")
}

func TestSinkHeader(t *testing.T) {
	sink, _, _, out := newTestSink()
	sink.Header()
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "SSID")
	assert.Contains(t, lines[1], "Security")
}

func TestSinkWithoutObserver(t *testing.T) {
	var out bytes.Buffer
	done := NewCompletionSignal()
	sink := NewResultSink(&out, done, nil)
	sink.OnResult(&ScanResult{SSID: "a"}, ScanIncomplete)
	sink.OnResult(nil, ScanComplete)
	assert.True(t, signalled(done))
}
