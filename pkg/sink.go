package wifiscand

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

const resultRule = "----------------------------------------------------------------------------------------------------"

// ResultSink is the ResultCallback target. It counts and prints results
// and wakes the orchestrator when a scan ends.
type ResultSink struct {
	out      io.Writer
	done     *CompletionSignal
	observer ResultObserver // nilable
	count    atomic.Uint32
}

func NewResultSink(out io.Writer, done *CompletionSignal, observer ResultObserver) *ResultSink {
	return &ResultSink{
		out:      out,
		done:     done,
		observer: observer,
	}
}

// OnResult has the ResultCallback signature. It never blocks.
func (t *ResultSink) OnResult(result *ScanResult, status ScanStatus) {
	if result != nil && result.SSID != "" && status == ScanIncomplete {
		n := t.count.Add(1)
		t.printResult(n, result)
		if t.observer != nil {
			t.observer.ObserveResult(*result)
		}
	}

	// Anything that isn't "more to come" ends the scan, otherwise the
	// orchestrator would never wake up after an aborted scan.
	if status.Terminal() {
		n := t.count.Swap(0)
		if t.observer != nil {
			t.observer.ObserveComplete(status, n)
		}
		t.done.Notify()
	}
}

// Count is the number of results printed so far in the current scan.
func (t *ResultSink) Count() uint32 {
	return t.count.Load()
}

// Header prints the table heading shown before each scan's results.
func (t *ResultSink) Header() {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(resultRule + "\n")
	fmt.Fprintf(&b, " %2s   %-32s     %4s     %2s      %-17s         %-15s\n",
		"#", "SSID", "RSSI", "Ch", "MAC Address", "Security")
	b.WriteString(resultRule + "\n")
	io.WriteString(t.out, b.String())
}

func (t *ResultSink) printResult(n uint32, r *ScanResult) {
	fmt.Fprintf(t.out, " %2d   %-32s     %4d     %2d      %s         %-15s\n",
		n, r.SSID, r.RSSI, r.Channel, r.BSSID, r.Security)
}
