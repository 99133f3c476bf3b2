package system

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterPostsSummary(t *testing.T) {
	got := make(chan ScanReport, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var report ScanReport
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		got <- report
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	rep := NewReporter(srv.URL, log)

	started := make(chan bool)
	stopped := make(chan bool)
	stop := make(chan context.Context)
	require.NoError(t, rep.Run(started, stopped, stop))
	<-started

	rep.ObserveResult(wifiscand.ScanResult{
		SSID:     "MY_TARGET_SSID",
		BSSID:    wifiscand.MAC{0, 1, 2, 3, 4, 5},
		RSSI:     -40,
		Channel:  6,
		Band:     wifiscand.Band2_4GHz,
		Security: wifiscand.SecurityWPA2AESPSK,
	})
	rep.ObserveComplete(wifiscand.ScanComplete, 1)

	select {
	case report := <-got:
		assert.Equal(t, "complete", report.Status)
		assert.Equal(t, uint32(1), report.Count)
		require.Len(t, report.Networks, 1)
		assert.Equal(t, ReportNetwork{
			SSID:     "MY_TARGET_SSID",
			BSSID:    "00:01:02:03:04:05",
			RSSI:     -40,
			Channel:  6,
			Band:     "2.4 GHz",
			Security: "WPA2-AES-PSK",
		}, report.Networks[0])
	case <-time.After(2 * time.Second):
		t.Fatal("report was never posted")
	}

	close(stop)
	<-stopped
}

func TestReporterSubmitError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "go away", http.StatusInternalServerError)
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	rep := NewReporter(srv.URL, log)
	err := rep.Submit(ScanReport{Status: "complete", Networks: []ReportNetwork{}})
	assert.Error(t, err)
}

func TestReporterDropsWhenQueueFull(t *testing.T) {
	log, hook := test.NewNullLogger()
	rep := NewReporter("http://127.0.0.1:0", log)

	// nothing drains the queue
	for i := 0; i < cap(rep.queue)+2; i++ {
		rep.ObserveComplete(wifiscand.ScanComplete, 0)
	}
	assert.Len(t, rep.queue, cap(rep.queue))
	assert.NotNil(t, hook.LastEntry())
	assert.Equal(t, "report queue full, dropping scan report", hook.LastEntry().Message)
}

func TestReporterResetsBetweenScans(t *testing.T) {
	log, _ := test.NewNullLogger()
	rep := NewReporter("http://127.0.0.1:0", log)

	rep.ObserveResult(wifiscand.ScanResult{SSID: "a"})
	rep.ObserveComplete(wifiscand.ScanAborted, 1)
	rep.ObserveComplete(wifiscand.ScanComplete, 0)

	first := <-rep.queue
	second := <-rep.queue
	assert.Len(t, first.Networks, 1)
	assert.Equal(t, "aborted", first.Status)
	assert.Empty(t, second.Networks)
}
