package system

import (
	"context"
	"fmt"
	"net/http"
	"time"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var _ wifiscand.ResultObserver = &Reporter{}

type ReportNetwork struct {
	SSID     string `json:"ssid"`
	BSSID    string `json:"bssid"`
	RSSI     int16  `json:"rssi"`
	Channel  uint8  `json:"channel"`
	Band     string `json:"band"`
	Security string `json:"security"`
}

// ScanReport summarises one finished scan.
type ScanReport struct {
	Time     time.Time       `json:"time"`
	Status   string          `json:"status"`
	Count    uint32          `json:"count"`
	Networks []ReportNetwork `json:"networks"`
}

/* Reporter
 *
 * Reporter collects what the result sink prints and, when a scan
 * finishes, POSTs a ScanReport to a remote URL. The observer side runs
 * on the radio's delivery goroutine so it only appends and queues;
 * posting happens on the Reporter's own goroutine. If the queue is
 * full the report is dropped.
 */
type Reporter struct {
	url     string
	client  *resty.Client
	log     logrus.FieldLogger
	pending []ReportNetwork // only touched from the delivery goroutine
	queue   chan ScanReport
}

func NewReporter(url string, log logrus.FieldLogger) *Reporter {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	client.SetContentLength(true)
	client.SetTimeout(10 * time.Second)

	return &Reporter{
		url:    url,
		client: client,
		log:    log.WithField("component", "reporter"),
		queue:  make(chan ScanReport, 4),
	}
}

func (t *Reporter) ObserveResult(r wifiscand.ScanResult) {
	t.pending = append(t.pending, ReportNetwork{
		SSID:     r.SSID,
		BSSID:    r.BSSID.String(),
		RSSI:     r.RSSI,
		Channel:  r.Channel,
		Band:     r.Band.String(),
		Security: r.Security.String(),
	})
}

func (t *Reporter) ObserveComplete(status wifiscand.ScanStatus, count uint32) {
	report := ScanReport{
		Time:     time.Now().UTC(),
		Status:   status.String(),
		Count:    count,
		Networks: t.pending,
	}
	if report.Networks == nil {
		report.Networks = []ReportNetwork{}
	}
	t.pending = nil

	select {
	case t.queue <- report:
	default:
		t.log.Warn("report queue full, dropping scan report")
	}
}

func (t *Reporter) Submit(report ScanReport) error {
	resp, err := t.client.R().
		SetBody(report).
		Post(t.url)

	if err != nil {
		return err
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("failed to submit scan report: %s", resp.String())
	}

	return nil
}

func (t *Reporter) Run(started, stopped chan bool, stop chan context.Context) error {
	go func() {
		started <- true
	mainloop:
		for {
			select {
			case <-stop:
				break mainloop
			case report := <-t.queue:
				if err := t.Submit(report); err != nil {
					t.log.WithError(err).Warn("couldn't submit scan report")
				}
			}
		}
		stopped <- true
	}()
	return nil
}
