package cmd

import (
	"os"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/dogeorg/wifiscand/pkg/conductor"
	"github.com/dogeorg/wifiscand/pkg/system"
	"github.com/dogeorg/wifiscand/pkg/system/button"
	"github.com/dogeorg/wifiscand/pkg/system/radio"
	"github.com/dogeorg/wifiscand/pkg/version"
	"github.com/sirupsen/logrus"
)

type server struct {
	config wifiscand.ServerConfig
}

func Server(config wifiscand.ServerConfig) server {
	return server{config}
}

func (t server) Start() {
	if t.config.Verbose && !log.IsLevelEnabled(logrus.DebugLevel) {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithField("release", version.GetRelease().Release).Info("starting wifiscand")

	/* ----------------------------------------------------------------------- */
	// Optional scan reporting

	var observer wifiscand.ResultObserver
	var reporter *system.Reporter
	if t.config.ReportURL != "" {
		reporter = system.NewReporter(t.config.ReportURL, log)
		observer = reporter
	}

	/* ----------------------------------------------------------------------- */
	// Bring up the radio, nothing else matters if this fails

	r := radio.NewRadio(t.config, log)
	orchestrator, err := wifiscand.NewOrchestrator(t.config, r, os.Stdout, observer, log)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := orchestrator.Init(); err != nil {
		log.WithError(err).Fatal("couldn't initialise the radio")
	}

	/* ----------------------------------------------------------------------- */
	// Create a conductor to manage all the above services startup/shutdown

	var c *conductor.Conductor

	if t.config.Verbose {
		c = conductor.NewConductor(
			conductor.HookSignals(),
			conductor.Noisy(),
			conductor.WithLogger(log),
		)
	} else {
		c = conductor.NewConductor(
			conductor.HookSignals(),
			conductor.WithLogger(log),
		)
	}

	if reporter != nil {
		c.Service("Scan Reporter", reporter)
	}
	for _, name := range t.config.PressSources {
		src, err := button.NewPressSource(name, orchestrator, log)
		if err != nil {
			log.WithError(err).Fatal("invalid press source")
		}
		c.Service("Press Source "+name, src)
	}
	c.Service("Scan Orchestrator", orchestrator)
	c.Service("Self Monitor", system.NewSelfMonitor(t.config.MonitorInterval, log))
	<-c.Start()
}
