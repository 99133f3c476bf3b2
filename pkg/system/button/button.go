// Package button provides press sources for the scan orchestrator. Each
// one is a conductor service that calls Press on its target.
package button

import (
	"fmt"
	"os"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/dogeorg/wifiscand/pkg/conductor"
	"github.com/sirupsen/logrus"
)

// NewPressSource builds the named source: "signal" or "stdin".
func NewPressSource(name string, target wifiscand.Pressable, log logrus.FieldLogger) (conductor.Service, error) {
	switch name {
	case "signal":
		return NewSignalButton(target, log), nil
	case "stdin":
		return NewLineButton(os.Stdin, target, log), nil
	default:
		return nil, fmt.Errorf("unknown press source %q", name)
	}
}
