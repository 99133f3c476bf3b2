// Package radio holds the wifiscand.Radio implementations.
package radio

import (
	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/sirupsen/logrus"
)

func NewRadio(config wifiscand.ServerConfig, log logrus.FieldLogger) wifiscand.Radio {
	if config.Simulate {
		return NewSimRadio(log)
	}
	return NewLinuxRadio(log)
}
