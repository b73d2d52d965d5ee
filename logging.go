package globepins

import (
	"fmt"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "globepins")

// SetupLogging configures the shared logger. Colored output goes through go-colorable so it
// also renders on Windows consoles.
func SetupLogging(level string, color bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	if color {
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
		logrus.SetOutput(colorable.NewColorableStdout())
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return nil
}
