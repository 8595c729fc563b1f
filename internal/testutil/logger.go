package testutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger returns a logger that discards its output.
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	return l
}
