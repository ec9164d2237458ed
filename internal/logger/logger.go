// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// New returns a logger writing to out at the given level, formatted as "text" or "json".
func New(level, format string, out io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := log.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	if format == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
