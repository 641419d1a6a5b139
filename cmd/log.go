package cmd

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/gaurav-prasanna/linkpipe/config"
)

// configureLogger applies the configured level and format. Logs go to out,
// keeping stdout free for rendered output.
func configureLogger(l *logrus.Logger, c config.Config, out io.Writer) {
	l.SetOutput(out)

	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
}
