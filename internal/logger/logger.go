package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger. Local runs get readable
// text output, everything else emits JSON for the log shipper.
func InitLogger(env, level string) {
	logrus.SetOutput(os.Stdout)

	if env == "development" || env == "local" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	logrus.WithField("env", env).Info("Logger initialized")
}

// For returns an entry tagged with the component name, e.g. "PostService".
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
