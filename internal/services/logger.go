package services

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

// Logger returns the shared structured logger used by the service layer.
func Logger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}
