package log

import (
	"os"

	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "-0700 2006-01-02 15:04:05",
	})
}

func NewLogger(tag string) *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger()).WithField("prefix", tag)
}

func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return E.New("unknown log level ", level)
	}
	logrus.SetLevel(parsed)
	return nil
}
