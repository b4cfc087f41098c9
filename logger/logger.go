package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// Init configures the shared logger. When logFile is empty, output goes to
// stdout only; otherwise it is duplicated into a size-rotated file.
func Init(logFile string, debug bool) {
	once.Do(func() {
		log = logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if debug {
			log.SetLevel(logrus.DebugLevel)
		}
		if logFile != "" {
			rotated := &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    50, // MB
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, rotated))
		}
	})
}

// L returns the shared logger, initializing a default one if Init was not
// called (tests rely on this).
func L() *logrus.Logger {
	if log == nil {
		Init("", false)
	}
	return log
}
