package util

import (
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process wide logger. It writes to stderr until InitLogger
// redirects it, so command output on stdout stays clean.
var Logger *zap.Logger

var (
	consoleLogger *zap.Logger
	consoleLevel  zap.AtomicLevel
)

func init() {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleLevel = config.Level
	var err error
	consoleLogger, err = config.Build()
	if err != nil {
		panic(err)
	}
	Logger = consoleLogger
}

// InitLogger sets the level of Logger and, when filename is not empty, sends
// the log to that file with rotation.
func InitLogger(level, filename string) error {
	if filename == "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return errors.Annotatef(err, "parse log level %q", level)
		}
		consoleLevel.SetLevel(lvl)
		Logger = consoleLogger
		return nil
	}

	lg, props, err := log.InitLogger(&log.Config{
		Level:  level,
		Format: "text",
		File: log.FileLogConfig{
			Filename: filename,
			MaxSize:  64,
		},
	})
	if err != nil {
		return errors.Annotatef(err, "init logger to file %s", filename)
	}
	log.ReplaceGlobals(lg, props)
	Logger = lg
	return nil
}
