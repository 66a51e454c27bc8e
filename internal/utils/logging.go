package utils

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger. JSON goes to stderr, and also to
// the file named by LOG_FILE when it is set.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		logger = newLogger(os.Getenv("LOG_FILE"), zapcore.Lock(os.Stderr))
	})
	return logger
}

func newLogger(logFile string, console zapcore.WriteSyncer) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	lvl := zapcore.InfoLevel
	consoleCore := zapcore.NewCore(enc, console, lvl)
	if logFile == "" {
		return zap.New(consoleCore, zap.AddCaller())
	}

	_ = os.MkdirAll(filepath.Dir(logFile), 0o755)
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.New(consoleCore, zap.AddCaller())
	}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
	return zap.New(zapcore.NewTee(fileCore, consoleCore), zap.AddCaller())
}
