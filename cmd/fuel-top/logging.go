package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newDebugLogger writes one JSON object per line to w at debug level.
func newDebugLogger(w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

// openDebugLog appends JSON lines to the file at path. The returned close
// func flushes the logger and closes the file, and may be called more than
// once.
func openDebugLog(path string) (*zap.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening debug log %q: %w", path, err)
	}
	logger := newDebugLogger(f)
	var once sync.Once
	return logger, func() {
		once.Do(func() {
			_ = logger.Sync()
			_ = f.Close()
		})
	}, nil
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
