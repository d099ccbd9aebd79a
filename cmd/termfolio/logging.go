package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "termfolio.log"

// setupLogging opens the debug log under dir, rotating it once it exceeds maxSize
// Without debug every record is discarded; the terminal never sees log output
func setupLogging(dir string, maxSize int64, debug bool) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxSize {
		rotated := filepath.Join(dir, fmt.Sprintf("termfolio_%s.log", time.Now().Format("20060102_150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil, nil, fmt.Errorf("failed to rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zap.DebugLevel)
	log := zap.New(core, zap.AddCaller()).With(zap.String("session", uuid.NewString()))

	closer := func() {
		_ = log.Sync()
		_ = f.Close()
	}
	return log, closer, nil
}
