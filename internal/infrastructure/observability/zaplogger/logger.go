// Package zaplogger adapts go.uber.org/zap to the observability Logger port.
package zaplogger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/commercelab/orderflow/internal/observability"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapAdapter struct{ base *zap.Logger }

// New builds a production JSON logger on stdout with the given fields bound
// to every entry. Setting LOG_FILE duplicates output to that file, which is
// handy when tailing a local run.
func New(fixed ...observability.Field) observability.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		if err := ensureLogFile(logFile); err != nil {
			panic(fmt.Errorf("prepare log file: %w", err))
		}
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, logFile)
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	cfg.InitialFields = map[string]any{}
	for _, f := range fixed {
		cfg.InitialFields[f.Key] = f.Value
	}

	base, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &zapAdapter{base: base}
}

func (z *zapAdapter) With(fields ...observability.Field) observability.Logger {
	if len(fields) == 0 {
		return &zapAdapter{base: z.base}
	}
	return &zapAdapter{base: z.base.With(toZapFields(fields)...)}
}

func (z *zapAdapter) Debug(msg string, fields ...observability.Field) {
	z.base.Debug(msg, toZapFields(fields)...)
}
func (z *zapAdapter) Info(msg string, fields ...observability.Field) {
	z.base.Info(msg, toZapFields(fields)...)
}
func (z *zapAdapter) Warn(msg string, fields ...observability.Field) {
	z.base.Warn(msg, toZapFields(fields)...)
}
func (z *zapAdapter) Error(msg string, fields ...observability.Field) {
	z.base.Error(msg, toZapFields(fields)...)
}

// Sync flushes buffered entries. Call it once on shutdown.
func (z *zapAdapter) Sync() error {
	return z.base.Sync()
}

func toZapFields(fs []observability.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fs))
	for _, f := range fs {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func ensureLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		f, createErr := os.OpenFile(path, os.O_CREATE, 0o644)
		if createErr != nil {
			return createErr
		}
		_ = f.Close()
	}
	return nil
}
