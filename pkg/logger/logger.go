package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. build the process-wide zap logger. timestamps are ISO8601 so the
// planner logs line up with rover telemetry dumps.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}
