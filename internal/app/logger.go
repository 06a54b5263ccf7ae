package app

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initLogger создает и настраивает логгер.
// "development" включает консольный логгер, остальные значения задают
// уровень JSON логгера ("production" равен "info").
func initLogger(logLevel string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch logLevel {
	case "development":
		logger, err = zap.NewDevelopment()
	case "production", "":
		logger, err = zap.NewProduction()
	default:
		level, parseErr := zapcore.ParseLevel(logLevel)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to init logger: %w", parseErr)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = cfg.Build()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	return logger, nil
}
