package logger_test

import (
	"errors"

	"github.com/wonny/sentilens/pkg/config"
	"github.com/wonny/sentilens/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Pipeline started")
	log.Warnf("Column %q not found, using fallback", "Timestamp")
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.WithStage("S1_CLEAN").WithFields(map[string]interface{}{
		"before":  211224,
		"after":   209112,
		"removed": 2112,
	}).Info("Outliers removed")

	log.WithError(errors.New("open data/historical_data.csv: no such file")).Error("Load failed")
}
