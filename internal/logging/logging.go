// Package logging builds zap loggers from the service log configuration.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a logger for the given level, format and output. An
// unparsable level falls back to info; any format other than "text" selects
// JSON; an empty output means stderr, and any output other than "stdout" or
// "stderr" is used as a file path.
func New(level, format, output string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	if format == "text" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	switch output {
	case "", "stderr":
		cfg.OutputPaths = []string{"stderr"}
	case "stdout":
		cfg.OutputPaths = []string{"stdout"}
	default:
		cfg.OutputPaths = []string{output}
	}

	return cfg.Build()
}
