// Package logger builds the process-wide zap logger
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

// Mode names accepted by New
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// New returns a JSON logger at info level for "prod"/"production" and a
// console logger at debug level for anything else.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", ModeProduction:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger, nil
}

// IsProduction reports whether mode selects the production logger
func IsProduction(mode string) bool {
	m := strings.ToLower(strings.TrimSpace(mode))
	return m == "prod" || m == ModeProduction
}
