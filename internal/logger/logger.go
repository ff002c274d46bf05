package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/config"
)

// New builds the application logger. Production gets JSON output at info
// level; every other env gets the console encoder at debug level. BOT_DEBUG
// forces debug level in production too.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l.With(zap.String("env", cfg.Env)), nil
}
