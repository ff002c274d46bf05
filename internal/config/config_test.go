package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")
	t.Setenv("QUIZ_API_URL", "http://quiz-api:8000/")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TelegramAPIToken != "token" {
		t.Errorf("token = %q", cfg.TelegramAPIToken)
	}
	if cfg.QuizAPI.BaseURL != "http://quiz-api:8000" {
		t.Errorf("base url = %q, want trailing slash trimmed", cfg.QuizAPI.BaseURL)
	}
	if cfg.QuizAPI.Timeout != 90*time.Second {
		t.Errorf("quiz api timeout = %v", cfg.QuizAPI.Timeout)
	}
	if cfg.Workspace.IdleTTL != 2*time.Hour {
		t.Errorf("idle ttl = %v", cfg.Workspace.IdleTTL)
	}
	if cfg.Workspace.PruneSchedule != "*/15 * * * *" {
		t.Errorf("prune schedule = %q", cfg.Workspace.PruneSchedule)
	}
	if cfg.DB.MaxConnections != 20 {
		t.Errorf("max connections = %d", cfg.DB.MaxConnections)
	}
	if dsn, err := cfg.DB.DSN(); err != nil || dsn != "postgres://quiz@localhost/quiz" {
		t.Errorf("dsn = %q, %v", dsn, err)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")

	_, err := load(viper.New())
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}

	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")

	_, err = load(viper.New())
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}
