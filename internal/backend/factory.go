package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gsheet "ledgerly/internal/sheets/google"
	"ledgerly/internal/sheets/memory"
	"ledgerly/internal/sheets/script"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case GoogleBackend:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend")
		return &Result{Backend: cli}, nil

	case ScriptBackend:
		if config.ScriptURL == "" {
			return nil, errors.New("script backend requires SCRIPT_URL")
		}
		f.logger.Info("Initialized Apps Script backend", "url", config.ScriptURL)
		return &Result{Backend: script.New(config.ScriptURL)}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Backend: memory.NewSeeded()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
