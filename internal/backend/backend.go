package backend

import (
	"context"

	"ledgerly/internal/sheets"
)

// Backend is the unified spreadsheet surface the rest of the application
// talks to, regardless of which transport sits behind it.
type Backend interface {
	sheets.TransactionLister
	sheets.TransactionAppender
	sheets.TransactionUpdater
	sheets.TransactionDeleter
	sheets.CategoryLister
	sheets.CategoryAppender
	sheets.CategoryDeleter
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the backend instance and optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// Apps Script specific
	ScriptURL string

	// Google API specific settings come from the environment, matching
	// the sheets client's NewFromEnv.
}

// Type selects the transport implementation.
type Type string

const (
	GoogleBackend Type = "sheets"
	ScriptBackend Type = "script"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case GoogleBackend, ScriptBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
