package storage

import (
	"context"
	"errors"
)

// Storage keys. The reminder collection is written whole under one key;
// the theme preference lives under its own key with an independent
// lifecycle.
const (
	KeyReminders = "doseup-reminders"
	KeyTheme     = "doseup-theme"
)

var ErrNotFound = errors.New("storage: not found")

// KeyValue is the persistence collaborator: a passive mirror of the
// in-memory state, read once at startup and written after every mutation.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
