package storage

import (
	"context"
	"fmt"
)

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func ResetIfSupported(ctx context.Context, store Store) error {
	resetter, ok := store.(interface{ Reset(context.Context) error })
	if !ok {
		return nil
	}
	return resetter.Reset(ctx)
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
