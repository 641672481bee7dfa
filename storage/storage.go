package storage

import (
	"context"
	"errors"
)

var ErrDoesNotExist = errors.New("does not exist")

// System defines read access to wherever the openings log lives. The
// library never writes back, so the interface is intentionally read-only.
type System interface {
	// Read returns the contents of the log stored under key, or
	// ErrDoesNotExist if no such key exists.
	Read(ctx context.Context, key string) ([]byte, error)

	// Keys lists every key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
