/* shared.go
 * Contains the process-wide store handle. The first successful call creates it; every later call reuses it. A failed
 * attempt leaves nothing cached so the next caller tries again.
 */

package store

import (
	"context"
	"sync"

	"horizons-site/config"
)

var (
	sharedMu    sync.Mutex
	sharedStore *Store

	// swapped in tests
	openShared = func(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
		return NewStore(ctx, cfg.URI, cfg.Database, cfg.Timeout)
	}
)

// Shared returns the process-wide Store, connecting on first use. Safe for concurrent callers.
func Shared(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedStore != nil {
		return sharedStore, nil
	}

	s, err := openShared(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sharedStore = s
	return sharedStore, nil
}

// CloseShared disconnects and forgets the process-wide Store, if any
func CloseShared(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedStore == nil {
		return nil
	}
	err := sharedStore.Close(ctx)
	sharedStore = nil
	return err
}
