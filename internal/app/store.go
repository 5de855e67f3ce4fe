package app

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/mailbox/internal/config"
	"github.com/lu-zhengda/mailbox/internal/fixture"
	"github.com/lu-zhengda/mailbox/internal/store"
	"github.com/lu-zhengda/mailbox/internal/store/memory"
	"github.com/lu-zhengda/mailbox/internal/store/sqlite"
)

// OpenStore builds an empty store of the given backend and seeds it with
// the default fixtures when asked. Nothing it returns outlives the process.
func OpenStore(ctx context.Context, backend string, seed bool) (store.Store, error) {
	var s store.Store
	switch backend {
	case config.BackendMemory, "":
		s = memory.New()
	case config.BackendSQLite:
		db, err := sqlite.New()
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		s = db
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}

	if seed {
		if err := fixture.Load(ctx, s); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}
