// Package store persists game snapshots between sessions.
package store

import (
	"context"

	"github.com/lox/streetbook/internal/engine"
)

// Store is a single-slot snapshot repository. Load reports found=false
// when no usable save exists; callers start a fresh game in that case.
type Store interface {
	Load(ctx context.Context) (state *engine.GameState, found bool, err error)
	Save(ctx context.Context, state *engine.GameState) error
	Close() error
}
