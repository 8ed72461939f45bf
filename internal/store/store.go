// Package store holds per-user shopping lists and purchase history behind
// interfaces with interchangeable backings: an in-memory map store for tests
// and single-process deployments, and a SQLite store for durability.
package store

import (
	"context"
	"time"

	"github.com/hyperengineering/cartwright/internal/types"
)

// ListStore is the contract for shopping list persistence. Lists are created
// lazily on first access, one per user.
type ListStore interface {
	// Get returns the user's shopping list, creating an empty one if needed.
	Get(ctx context.Context, userID string) (*types.ShoppingList, error)

	// AddItems adds items to the user's list. An incoming item whose name
	// matches an existing one (case-insensitive) merges into it by summing
	// quantities; otherwise it is appended with a newly assigned ID.
	// Returns the stored items corresponding to the request.
	AddItems(ctx context.Context, userID string, items []types.ShoppingItem) ([]types.ShoppingItem, error)

	// RemoveItem deletes an item by ID. Returns ErrListNotFound when the
	// user has no list; removing an ID not on the list is not an error.
	RemoveItem(ctx context.Context, userID, itemID string) error

	// Clear removes every item from the user's list.
	Clear(ctx context.Context, userID string) error

	// ItemsByCategory returns the user's items in the given category
	// (case-insensitive). A missing list yields an empty result.
	ItemsByCategory(ctx context.Context, userID, category string) ([]types.ShoppingItem, error)
}

// HistoryStore is the contract for purchase history persistence, consumed by
// the recommendation engine's restock rule.
type HistoryStore interface {
	// RecordPurchase stores the purchase time for each item, unconditionally
	// overwriting any prior last-purchase time.
	RecordPurchase(ctx context.Context, userID string, items []string, at time.Time) error

	// History returns the user's item -> last-purchase-time map. A user with
	// no history yields an empty map, not an error.
	History(ctx context.Context, userID string) (map[string]time.Time, error)

	// PruneBefore deletes purchase records older than cutoff across all
	// users and reports how many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store combines both contracts plus lifecycle. Every backing implements it.
type Store interface {
	ListStore
	HistoryStore
	Close() error
}
