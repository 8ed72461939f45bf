package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hyperengineering/cartwright/internal/types"
	"github.com/oklog/ulid/v2"
)

// MemoryStore is a mutex-guarded in-memory Store. State lives for the
// process lifetime; restarts lose everything. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	lists   map[string]*types.ShoppingList
	history map[string]map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists:   make(map[string]*types.ShoppingList),
		history: make(map[string]map[string]time.Time),
	}
}

// Get returns the user's shopping list, creating an empty one if needed.
func (s *MemoryStore) Get(ctx context.Context, userID string) (*types.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.getOrCreateLocked(userID)
	return copyList(list), nil
}

// AddItems adds items to the user's list, merging by case-insensitive name.
func (s *MemoryStore) AddItems(ctx context.Context, userID string, items []types.ShoppingItem) ([]types.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.getOrCreateLocked(userID)

	stored := make([]types.ShoppingItem, 0, len(items))
	for _, item := range items {
		idx := indexByName(list.Items, item.Name)
		if idx >= 0 {
			list.Items[idx].Quantity += item.Quantity
			stored = append(stored, list.Items[idx])
			continue
		}

		item.ID = ulid.Make().String()
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now().UTC()
		}
		list.Items = append(list.Items, item)
		stored = append(stored, item)
	}

	return stored, nil
}

// RemoveItem deletes an item by ID from the user's list.
func (s *MemoryStore) RemoveItem(ctx context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[userID]
	if !ok {
		return ErrListNotFound
	}

	kept := list.Items[:0]
	for _, item := range list.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	list.Items = kept
	return nil
}

// Clear removes every item from the user's list.
func (s *MemoryStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list, ok := s.lists[userID]; ok {
		list.Items = nil
	}
	return nil
}

// ItemsByCategory returns the user's items in the given category.
func (s *MemoryStore) ItemsByCategory(ctx context.Context, userID, category string) ([]types.ShoppingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.lists[userID]
	if !ok {
		return nil, nil
	}

	var matched []types.ShoppingItem
	for _, item := range list.Items {
		if strings.EqualFold(item.Category, category) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// RecordPurchase overwrites last-purchase times for the given items.
func (s *MemoryStore) RecordPurchase(ctx context.Context, userID string, items []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases, ok := s.history[userID]
	if !ok {
		purchases = make(map[string]time.Time)
		s.history[userID] = purchases
	}
	for _, item := range items {
		purchases[item] = at
	}
	return nil
}

// History returns a copy of the user's purchase history.
func (s *MemoryStore) History(ctx context.Context, userID string) (map[string]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]time.Time, len(s.history[userID]))
	for item, at := range s.history[userID] {
		out[item] = at
	}
	return out, nil
}

// PruneBefore drops purchase records older than cutoff across all users.
func (s *MemoryStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for userID, purchases := range s.history {
		for item, at := range purchases {
			if at.Before(cutoff) {
				delete(purchases, item)
				removed++
			}
		}
		if len(purchases) == 0 {
			delete(s.history, userID)
		}
	}
	return removed, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// getOrCreateLocked returns the user's list, creating it lazily.
// Caller must hold the write lock.
func (s *MemoryStore) getOrCreateLocked(userID string) *types.ShoppingList {
	if list, ok := s.lists[userID]; ok {
		return list
	}
	list := &types.ShoppingList{
		ID:        ulid.Make().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	s.lists[userID] = list
	return list
}

// indexByName finds an item with a case-insensitively matching name.
func indexByName(items []types.ShoppingItem, name string) int {
	for i, item := range items {
		if strings.EqualFold(item.Name, name) {
			return i
		}
	}
	return -1
}

// copyList returns a snapshot safe to hand out after the lock is released.
func copyList(list *types.ShoppingList) *types.ShoppingList {
	out := *list
	out.Items = make([]types.ShoppingItem, len(list.Items))
	copy(out.Items, list.Items)
	return &out
}
