package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperengineering/cartwright/internal/types"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_GetCreatesEmptyList(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	list, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if list.ID == "" {
		t.Error("expected generated list ID")
	}
	if len(list.Items) != 0 {
		t.Errorf("items = %v, want empty", list.Items)
	}

	again, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.ID != list.ID {
		t.Errorf("list ID changed between calls: %s vs %s", list.ID, again.ID)
	}
}

func TestSQLiteStore_AddItemsAndGetRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	stored, err := s.AddItems(ctx, "alice", []types.ShoppingItem{
		{Name: "milk", Quantity: 2, Unit: "bottle", Category: "dairy"},
		{Name: "bread", Quantity: 1, Unit: "piece", Category: "bakery"},
	})
	if err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d items, want 2", len(stored))
	}

	list, err := s.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("list has %d items, want 2", len(list.Items))
	}
	// Insertion order preserved
	if list.Items[0].Name != "milk" || list.Items[1].Name != "bread" {
		t.Errorf("item order = [%s %s], want [milk bread]", list.Items[0].Name, list.Items[1].Name)
	}
	if list.Items[0].Unit != "bottle" {
		t.Errorf("unit = %q, want bottle", list.Items[0].Unit)
	}
}

func TestSQLiteStore_AddItemsMergesByName(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := s.AddItems(ctx, "alice", []types.ShoppingItem{{Name: "milk", Quantity: 1}}); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}
	stored, err := s.AddItems(ctx, "alice", []types.ShoppingItem{{Name: "MILK", Quantity: 2}})
	if err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}
	if stored[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", stored[0].Quantity)
	}

	list, _ := s.Get(ctx, "alice")
	if len(list.Items) != 1 {
		t.Errorf("list has %d items, want 1 after merge", len(list.Items))
	}
}

func TestSQLiteStore_RemoveItem(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	stored, err := s.AddItems(ctx, "alice", []types.ShoppingItem{
		{Name: "milk", Quantity: 1},
		{Name: "bread", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}

	if err := s.RemoveItem(ctx, "alice", stored[0].ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	list, _ := s.Get(ctx, "alice")
	if len(list.Items) != 1 || list.Items[0].Name != "bread" {
		t.Errorf("items after remove = %v, want [bread]", list.Items)
	}

	if err := s.RemoveItem(ctx, "nobody", "some-id"); err != ErrListNotFound {
		t.Errorf("error = %v, want ErrListNotFound", err)
	}
}

func TestSQLiteStore_ClearAndItemsByCategory(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := s.AddItems(ctx, "alice", []types.ShoppingItem{
		{Name: "milk", Quantity: 1, Category: "dairy"},
		{Name: "bread", Quantity: 1, Category: "bakery"},
	}); err != nil {
		t.Fatalf("AddItems failed: %v", err)
	}

	items, err := s.ItemsByCategory(ctx, "alice", "Dairy")
	if err != nil {
		t.Fatalf("ItemsByCategory failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "milk" {
		t.Errorf("dairy items = %v, want [milk]", items)
	}

	if err := s.Clear(ctx, "alice"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	list, _ := s.Get(ctx, "alice")
	if len(list.Items) != 0 {
		t.Errorf("items after clear = %v, want empty", list.Items)
	}

	// No list: both operations are graceful.
	if err := s.Clear(ctx, "nobody"); err != nil {
		t.Errorf("Clear without list: %v", err)
	}
	items, err = s.ItemsByCategory(ctx, "nobody", "dairy")
	if err != nil || len(items) != 0 {
		t.Errorf("ItemsByCategory without list = %v, %v; want empty, nil", items, err)
	}
}

func TestSQLiteStore_PurchaseHistoryRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	second := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	if err := s.RecordPurchase(ctx, "alice", []string{"milk", "bread"}, first); err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}
	if err := s.RecordPurchase(ctx, "alice", []string{"milk"}, second); err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}

	history, err := s.History(ctx, "alice")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if !history["milk"].Equal(second) {
		t.Errorf("milk purchased_at = %v, want %v (overwrite)", history["milk"], second)
	}
	if !history["bread"].Equal(first) {
		t.Errorf("bread purchased_at = %v, want %v", history["bread"], first)
	}
}

func TestSQLiteStore_PruneBefore(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -100)
	recent := time.Now().UTC()
	cutoff := time.Now().UTC().AddDate(0, 0, -30)

	if err := s.RecordPurchase(ctx, "alice", []string{"milk"}, old); err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}
	if err := s.RecordPurchase(ctx, "bob", []string{"bread"}, recent); err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}

	removed, err := s.PruneBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("PruneBefore failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	history, _ := s.History(ctx, "bob")
	if _, ok := history["bread"]; !ok {
		t.Error("expected bob's recent purchase to survive pruning")
	}
}
