package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperengineering/cartwright/internal/types"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed Store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath, applies
// pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the user's shopping list, creating an empty one if needed.
func (s *SQLiteStore) Get(ctx context.Context, userID string) (*types.ShoppingList, error) {
	list, err := s.ensureList(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.listItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return list, nil
}

// AddItems adds items to the user's list, merging by case-insensitive name.
func (s *SQLiteStore) AddItems(ctx context.Context, userID string, items []types.ShoppingItem) ([]types.ShoppingItem, error) {
	list, err := s.ensureList(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stored := make([]types.ShoppingItem, 0, len(items))
	for _, item := range items {
		existing, err := findItemByName(ctx, tx, list.ID, item.Name)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}

		if err == nil {
			existing.Quantity += item.Quantity
			if _, err := tx.ExecContext(ctx,
				`UPDATE shopping_items SET quantity = ? WHERE id = ?`,
				existing.Quantity, existing.ID,
			); err != nil {
				return nil, fmt.Errorf("update item quantity: %w", err)
			}
			stored = append(stored, *existing)
			continue
		}

		item.ID = ulid.Make().String()
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shopping_items (id, list_id, name, quantity, unit, category, price_estimate, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, list.ID, item.Name, item.Quantity, item.Unit, item.Category, item.PriceEstimate, item.AddedAt.Format(time.RFC3339)); err != nil {
			return nil, fmt.Errorf("insert item: %w", err)
		}
		stored = append(stored, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return stored, nil
}

// RemoveItem deletes an item by ID from the user's list.
func (s *SQLiteStore) RemoveItem(ctx context.Context, userID, itemID string) error {
	listID, err := s.listID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM shopping_items WHERE id = ? AND list_id = ?`,
		itemID, listID,
	); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Clear removes every item from the user's list.
func (s *SQLiteStore) Clear(ctx context.Context, userID string) error {
	listID, err := s.listID(ctx, userID)
	if err != nil {
		if err == ErrListNotFound {
			return nil
		}
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM shopping_items WHERE list_id = ?`, listID,
	); err != nil {
		return fmt.Errorf("clear list: %w", err)
	}
	return nil
}

// ItemsByCategory returns the user's items in the given category.
func (s *SQLiteStore) ItemsByCategory(ctx context.Context, userID, category string) ([]types.ShoppingItem, error) {
	listID, err := s.listID(ctx, userID)
	if err != nil {
		if err == ErrListNotFound {
			return nil, nil
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, unit, category, price_estimate, added_at
		FROM shopping_items
		WHERE list_id = ? AND category = ? COLLATE NOCASE
		ORDER BY rowid
	`, listID, strings.ToLower(category))
	if err != nil {
		return nil, fmt.Errorf("query items by category: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// RecordPurchase overwrites last-purchase times for the given items.
func (s *SQLiteStore) RecordPurchase(ctx context.Context, userID string, items []string, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO purchase_history (user_id, item, purchased_at)
			VALUES (?, ?, ?)
			ON CONFLICT (user_id, item) DO UPDATE SET purchased_at = excluded.purchased_at
		`, userID, item, at.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// History returns the user's item -> last-purchase-time map.
func (s *SQLiteStore) History(ctx context.Context, userID string) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item, purchased_at FROM purchase_history WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	history := make(map[string]time.Time)
	for rows.Next() {
		var item, purchasedAt string
		if err := rows.Scan(&item, &purchasedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		at, err := time.Parse(time.RFC3339, purchasedAt)
		if err != nil {
			return nil, fmt.Errorf("parse purchased_at: %w", err)
		}
		history[item] = at
	}
	return history, rows.Err()
}

// PruneBefore drops purchase records older than cutoff across all users.
func (s *SQLiteStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM purchase_history WHERE purchased_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

// ensureList fetches the user's list row, creating it if absent.
func (s *SQLiteStore) ensureList(ctx context.Context, userID string) (*types.ShoppingList, error) {
	list := &types.ShoppingList{UserID: userID}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM shopping_lists WHERE user_id = ?`, userID,
	).Scan(&list.ID, &createdAt)

	switch {
	case err == sql.ErrNoRows:
		list.ID = ulid.Make().String()
		list.CreatedAt = time.Now().UTC()
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO shopping_lists (id, user_id, created_at) VALUES (?, ?, ?)`,
			list.ID, userID, list.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return nil, fmt.Errorf("create list: %w", err)
		}
		return list, nil
	case err != nil:
		return nil, fmt.Errorf("query list: %w", err)
	}

	list.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return list, nil
}

// listID resolves the user's list ID without creating one.
func (s *SQLiteStore) listID(ctx context.Context, userID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM shopping_lists WHERE user_id = ?`, userID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrListNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query list id: %w", err)
	}
	return id, nil
}

// listItems returns a list's items in insertion order.
func (s *SQLiteStore) listItems(ctx context.Context, listID string) ([]types.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, unit, category, price_estimate, added_at
		FROM shopping_items
		WHERE list_id = ?
		ORDER BY rowid
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// findItemByName looks up an item on a list by case-insensitive name.
func findItemByName(ctx context.Context, tx *sql.Tx, listID, name string) (*types.ShoppingItem, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT id, name, quantity, unit, category, price_estimate, added_at
		FROM shopping_items
		WHERE list_id = ? AND name = ? COLLATE NOCASE
	`, listID, name)

	var item types.ShoppingItem
	var addedAt string
	if err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Category, &item.PriceEstimate, &addedAt); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, addedAt)
	if err != nil {
		return nil, fmt.Errorf("parse added_at: %w", err)
	}
	item.AddedAt = parsed
	return &item, nil
}

// scanItems drains an item query into a slice.
func scanItems(rows *sql.Rows) ([]types.ShoppingItem, error) {
	var items []types.ShoppingItem
	for rows.Next() {
		var item types.ShoppingItem
		var addedAt string
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Category, &item.PriceEstimate, &addedAt); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, addedAt)
		if err != nil {
			return nil, fmt.Errorf("parse added_at: %w", err)
		}
		item.AddedAt = parsed
		items = append(items, item)
	}
	return items, rows.Err()
}
