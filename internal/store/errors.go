package store

import "errors"

// ErrListNotFound is returned when an operation requires an existing
// shopping list and the user has none.
var ErrListNotFound = errors.New("shopping list not found")
