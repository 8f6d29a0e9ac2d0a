package catalog

import "errors"

var (
	// ErrEmptyCatalog is returned when an ingestion yields zero usable items.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrNotFound is returned when an item ID is absent from the pool.
	ErrNotFound = errors.New("item not found")

	// ErrAlreadyTaken is returned when marking an item that is already taken.
	ErrAlreadyTaken = errors.New("item already taken")
)
