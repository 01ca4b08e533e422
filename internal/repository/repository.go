package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (sqlstore) inside this directory.

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup, including rows owned by another user.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict is returned when a conditional update finds the row changed or gone.
	ErrConflict = errors.New("record changed concurrently")
)
