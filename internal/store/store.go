// Package store implements the credential and expense persistence layer on
// top of GORM. Expense queries always carry the owner in the same statement
// that reads or writes the row.
package store

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateEmail is returned when a user with the email already exists.
	ErrDuplicateEmail = errors.New("store: email already exists")
)
