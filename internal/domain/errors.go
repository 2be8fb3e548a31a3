package domain

import "errors"

var (
	// ErrNotFound is returned when a store or document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when another store already claims a slug.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrNoCredits is returned by CreateStore when the tenant's store
	// credit balance is exhausted.
	ErrNoCredits = errors.New("no store credits remaining")
)
