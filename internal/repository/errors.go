// Package repository defines the storage interfaces for users and
// transactions together with their MySQL implementations. The sentinel
// errors declared here let handlers distinguish failure scenarios
// without inspecting driver-specific errors: ErrNotFound covers both a
// genuinely missing row and a row owned by someone else, because the
// ownership filter lives inside the statement's WHERE clause and a
// foreign row is indistinguishable from an absent one.
package repository

import "errors"

// ErrUsernameExists is returned when an insert violates the unique
// constraint on users.username. Handlers translate this into the
// duplicate-registration response.
var ErrUsernameExists = errors.New("username already exists")

// ErrNotFound is returned when a lookup, update or delete matched no
// row, either because the id does not exist or because it belongs to a
// different user.
var ErrNotFound = errors.New("not found")
