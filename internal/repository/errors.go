// Package repository contains data access logic separated from HTTP handlers.
// This file defines error values and helpers that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: an absent record
// (the per-entity *NotFound errors) is not the same as a failed query, and
// a duplicate-key conflict is not the same as a generic write failure.
package repository

import (
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when a show cannot be found in the DB.
var ErrShowNotFound = errors.New("show not found")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as a uniqueness violation that the caller did
// not anticipate.  Handlers should translate this into an HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).  The get-or-create resolver uses this to detect that a
// concurrent writer inserted the same natural key first.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
