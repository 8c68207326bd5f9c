package repository

import (
	"context"
	"database/sql"
)

// StateRepo serves read access to the known states.  Writes go through the
// get-or-create resolver during venue and artist mutations.
type StateRepo struct {
	db *sql.DB
}

// NewStateRepo constructs a StateRepo with the provided DB handle.
func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// ListNames returns every state name, sorted, for form population.
func (r *StateRepo) ListNames(ctx context.Context) ([]string, error) {
	return listNames(ctx, r.db, `SELECT name FROM states ORDER BY name`)
}
