// This file implements the get-or-create resolver used for every
// natural-key entity (states by name, cities by name and state, genres by
// name).  The contract is uniform: resolve inside the caller's transaction,
// insert when absent, and never commit.  The caller owns the transaction and
// decides when the staged rows become durable.
//
// The schema enforces uniqueness of each natural key, so two transactions
// racing to create the same key cannot both succeed.  The loser's INSERT
// fails with a duplicate-key error and the resolver re-reads the winner's
// row instead of surfacing the conflict.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"stagelist/internal/model"
)

// GetOrCreateState returns the state with the given name, inserting it
// first when it does not exist yet.  The "not found" case is the creation
// trigger, not a failure path.
func GetOrCreateState(ctx context.Context, tx *sql.Tx, name string) (*model.State, error) {
	s := &model.State{Name: name}
	const q = `SELECT id FROM states WHERE name = ?`
	err := tx.QueryRowContext(ctx, q, name).Scan(&s.ID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO states (name) VALUES (?)`, name)
	if err != nil {
		if isDuplicateKey(err) {
			// A concurrent writer created the row first; return theirs.
			if err := tx.QueryRowContext(ctx, q, name).Scan(&s.ID); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.ID = uint64(id)
	return s, nil
}

// GetOrCreateCity returns the city with the given name within the given
// state, inserting it first when it does not exist yet.  Cities are unique
// per (name, state) pair, so the same city name in two states yields two
// distinct rows.
func GetOrCreateCity(ctx context.Context, tx *sql.Tx, name string, stateID uint64) (*model.City, error) {
	c := &model.City{Name: name, StateID: stateID}
	const q = `SELECT id FROM cities WHERE name = ? AND state_id = ?`
	err := tx.QueryRowContext(ctx, q, name, stateID).Scan(&c.ID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO cities (name, state_id) VALUES (?, ?)`, name, stateID)
	if err != nil {
		if isDuplicateKey(err) {
			if err := tx.QueryRowContext(ctx, q, name, stateID).Scan(&c.ID); err != nil {
				return nil, err
			}
			return c, nil
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c.ID = uint64(id)
	return c, nil
}

// GetOrCreateGenre returns the genre with the given name, inserting it
// first when it does not exist yet.
func GetOrCreateGenre(ctx context.Context, tx *sql.Tx, name string) (*model.Genre, error) {
	g := &model.Genre{Name: name}
	const q = `SELECT id FROM genres WHERE name = ?`
	err := tx.QueryRowContext(ctx, q, name).Scan(&g.ID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, name)
	if err != nil {
		if isDuplicateKey(err) {
			if err := tx.QueryRowContext(ctx, q, name).Scan(&g.ID); err != nil {
				return nil, err
			}
			return g, nil
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	g.ID = uint64(id)
	return g, nil
}

// resolveCity resolves the state by name and then the city within it.  It is
// the shared first step of every venue/artist mutation.
func resolveCity(ctx context.Context, tx *sql.Tx, cityName, stateName string) (uint64, error) {
	st, err := GetOrCreateState(ctx, tx, stateName)
	if err != nil {
		return 0, err
	}
	city, err := GetOrCreateCity(ctx, tx, cityName, st.ID)
	if err != nil {
		return 0, err
	}
	return city.ID, nil
}

// resolveGenres resolves every listed genre name to an id, creating missing
// genres on the way.  Duplicate names in the input collapse to one id.
func resolveGenres(ctx context.Context, tx *sql.Tx, names []string) ([]uint64, error) {
	seen := make(map[uint64]bool, len(names))
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		g, err := GetOrCreateGenre(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if !seen[g.ID] {
			seen[g.ID] = true
			ids = append(ids, g.ID)
		}
	}
	return ids, nil
}
