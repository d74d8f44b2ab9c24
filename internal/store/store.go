// Package store persists farm records in SQLite. Every farm-scoped query
// resolves the farm against the acting user first and reports
// domain.ErrFarmNotFound when it does not resolve, so callers cannot tell an
// unowned farm from an absent one and no aggregation ever sees another
// user's records.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mkanyika/shamba/internal/domain"
)

// requireFarm verifies that farmID belongs to userID.
func requireFarm(ctx context.Context, db *sql.DB, userID, farmID string) error {
	var one int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM farms WHERE id = ? AND user_id = ?`, farmID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrFarmNotFound
	}
	if err != nil {
		return fmt.Errorf("check farm ownership: %w", err)
	}
	return nil
}

// dateFilter appends inclusive bounds on column for rng. The column name is
// always a compile-time constant, never caller input.
func dateFilter(column string, rng *domain.DateRange, args []any) (string, []any) {
	var cond string
	if rng == nil {
		return cond, args
	}
	if rng.Start != "" {
		cond += " AND " + column + " >= ?"
		args = append(args, rng.Start)
	}
	if rng.End != "" {
		cond += " AND " + column + " <= ?"
		args = append(args, rng.End)
	}
	return cond, args
}

// marshalJSON encodes v for a TEXT column, mapping nil pointers to NULL.
func marshalJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal json column: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalJSON decodes a TEXT column into dst; NULL and empty leave dst
// untouched.
func unmarshalJSON(col sql.NullString, dst any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), dst); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
