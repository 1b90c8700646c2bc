package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// existsByColumn probes for any live row carrying the value in the given
// column. table and column are compile-time constants supplied by the
// repositories, never caller input.
func existsByColumn(ctx context.Context, db DB, table, column, value string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE `+column+`=$1)`,
		value,
	).Scan(&exists)
	return exists, err
}

// maxByPrefix returns the lexicographically highest value of column
// starting with prefix, or "" when no row matches. Soft-deleted rows are
// included: an issued identifier stays burned forever.
func maxByPrefix(ctx context.Context, db DB, table, column, prefix string) (string, error) {
	var max string
	err := db.QueryRow(ctx,
		`SELECT COALESCE(MAX(`+column+`), '') FROM `+table+` WHERE `+column+` LIKE $1 || '%'`,
		prefix,
	).Scan(&max)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	return max, err
}
