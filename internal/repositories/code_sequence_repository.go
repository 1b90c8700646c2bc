package repositories

import (
	"context"
)

// CodeSequenceRepository hands out per-period sequence numbers for the
// human-readable identifiers. The increment is a single atomic upsert,
// so two requests can never observe the same value; this is the
// allocator path interactive traffic must use.
type CodeSequenceRepository interface {
	NextValue(ctx context.Context, entity, period string) (int64, error)
}

type codeSequenceRepo struct {
	db DB
}

func NewCodeSequenceRepository(db DB) CodeSequenceRepository {
	return &codeSequenceRepo{db: db}
}

func (r *codeSequenceRepo) NextValue(ctx context.Context, entity, period string) (int64, error) {
	var value int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO code_sequences (entity, period, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (entity, period)
		DO UPDATE SET value = code_sequences.value + 1
		RETURNING value
	`, entity, period).Scan(&value)
	return value, err
}
