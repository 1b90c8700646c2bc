package services

import (
	"context"
	"time"

	"github.com/gestimmob/rental-service/internal/idgen"
	"github.com/gestimmob/rental-service/internal/repositories"
)

// Numbering allocates business identifiers for interactive writes. It
// pairs the idgen formatting primitives with the store-side atomic
// sequence, so concurrent requests can never mint the same number.
type Numbering struct {
	seqRepo repositories.CodeSequenceRepository
	now     func() time.Time
}

func NewNumbering(seqRepo repositories.CodeSequenceRepository) *Numbering {
	return &Numbering{seqRepo: seqRepo, now: time.Now}
}

// Next mints the next identifier for the entity type in the current
// period, e.g. CTR-2026-0007 or PAY-202608-0031.
func (n *Numbering) Next(ctx context.Context, entity idgen.EntityType) (string, error) {
	now := n.now()
	period, err := idgen.PeriodKey(entity, now)
	if err != nil {
		return "", err
	}
	seq, err := n.seqRepo.NextValue(ctx, string(entity), period)
	if err != nil {
		return "", err
	}
	return idgen.SequentialCode(entity, now, seq)
}
