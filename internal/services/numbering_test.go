package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestimmob/rental-service/internal/idgen"
)

func TestNumberingSequencesPerEntityAndPeriod(t *testing.T) {
	n := NewNumbering(newFakeSequenceRepo())
	n.now = func() time.Time { return refDay }

	ctx := context.Background()
	first, err := n.Next(ctx, idgen.EntityLease)
	require.NoError(t, err)
	second, err := n.Next(ctx, idgen.EntityLease)
	require.NoError(t, err)
	assert.Equal(t, "CTR-2026-0001", first)
	assert.Equal(t, "CTR-2026-0002", second)

	// A different entity runs its own counter in its own period shape.
	payment, err := n.Next(ctx, idgen.EntityPayment)
	require.NoError(t, err)
	assert.Equal(t, "PAY-202604-0001", payment)

	// A new period restarts the sequence.
	n.now = func() time.Time { return refDay.AddDate(1, 0, 0) }
	nextYear, err := n.Next(ctx, idgen.EntityLease)
	require.NoError(t, err)
	assert.Equal(t, "CTR-2027-0001", nextYear)
}

func TestNumberingConcurrentMintsAreDistinct(t *testing.T) {
	n := NewNumbering(newFakeSequenceRepo())
	n.now = func() time.Time { return refDay }

	const workers = 40
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := n.Next(context.Background(), idgen.EntityReceipt)
			if err != nil {
				t.Error(err)
				return
			}
			numbers <- number
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for number := range numbers {
		require.False(t, seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, workers)
}
