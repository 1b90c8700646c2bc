package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/utils"
)

var refDay = time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

type availabilityFixture struct {
	props  *fakePropertyRepo
	units  *fakeUnitRepo
	rooms  *fakeRoomRepo
	leases *fakeLeaseRepo
	svc    *AvailabilityService
}

func newAvailabilityFixture() *availabilityFixture {
	props := newFakePropertyRepo()
	units := newFakeUnitRepo()
	rooms := newFakeRoomRepo()
	leases := newFakeLeaseRepo(props)
	svc := NewAvailabilityService(props, units, rooms, leases)
	svc.now = func() time.Time { return refDay }
	return &availabilityFixture{props: props, units: units, rooms: rooms, leases: leases, svc: svc}
}

func (f *availabilityFixture) seedProperty(number string, available bool) *models.Property {
	p := &models.Property{
		ID:        uuid.New(),
		Number:    number,
		Mode:      models.ManagementWhole,
		Available: available,
	}
	f.props.byID[p.ID] = p
	return p
}

func (f *availabilityFixture) seedLease(propID uuid.UUID, number string, start time.Time, end *time.Time) *models.Lease {
	l := &models.Lease{
		ID:         uuid.New(),
		Number:     number,
		PropertyID: propID,
		TenantID:   uuid.New(),
		StartDate:  start,
		EndDate:    end,
		Active:     true,
	}
	f.leases.byID[l.ID] = l
	return l
}

func TestOnLeasePersistedMarksPropertyOccupied(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)

	f.svc.OnLeasePersisted(context.Background(), lease, true)

	assert.False(t, prop.Available)
}

func TestOnLeasePersistedRestoresAvailabilityAfterTermination(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", false)
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -6, 0), nil)
	end := refDay.AddDate(0, 0, -1)
	lease.Terminated = true
	lease.Active = false
	lease.EndDate = &end

	f.svc.OnLeasePersisted(context.Background(), lease, false)

	assert.True(t, prop.Available)
}

func TestOnLeaseRemovedRecomputesFromRemainingLeases(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", false)
	removed := &models.Lease{
		ID:         uuid.New(),
		Number:     "CTR-2026-0002",
		PropertyID: prop.ID,
		StartDate:  refDay.AddDate(0, -1, 0),
		Active:     true,
	}
	// The removed lease is gone from the store; nothing else occupies.
	f.svc.OnLeaseRemoved(context.Background(), removed)

	assert.True(t, prop.Available)
}

func TestSoftDeletedLeaseStillOccupies(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)
	deleted := refDay.AddDate(0, 0, -2)
	lease.DeletedAt = &deleted

	report, err := f.svc.ReconcileAllProperties(context.Background())
	require.NoError(t, err)

	assert.False(t, prop.Available, "soft-deleted occupying lease must keep the property occupied")
	assert.Equal(t, 1, report.Corrected)
}

func TestUnitLeaseLeavesPropertyFlagAlone(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	prop.Mode = models.ManagementMultiUnit
	unit := &models.Unit{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		UnitNumber: "A1",
		Status:     models.StatusAvailable,
	}
	f.units.byID[unit.ID] = unit
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)
	lease.UnitID = &unit.ID

	f.svc.OnLeasePersisted(context.Background(), lease, true)

	assert.Equal(t, models.StatusOccupied, unit.Status)
	assert.True(t, prop.Available, "unit leases do not flip the whole-property flag")
}

func TestRoomLeaseRefreshesEachRoom(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	roomA := &models.Room{ID: uuid.New(), PropertyID: prop.ID, RoomNumber: "R1", Status: models.StatusAvailable}
	roomB := &models.Room{ID: uuid.New(), PropertyID: prop.ID, RoomNumber: "R2", Status: models.StatusAvailable}
	f.rooms.byID[roomA.ID] = roomA
	f.rooms.byID[roomB.ID] = roomB
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)
	lease.RoomIDs = []uuid.UUID{roomA.ID, roomB.ID}

	f.svc.OnLeasePersisted(context.Background(), lease, true)

	assert.Equal(t, models.StatusOccupied, roomA.Status)
	assert.Equal(t, models.StatusOccupied, roomB.Status)
}

func TestMaintenanceStatusNeverOverwritten(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	unit := &models.Unit{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		UnitNumber: "A1",
		Status:     models.StatusRenovation,
	}
	f.units.byID[unit.ID] = unit
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)
	lease.UnitID = &unit.ID

	f.svc.OnLeasePersisted(context.Background(), lease, true)
	_, err := f.svc.ReconcileAllProperties(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusRenovation, unit.Status)
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newAvailabilityFixture()
	// Skewed both ways: occupied property flagged available, and a free
	// one flagged occupied.
	occupied := f.seedProperty("PRP-2026-0001", true)
	f.seedLease(occupied.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)
	free := f.seedProperty("PRP-2026-0002", false)

	first, err := f.svc.ReconcileAllProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Scanned)
	assert.Equal(t, 2, first.Corrected)
	assert.Len(t, first.Corrections, 2)
	assert.False(t, occupied.Available)
	assert.True(t, free.Available)

	second, err := f.svc.ReconcileAllProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Corrected)
	assert.Empty(t, second.Corrections)
}

type failingLeaseRepo struct {
	*fakeLeaseRepo
}

func (f *failingLeaseRepo) ListOccupyingWholeProperty(ctx context.Context, propID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	return nil, errors.New("store unavailable")
}

func TestReconcileCollectsErrorsAndContinues(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	unit := &models.Unit{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		UnitNumber: "A1",
		Status:     models.StatusOccupied,
	}
	f.units.byID[unit.ID] = unit

	svc := NewAvailabilityService(f.props, f.units, f.rooms, &failingLeaseRepo{f.leases})
	svc.now = func() time.Time { return refDay }

	report, err := svc.ReconcileAllProperties(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Entity, prop.Number)
	// The unit pass still ran and corrected the stale status.
	assert.Equal(t, models.StatusAvailable, unit.Status)
}

func TestCheckAvailabilityReportsConflicts(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", false)
	end := refDay.AddDate(1, 0, 0)
	f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), &end)

	result, err := f.svc.CheckAvailability(context.Background(), prop.ID, refDay, nil, uuid.Nil)
	require.NoError(t, err)

	assert.False(t, result.Available)
	assert.Equal(t, "overlapping lease", result.Reason)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "CTR-2026-0001", result.Conflicts[0].LeaseNumber)
}

func TestCheckAvailabilityBackToBackRanges(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", true)
	end := refDay
	f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(-1, 0, 0), &end)

	// Starting exactly on the previous end date: half-open, no overlap.
	result, err := f.svc.CheckAvailability(context.Background(), prop.ID, refDay, nil, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
}

func TestCheckAvailabilityExcludesGivenLease(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", false)
	lease := f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -1, 0), nil)

	// Re-checking the lease's own window must not report it against itself;
	// the stale flag still blocks, with the other reason.
	result, err := f.svc.CheckAvailability(context.Background(), prop.ID, lease.StartDate, nil, lease.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, "property flagged unavailable", result.Reason)
}

func TestCheckAvailabilityStaleFlag(t *testing.T) {
	f := newAvailabilityFixture()
	prop := f.seedProperty("PRP-2026-0001", false)

	result, err := f.svc.CheckAvailability(context.Background(), prop.ID, refDay, nil, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "property flagged unavailable", result.Reason)
}

func TestCheckAvailabilityFutureRangeIgnoresStaleFlag(t *testing.T) {
	f := newAvailabilityFixture()
	// Current lease ends before the proposed range starts; the flag is
	// legitimately "occupied" today but must not block a future booking.
	prop := f.seedProperty("PRP-2026-0001", false)
	f.seedLease(prop.ID, "CTR-2026-0001", refDay.AddDate(0, -6, 0), utils.Ptr(refDay.AddDate(0, 2, 0)))

	result, err := f.svc.CheckAvailability(context.Background(), prop.ID, refDay.AddDate(0, 2, 0), nil, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
}

func TestCheckAvailabilityUnknownProperty(t *testing.T) {
	f := newAvailabilityFixture()
	_, err := f.svc.CheckAvailability(context.Background(), uuid.New(), refDay, nil, uuid.Nil)
	assert.ErrorIs(t, err, utils.ErrPropertyNotFound)
}

func TestHooksSwallowFailures(t *testing.T) {
	f := newAvailabilityFixture()
	ghost := &models.Lease{
		ID:         uuid.New(),
		Number:     "CTR-2026-0009",
		PropertyID: uuid.New(), // no such property
		StartDate:  refDay,
		Active:     true,
	}
	// Must not panic; the failed refresh is logged only.
	f.svc.OnLeasePersisted(context.Background(), ghost, true)
	f.svc.OnLeaseRemoved(context.Background(), ghost)
}
