package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestimmob/rental-service/internal/idgen"
	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/repositories"
	"github.com/gestimmob/rental-service/internal/utils"
)

// LeaseService owns the lease lifecycle. Creation is the concurrency-
// sensitive path: it pre-checks availability, then re-checks inside a
// transaction holding a row lock on the property, so two simultaneous
// creations on the same target serialize instead of double-booking.
type LeaseService struct {
	db           repositories.DB
	leaseRepo    repositories.LeaseRepository
	propertyRepo repositories.PropertyRepository
	unitRepo     repositories.UnitRepository
	roomRepo     repositories.RoomRepository
	tenantRepo   repositories.TenantRepository
	numbering    *Numbering
	availability *AvailabilityService
	now          func() time.Time
}

func NewLeaseService(
	db repositories.DB,
	leaseRepo repositories.LeaseRepository,
	propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	roomRepo repositories.RoomRepository,
	tenantRepo repositories.TenantRepository,
	numbering *Numbering,
	availability *AvailabilityService,
) *LeaseService {
	return &LeaseService{
		db:           db,
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		roomRepo:     roomRepo,
		tenantRepo:   tenantRepo,
		numbering:    numbering,
		availability: availability,
		now:          time.Now,
	}
}

/* ------------------------------------------------------------------
   Create
------------------------------------------------------------------ */

// Create validates the draft, mints its contract number, and inserts it
// under a property row lock. The draft's ID, Number, Active and
// Terminated fields are overwritten.
func (s *LeaseService) Create(ctx context.Context, draft *models.Lease) (*models.Lease, error) {
	if err := s.validateDraft(ctx, draft); err != nil {
		return nil, err
	}

	// Cheap read-only pre-check before touching the sequence; the
	// authoritative check runs again under the lock below. Only real
	// conflicts reject here: the derived flag can lag behind the lease
	// table and must not block a disjoint range.
	pre, err := s.availability.CheckAvailability(ctx, draft.PropertyID, draft.StartDate, draft.EndDate, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if draft.TargetKind() == models.TargetWholeProperty && len(pre.Conflicts) > 0 {
		return nil, conflictError(pre)
	}

	number, err := s.numbering.Next(ctx, idgen.EntityLease)
	if err != nil {
		return nil, err
	}

	draft.ID = uuid.New()
	draft.Number = number
	draft.Active = true
	draft.Terminated = false

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := s.propertyRepo.LockForUpdate(ctx, tx, draft.PropertyID); err != nil {
		return nil, err
	}

	conflicting, err := s.leaseRepo.FindConflicting(ctx, tx, draft)
	if err != nil {
		return nil, err
	}
	if len(conflicting) > 0 {
		utils.Logger.Infof("Rejected lease on property %s: %d conflicting lease(s)",
			draft.PropertyID, len(conflicting))
		return nil, utils.ErrPropertyUnavailable
	}

	if err := s.leaseRepo.CreateIn(ctx, tx, draft); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.availability.OnLeasePersisted(ctx, draft, true)
	utils.Logger.Infof("Created lease %s on property %s", draft.Number, draft.PropertyID)
	return draft, nil
}

func (s *LeaseService) validateDraft(ctx context.Context, draft *models.Lease) error {
	if draft.EndDate != nil && !draft.StartDate.Before(*draft.EndDate) {
		return utils.ErrInvalidDateRange
	}

	tenant, err := s.tenantRepo.GetByID(ctx, draft.TenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return utils.ErrTenantNotFound
	}

	prop, err := s.propertyRepo.GetByID(ctx, draft.PropertyID)
	if err != nil {
		return err
	}
	if prop == nil {
		return utils.ErrPropertyNotFound
	}

	switch draft.TargetKind() {
	case models.TargetUnit:
		unit, err := s.unitRepo.GetByID(ctx, *draft.UnitID)
		if err != nil {
			return err
		}
		if unit == nil || unit.PropertyID != draft.PropertyID {
			return utils.ErrUnitNotFound
		}
	case models.TargetRooms:
		rooms, err := s.roomRepo.ListByIDs(ctx, draft.RoomIDs)
		if err != nil {
			return err
		}
		if len(rooms) != len(draft.RoomIDs) {
			return utils.ErrUnitNotFound
		}
		for _, rm := range rooms {
			if rm.PropertyID != draft.PropertyID || !rm.IndividuallyLeasable() {
				return utils.ErrUnitNotFound
			}
		}
	case models.TargetNone:
		return utils.ErrPropertyNotFound
	}
	return nil
}

func conflictError(result *AvailabilityResult) error {
	return &utils.AppError{
		StatusCode: 409,
		Code:       utils.ErrCodeConflict,
		Message:    "property is not available over the requested period",
		Details:    result.Conflicts,
		Err:        utils.ErrPropertyUnavailable,
	}
}

/* ------------------------------------------------------------------
   Mutations
------------------------------------------------------------------ */

// Update edits the caller-editable fields (dates, rent, charges) under
// optimistic locking, then refreshes derived availability. Widening the
// date range re-runs the conflict check against the other leases on the
// property; the lease never collides with itself.
func (s *LeaseService) Update(ctx context.Context, id uuid.UUID, startDate time.Time, endDate *time.Time, monthlyRent, deductibleCharges float64) (*models.Lease, error) {
	if endDate != nil && !startDate.Before(*endDate) {
		return nil, utils.ErrInvalidDateRange
	}
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrLeaseNotFound
	}
	probe := *lease
	probe.StartDate = startDate
	probe.EndDate = endDate
	conflicting, err := s.leaseRepo.FindConflicting(ctx, nil, &probe)
	if err != nil {
		return nil, err
	}
	if len(conflicting) > 0 {
		utils.Logger.Infof("Rejected date change on lease %s: %d conflicting lease(s)",
			lease.Number, len(conflicting))
		return nil, utils.ErrPropertyUnavailable
	}
	err = s.leaseRepo.UpdateWithRetry(ctx, id, func(l *models.Lease) error {
		l.StartDate = startDate
		l.EndDate = endDate
		l.MonthlyRent = monthlyRent
		l.DeductibleCharges = deductibleCharges
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterMutation(ctx, id)
}

// Terminate closes the lease: terminated, inactive, end date set. The
// target becomes available again once recomputation runs.
func (s *LeaseService) Terminate(ctx context.Context, id uuid.UUID, endDate time.Time) (*models.Lease, error) {
	err := s.leaseRepo.UpdateWithRetry(ctx, id, func(l *models.Lease) error {
		if l.Terminated {
			return utils.ErrLeaseAlreadyTerminated
		}
		if !l.StartDate.Before(endDate) {
			return utils.ErrInvalidDateRange
		}
		l.Terminated = true
		l.Active = false
		l.EndDate = &endDate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterMutation(ctx, id)
}

func (s *LeaseService) afterMutation(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrLeaseNotFound
	}
	s.availability.OnLeasePersisted(ctx, lease, false)
	return lease, nil
}

// SoftDelete hides the lease from listings without releasing its
// target: an active, non-terminated lease keeps occupying through an
// administrative delete.
func (s *LeaseService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lease == nil {
		return utils.ErrLeaseNotFound
	}
	if err := s.leaseRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.availability.OnLeaseRemoved(ctx, lease)
	return nil
}

// Delete removes the lease for good and releases its target.
func (s *LeaseService) Delete(ctx context.Context, id uuid.UUID) error {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lease == nil {
		return utils.ErrLeaseNotFound
	}
	if err := s.leaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availability.OnLeaseRemoved(ctx, lease)
	utils.Logger.Infof("Deleted lease %s", lease.Number)
	return nil
}

/* ------------------------------------------------------------------
   Reads
------------------------------------------------------------------ */

func (s *LeaseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrLeaseNotFound
	}
	return lease, nil
}

func (s *LeaseService) ListByProperty(ctx context.Context, propID uuid.UUID) ([]*models.Lease, error) {
	return s.leaseRepo.ListByPropertyID(ctx, propID)
}
