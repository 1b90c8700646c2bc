package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/repositories"
	"github.com/gestimmob/rental-service/internal/utils"
)

// AvailabilityService keeps the derived occupancy fields (property
// `available`, unit/room `status`) consistent with the lease table.
//
// It is the only writer of those fields. Lease write paths call the
// On* hooks after their own commit; a nightly batch pass repairs
// anything the hooks missed. Maintenance statuses (in_renovation,
// out_of_service) are operator-owned and never touched here.
type AvailabilityService struct {
	propertyRepo repositories.PropertyRepository
	unitRepo     repositories.UnitRepository
	roomRepo     repositories.RoomRepository
	leaseRepo    repositories.LeaseRepository
	now          func() time.Time
}

func NewAvailabilityService(
	propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	roomRepo repositories.RoomRepository,
	leaseRepo repositories.LeaseRepository,
) *AvailabilityService {
	return &AvailabilityService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		roomRepo:     roomRepo,
		leaseRepo:    leaseRepo,
		now:          time.Now,
	}
}

/* ------------------------------------------------------------------
   Hooks
------------------------------------------------------------------ */

// OnLeasePersisted recomputes the saved lease's targets. It runs after
// the lease write has committed; failures are logged and swallowed so
// the primary operation never fails because of a derived-field refresh.
func (s *AvailabilityService) OnLeasePersisted(ctx context.Context, lease *models.Lease, created bool) {
	if err := s.refreshLeaseTargets(ctx, lease); err != nil {
		utils.Logger.WithError(err).Warnf(
			"Availability refresh failed after persisting lease %s (created=%t)", lease.Number, created)
	}
}

// OnLeaseRemoved recomputes the removed lease's targets from whatever
// remains in the store. Log-only on failure, like OnLeasePersisted.
func (s *AvailabilityService) OnLeaseRemoved(ctx context.Context, lease *models.Lease) {
	if err := s.refreshLeaseTargets(ctx, lease); err != nil {
		utils.Logger.WithError(err).Warnf(
			"Availability refresh failed after removing lease %s", lease.Number)
	}
}

func (s *AvailabilityService) refreshLeaseTargets(ctx context.Context, lease *models.Lease) error {
	switch lease.TargetKind() {
	case models.TargetNone:
		utils.Logger.Warnf("Lease %s has no resolvable target; skipping availability refresh", lease.Number)
		return nil
	case models.TargetUnit:
		if err := s.refreshUnit(ctx, *lease.UnitID, nil); err != nil {
			return err
		}
	case models.TargetRooms:
		for _, roomID := range lease.RoomIDs {
			if err := s.refreshRoom(ctx, roomID, nil); err != nil {
				return err
			}
		}
	}
	// The property flag is derived from whole-property leases only, but
	// recomputing it is idempotent and keeps every path converging on
	// the same state.
	_, err := s.refreshProperty(ctx, lease.PropertyID, nil)
	return err
}

/* ------------------------------------------------------------------
   Recomputation primitives
------------------------------------------------------------------ */

// refreshProperty recomputes the derived `available` flag: a property is
// available iff no occupying whole-property lease covers today. Writes
// only on change; the optional report collects what changed.
func (s *AvailabilityService) refreshProperty(ctx context.Context, propID uuid.UUID, report *models.ReconciliationReport) (bool, error) {
	prop, err := s.propertyRepo.GetByID(ctx, propID)
	if err != nil {
		return false, err
	}
	if prop == nil {
		return false, utils.ErrPropertyNotFound
	}

	occupying, err := s.leaseRepo.ListOccupyingWholeProperty(ctx, propID, s.now())
	if err != nil {
		return false, err
	}
	desired := len(occupying) == 0
	if prop.Available == desired {
		return false, nil
	}
	if err := s.propertyRepo.SetAvailability(ctx, propID, desired); err != nil {
		return false, err
	}
	if report != nil {
		report.Corrections = append(report.Corrections, models.ReconciliationCorrection{
			Entity:    "property " + prop.Number,
			OldStatus: availabilityWord(prop.Available),
			NewStatus: availabilityWord(desired),
		})
	}
	utils.Logger.Infof("Property %s availability corrected to %s", prop.Number, availabilityWord(desired))
	return true, nil
}

func (s *AvailabilityService) refreshUnit(ctx context.Context, unitID uuid.UUID, report *models.ReconciliationReport) error {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return utils.ErrUnitNotFound
	}
	if !unit.Status.Derived() {
		return nil // maintenance state, operator-owned
	}

	occupying, err := s.leaseRepo.ListOccupyingByUnitID(ctx, unitID, s.now())
	if err != nil {
		return err
	}
	desired := models.StatusAvailable
	if len(occupying) > 0 {
		desired = models.StatusOccupied
	}
	if unit.Status == desired {
		return nil
	}
	if err := s.unitRepo.SetStatus(ctx, unitID, desired); err != nil {
		return err
	}
	if report != nil {
		report.Corrections = append(report.Corrections, models.ReconciliationCorrection{
			Entity:    "unit " + unit.UnitNumber,
			OldStatus: string(unit.Status),
			NewStatus: string(desired),
		})
	}
	utils.Logger.Infof("Unit %s status corrected to %s", unit.UnitNumber, desired)
	return nil
}

func (s *AvailabilityService) refreshRoom(ctx context.Context, roomID uuid.UUID, report *models.ReconciliationReport) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("room %s: %w", roomID, utils.ErrUnitNotFound)
	}
	if !room.Status.Derived() {
		return nil
	}

	occupying, err := s.leaseRepo.ListOccupyingByRoomID(ctx, roomID, s.now())
	if err != nil {
		return err
	}
	desired := models.StatusAvailable
	if len(occupying) > 0 {
		desired = models.StatusOccupied
	}
	if room.Status == desired {
		return nil
	}
	if err := s.roomRepo.SetStatus(ctx, roomID, desired); err != nil {
		return err
	}
	if report != nil {
		report.Corrections = append(report.Corrections, models.ReconciliationCorrection{
			Entity:    "room " + room.RoomNumber,
			OldStatus: string(room.Status),
			NewStatus: string(desired),
		})
	}
	utils.Logger.Infof("Room %s status corrected to %s", room.RoomNumber, desired)
	return nil
}

/* ------------------------------------------------------------------
   Batch reconciliation
------------------------------------------------------------------ */

// ReconcileAllProperties recomputes every derived field from the lease
// table. Per-item failures are collected in the report and never abort
// the pass; running it twice in a row yields zero corrections the
// second time.
func (s *AvailabilityService) ReconcileAllProperties(ctx context.Context) (*models.ReconciliationReport, error) {
	report := &models.ReconciliationReport{}

	properties, err := s.propertyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, prop := range properties {
		report.Scanned++
		corrected, err := s.refreshProperty(ctx, prop.ID, report)
		if err != nil {
			report.Errors = append(report.Errors, models.ReconciliationError{
				Entity: "property " + prop.Number, Message: err.Error(),
			})
		} else if corrected {
			report.Corrected++
		}

		units, err := s.unitRepo.ListByPropertyID(ctx, prop.ID)
		if err != nil {
			report.Errors = append(report.Errors, models.ReconciliationError{
				Entity: "property " + prop.Number + " units", Message: err.Error(),
			})
		} else {
			for _, u := range units {
				report.Scanned++
				before := len(report.Corrections)
				if err := s.refreshUnit(ctx, u.ID, report); err != nil {
					report.Errors = append(report.Errors, models.ReconciliationError{
						Entity: "unit " + u.UnitNumber, Message: err.Error(),
					})
				} else if len(report.Corrections) > before {
					report.Corrected++
				}
			}
		}

		rooms, err := s.roomRepo.ListByPropertyID(ctx, prop.ID)
		if err != nil {
			report.Errors = append(report.Errors, models.ReconciliationError{
				Entity: "property " + prop.Number + " rooms", Message: err.Error(),
			})
		} else {
			for _, rm := range rooms {
				report.Scanned++
				before := len(report.Corrections)
				if err := s.refreshRoom(ctx, rm.ID, report); err != nil {
					report.Errors = append(report.Errors, models.ReconciliationError{
						Entity: "room " + rm.RoomNumber, Message: err.Error(),
					})
				} else if len(report.Corrections) > before {
					report.Corrected++
				}
			}
		}
	}

	utils.Logger.Infof("Reconciliation pass done: scanned=%d corrected=%d errors=%d",
		report.Scanned, report.Corrected, len(report.Errors))
	return report, nil
}

/* ------------------------------------------------------------------
   Read-only pre-check
------------------------------------------------------------------ */

// LeaseConflict is one existing lease blocking a proposed date range.
type LeaseConflict struct {
	LeaseNumber string     `json:"lease_number"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// AvailabilityResult is the outcome of a pre-check. Available is true
// only when the derived flag agrees and no overlapping occupying lease
// exists; Conflicts lists what blocks the range.
type AvailabilityResult struct {
	Available bool            `json:"available"`
	Reason    string          `json:"reason,omitempty"`
	Conflicts []LeaseConflict `json:"conflicts,omitempty"`
}

// CheckAvailability answers "could a whole-property lease over
// [start, end) be created on this property?" without writing anything.
// An open-ended proposal passes end=nil. excludeLeaseID ignores one
// lease (the one being updated); pass uuid.Nil otherwise.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, propertyID uuid.UUID, start time.Time, end *time.Time, excludeLeaseID uuid.UUID) (*AvailabilityResult, error) {
	prop, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrPropertyNotFound
	}

	proposed := &models.Lease{
		ID:         excludeLeaseID,
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
	}
	conflicting, err := s.leaseRepo.FindConflicting(ctx, nil, proposed)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{Available: true}
	for _, l := range conflicting {
		result.Conflicts = append(result.Conflicts, LeaseConflict{
			LeaseNumber: l.Number,
			StartDate:   l.StartDate,
			EndDate:     l.EndDate,
		})
	}
	if len(result.Conflicts) > 0 {
		result.Available = false
		result.Reason = "overlapping lease"
	} else if !prop.Available && proposed.CoversDate(s.now()) {
		// No conflicting lease but the flag disagrees on a range that
		// includes today: stale derived state, repaired by the next
		// reconciliation pass. A purely future range only answers to
		// the lease table.
		result.Available = false
		result.Reason = "property flagged unavailable"
	}
	return result, nil
}

func availabilityWord(available bool) string {
	if available {
		return string(models.StatusAvailable)
	}
	return string(models.StatusOccupied)
}
