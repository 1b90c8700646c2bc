package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestimmob/rental-service/internal/idgen"
	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/repositories"
	"github.com/gestimmob/rental-service/internal/utils"
)

// PropertyService manages properties and their units and rooms.
type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	unitRepo     repositories.UnitRepository
	roomRepo     repositories.RoomRepository
	leaseRepo    repositories.LeaseRepository
	landlordRepo repositories.LandlordRepository
	numbering    *Numbering
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	roomRepo repositories.RoomRepository,
	leaseRepo repositories.LeaseRepository,
	landlordRepo repositories.LandlordRepository,
	numbering *Numbering,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		roomRepo:     roomRepo,
		leaseRepo:    leaseRepo,
		landlordRepo: landlordRepo,
		numbering:    numbering,
	}
}

// Create mints the property number and stores the property. New
// properties start available; the engine takes over the flag from the
// first lease on.
func (s *PropertyService) Create(ctx context.Context, draft *models.Property) (*models.Property, error) {
	landlord, err := s.landlordRepo.GetByID(ctx, draft.LandlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrLandlordNotFound
	}

	number, err := s.numbering.Next(ctx, idgen.EntityProperty)
	if err != nil {
		return nil, err
	}
	draft.ID = uuid.New()
	draft.Number = number
	draft.Available = true
	if draft.Mode == "" {
		draft.Mode = models.ManagementWhole
	}
	if err := s.propertyRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Created property %s for landlord %s", draft.Number, landlord.Number)
	return draft, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	prop, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.ErrPropertyNotFound
	}
	return prop, nil
}

func (s *PropertyService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return s.propertyRepo.ListByLandlordID(ctx, landlordID)
}

// Delete hard-deletes a property. A property that ever carried a lease
// is protected: history must survive, soft-delete instead.
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	prop, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if prop == nil {
		return utils.ErrPropertyNotFound
	}
	n, err := s.leaseRepo.CountByPropertyID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.ErrPropertyHasLeases
	}
	// Rooms reference both their unit and the property, so they go first.
	if err := s.roomRepo.DeleteByPropertyID(ctx, id); err != nil {
		return err
	}
	if err := s.unitRepo.DeleteByPropertyID(ctx, id); err != nil {
		return err
	}
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	utils.Logger.Infof("Deleted property %s", prop.Number)
	return nil
}

func (s *PropertyService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.propertyRepo.SoftDelete(ctx, id)
}

// AddUnit attaches a unit to a multi-unit property.
func (s *PropertyService) AddUnit(ctx context.Context, propID uuid.UUID, unit *models.Unit) (*models.Unit, error) {
	prop, err := s.GetByID(ctx, propID)
	if err != nil {
		return nil, err
	}
	if !prop.IsMultiUnit() {
		return nil, &utils.AppError{
			StatusCode: 422,
			Code:       utils.ErrCodeValidation,
			Message:    "units can only be added to a multi-unit property",
		}
	}
	unit.ID = uuid.New()
	unit.PropertyID = propID
	if unit.Status == "" {
		unit.Status = models.StatusAvailable
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// AddRoom attaches a room, either bound to a unit or individually
// leasable.
func (s *PropertyService) AddRoom(ctx context.Context, propID uuid.UUID, room *models.Room) (*models.Room, error) {
	if _, err := s.GetByID(ctx, propID); err != nil {
		return nil, err
	}
	if room.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *room.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil || unit.PropertyID != propID {
			return nil, utils.ErrUnitNotFound
		}
	}
	room.ID = uuid.New()
	room.PropertyID = propID
	if room.Status == "" {
		room.Status = models.StatusAvailable
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetUnitStatus lets an operator place a unit in a maintenance state.
// Derived statuses cannot be forced by hand.
func (s *PropertyService) SetUnitStatus(ctx context.Context, unitID uuid.UUID, status models.ResourceStatus) error {
	if status.Derived() {
		return &utils.AppError{
			StatusCode: 422,
			Code:       utils.ErrCodeValidation,
			Message:    "available/occupied are derived and cannot be set directly",
		}
	}
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return utils.ErrUnitNotFound
	}
	return s.unitRepo.SetStatus(ctx, unitID, status)
}

// ClearUnitMaintenance hands the unit back to the engine: the status
// returns to the derived family and the next recomputation settles it
// on available or occupied.
func (s *PropertyService) ClearUnitMaintenance(ctx context.Context, unitID uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return utils.ErrUnitNotFound
	}
	if unit.Status.Derived() {
		return nil
	}
	return s.unitRepo.SetStatus(ctx, unitID, models.StatusAvailable)
}
