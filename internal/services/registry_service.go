package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestimmob/rental-service/internal/idgen"
	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/repositories"
	"github.com/gestimmob/rental-service/internal/utils"
)

// RegistryService registers the people side of the domain: landlords
// and tenants. Both get an allocator-issued number on creation.
type RegistryService struct {
	landlordRepo repositories.LandlordRepository
	tenantRepo   repositories.TenantRepository
	numbering    *Numbering
}

func NewRegistryService(
	landlordRepo repositories.LandlordRepository,
	tenantRepo repositories.TenantRepository,
	numbering *Numbering,
) *RegistryService {
	return &RegistryService{
		landlordRepo: landlordRepo,
		tenantRepo:   tenantRepo,
		numbering:    numbering,
	}
}

func (s *RegistryService) CreateLandlord(ctx context.Context, draft *models.Landlord) (*models.Landlord, error) {
	number, err := s.numbering.Next(ctx, idgen.EntityLandlord)
	if err != nil {
		return nil, err
	}
	draft.ID = uuid.New()
	draft.Number = number
	draft.Active = true
	if err := s.landlordRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Registered landlord %s", draft.Number)
	return draft, nil
}

func (s *RegistryService) CreateTenant(ctx context.Context, draft *models.Tenant) (*models.Tenant, error) {
	number, err := s.numbering.Next(ctx, idgen.EntityTenant)
	if err != nil {
		return nil, err
	}
	draft.ID = uuid.New()
	draft.Number = number
	draft.Active = true
	if err := s.tenantRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Registered tenant %s", draft.Number)
	return draft, nil
}

func (s *RegistryService) GetLandlord(ctx context.Context, id uuid.UUID) (*models.Landlord, error) {
	l, err := s.landlordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.ErrLandlordNotFound
	}
	return l, nil
}

func (s *RegistryService) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrTenantNotFound
	}
	return t, nil
}
