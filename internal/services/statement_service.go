package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestimmob/rental-service/internal/repositories"
	"github.com/gestimmob/rental-service/internal/utils"
)

// LandlordStatement is the monthly money view for one landlord:
// theoretical rent roll of the leases occupying their properties, the
// charges deducted from it, and what was actually collected.
type LandlordStatement struct {
	LandlordID        uuid.UUID `json:"landlord_id"`
	LandlordNumber    string    `json:"landlord_number"`
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	LeaseCount        int       `json:"lease_count"`
	GrossRent         float64   `json:"gross_rent"`
	DeductibleCharges float64   `json:"deductible_charges"`
	NetDue            float64   `json:"net_due"`
	PaymentsCollected float64   `json:"payments_collected"`
}

// StatementService computes landlord statements. Read-only: it never
// touches derived fields or sequences.
type StatementService struct {
	landlordRepo repositories.LandlordRepository
	leaseRepo    repositories.LeaseRepository
	paymentRepo  repositories.PaymentRepository
}

func NewStatementService(
	landlordRepo repositories.LandlordRepository,
	leaseRepo repositories.LeaseRepository,
	paymentRepo repositories.PaymentRepository,
) *StatementService {
	return &StatementService{
		landlordRepo: landlordRepo,
		leaseRepo:    leaseRepo,
		paymentRepo:  paymentRepo,
	}
}

// MonthlyStatement aggregates over the leases occupying the landlord's
// properties at the end of the month (so a lease starting mid-month
// counts, one terminated mid-month does not).
func (s *StatementService) MonthlyStatement(ctx context.Context, landlordID uuid.UUID, year int, month time.Month) (*LandlordStatement, error) {
	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, utils.ErrLandlordNotFound
	}

	monthEnd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).AddDate(0, 0, -1)

	leases, err := s.leaseRepo.ListOccupyingByLandlordID(ctx, landlordID, monthEnd)
	if err != nil {
		return nil, err
	}

	st := &LandlordStatement{
		LandlordID:     landlordID,
		LandlordNumber: landlord.Number,
		Year:           year,
		Month:          int(month),
		LeaseCount:     len(leases),
	}
	leaseIDs := make([]uuid.UUID, 0, len(leases))
	for _, l := range leases {
		st.GrossRent += l.MonthlyRent
		st.DeductibleCharges += l.DeductibleCharges
		leaseIDs = append(leaseIDs, l.ID)
	}
	st.NetDue = st.GrossRent - st.DeductibleCharges

	collected, err := s.paymentRepo.SumValidatedForLeasesInMonth(ctx, leaseIDs, year, int(month))
	if err != nil {
		return nil, err
	}
	st.PaymentsCollected = collected
	return st, nil
}
