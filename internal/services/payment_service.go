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

// PaymentService records rent payments against leases and issues the
// matching receipts on validation.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	receiptRepo repositories.ReceiptRepository
	leaseRepo   repositories.LeaseRepository
	numbering   *Numbering
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	receiptRepo repositories.ReceiptRepository,
	leaseRepo repositories.LeaseRepository,
	numbering *Numbering,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		receiptRepo: receiptRepo,
		leaseRepo:   leaseRepo,
		numbering:   numbering,
		now:         time.Now,
	}
}

// Record stores a pending payment against a lease, minting its
// PAY number.
func (s *PaymentService) Record(ctx context.Context, leaseID uuid.UUID, amount float64, paidOn time.Time, method string) (*models.Payment, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrLeaseNotFound
	}

	number, err := s.numbering.Next(ctx, idgen.EntityPayment)
	if err != nil {
		return nil, err
	}
	payment := &models.Payment{
		ID:      uuid.New(),
		Number:  number,
		LeaseID: leaseID,
		Amount:  amount,
		PaidOn:  paidOn,
		Method:  method,
		Status:  models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Recorded payment %s on lease %s", payment.Number, lease.Number)
	return payment, nil
}

// Validate marks the payment as validated and issues its receipt.
// Validating twice is a no-op on the receipt side: one receipt per
// payment, ever.
func (s *PaymentService) Validate(ctx context.Context, paymentID uuid.UUID) (*models.Receipt, error) {
	err := s.paymentRepo.UpdateWithRetry(ctx, paymentID, func(p *models.Payment) error {
		p.Status = models.PaymentValidated
		return nil
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.receiptRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	number, err := s.numbering.Next(ctx, idgen.EntityReceipt)
	if err != nil {
		return nil, err
	}
	receipt := &models.Receipt{
		ID:        uuid.New(),
		Number:    number,
		PaymentID: paymentID,
		IssuedOn:  s.now(),
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Issued receipt %s for payment %s", receipt.Number, paymentID)
	return receipt, nil
}

// Refuse marks the payment refused; no receipt is issued.
func (s *PaymentService) Refuse(ctx context.Context, paymentID uuid.UUID) error {
	return s.paymentRepo.UpdateWithRetry(ctx, paymentID, func(p *models.Payment) error {
		p.Status = models.PaymentRefused
		return nil
	})
}

func (s *PaymentService) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByLeaseID(ctx, leaseID)
}
