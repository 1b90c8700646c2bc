package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
)

type ReceiptRepository interface {
	Create(ctx context.Context, rc *models.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error)
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Receipt, error)

	ExistsByNumber(ctx context.Context, field, number string) (bool, error)
	MaxNumber(ctx context.Context, prefix string) (string, error)
}

type receiptRepo struct {
	db DB
}

func NewReceiptRepository(db DB) ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, rc *models.Receipt) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO receipts (id, number, payment_id, issued_on, created_at)
		VALUES ($1,$2,$3,$4, NOW())
	`, rc.ID, rc.Number, rc.PaymentID, rc.IssuedOn)
	return err
}

func (r *receiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	row := r.db.QueryRow(ctx, baseSelectReceipt()+" WHERE id=$1", id)
	return scanReceipt(row)
}

func (r *receiptRepo) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Receipt, error) {
	row := r.db.QueryRow(ctx, baseSelectReceipt()+" WHERE payment_id=$1", paymentID)
	return scanReceipt(row)
}

func (r *receiptRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	return existsByColumn(ctx, r.db, "receipts", field, number)
}

func (r *receiptRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxByPrefix(ctx, r.db, "receipts", "number", prefix)
}

func baseSelectReceipt() string {
	return `SELECT id, number, payment_id, issued_on, created_at FROM receipts`
}

func scanReceipt(row pgx.Row) (*models.Receipt, error) {
	var rc models.Receipt
	if err := row.Scan(&rc.ID, &rc.Number, &rc.PaymentID, &rc.IssuedOn, &rc.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}
