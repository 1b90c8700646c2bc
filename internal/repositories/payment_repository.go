package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByNumber(ctx context.Context, number string) (*models.Payment, error)
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error)

	// SumValidatedForLeasesInMonth totals validated payments whose
	// paid_on falls inside the given month, across the lease set.
	SumValidatedForLeasesInMonth(ctx context.Context, leaseIDs []uuid.UUID, year int, month int) (float64, error)

	Update(ctx context.Context, p *models.Payment) error
	UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Payment) error) error

	SoftDelete(ctx context.Context, id uuid.UUID) error

	ExistsByNumber(ctx context.Context, field, number string) (bool, error)
	MaxNumber(ctx context.Context, prefix string) (string, error)
}

type paymentRepo struct {
	*BaseVersionedRepo[*models.Payment]
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	r := &paymentRepo{db: db}
	selectStmt := baseSelectPayment() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanPayment)
	return r
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (
			id, number, lease_id, amount, paid_on, method, status,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
	`, p.ID, p.Number, p.LeaseID, p.Amount, p.PaidOn, p.Method, p.Status)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *paymentRepo) GetByNumber(ctx context.Context, number string) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE number=$1 AND deleted_at IS NULL", number)
	return scanPayment(row)
}

func (r *paymentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectPayment()+" WHERE lease_id=$1 AND deleted_at IS NULL ORDER BY paid_on",
		leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) SumValidatedForLeasesInMonth(ctx context.Context, leaseIDs []uuid.UUID, year int, month int) (float64, error) {
	if len(leaseIDs) == 0 {
		return 0, nil
	}
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE lease_id::text = ANY($1)
		AND status=$2
		AND deleted_at IS NULL
		AND EXTRACT(YEAR FROM paid_on) = $3
		AND EXTRACT(MONTH FROM paid_on) = $4
	`, uuidStrings(leaseIDs), models.PaymentValidated, year, month).Scan(&total)
	return total, err
}

func (r *paymentRepo) Update(ctx context.Context, p *models.Payment) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *paymentRepo) UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *paymentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Payment) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *paymentRepo) update(ctx context.Context, p *models.Payment, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE payments
		SET amount=$1, paid_on=$2, method=$3, status=$4, updated_at=NOW()
	`
	args := []any{p.Amount, p.PaidOn, p.Method, p.Status}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$5 AND row_version=$6`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$5`
		args = append(args, p.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *paymentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE payments SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	return existsByColumn(ctx, r.db, "payments", field, number)
}

func (r *paymentRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxByPrefix(ctx, r.db, "payments", "number", prefix)
}

func baseSelectPayment() string {
	return `
		SELECT id, number, lease_id, amount, paid_on, method, status,
		created_at, updated_at, deleted_at, row_version
		FROM payments`
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(
		&p.ID, &p.Number, &p.LeaseID,
		&p.Amount, &p.PaidOn, &p.Method, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt, &p.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
