package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
)

type LandlordRepository interface {
	Create(ctx context.Context, l *models.Landlord) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error)
	GetByNumber(ctx context.Context, number string) (*models.Landlord, error)
	ListAll(ctx context.Context) ([]*models.Landlord, error)

	Update(ctx context.Context, l *models.Landlord) error
	UpdateIfVersion(ctx context.Context, l *models.Landlord, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Landlord) error) error

	SoftDelete(ctx context.Context, id uuid.UUID) error

	ExistsByNumber(ctx context.Context, field, number string) (bool, error)
	MaxNumber(ctx context.Context, prefix string) (string, error)
}

type landlordRepo struct {
	*BaseVersionedRepo[*models.Landlord]
	db DB
}

func NewLandlordRepository(db DB) LandlordRepository {
	r := &landlordRepo{db: db}
	selectStmt := baseSelectLandlord() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLandlord)
	return r
}

func (r *landlordRepo) Create(ctx context.Context, l *models.Landlord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO landlords (
			id, number, first_name, last_name, email, phone, active,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
	`, l.ID, l.Number, l.FirstName, l.LastName, l.Email, l.Phone, l.Active)
	return err
}

func (r *landlordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *landlordRepo) GetByNumber(ctx context.Context, number string) (*models.Landlord, error) {
	row := r.db.QueryRow(ctx, baseSelectLandlord()+" WHERE number=$1 AND deleted_at IS NULL", number)
	return scanLandlord(row)
}

func (r *landlordRepo) ListAll(ctx context.Context) ([]*models.Landlord, error) {
	rows, err := r.db.Query(ctx, baseSelectLandlord()+" WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Landlord
	for rows.Next() {
		l, err := scanLandlord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *landlordRepo) Update(ctx context.Context, l *models.Landlord) error {
	_, err := r.update(ctx, l, false, 0)
	return err
}

func (r *landlordRepo) UpdateIfVersion(ctx context.Context, l *models.Landlord, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, l, true, expected)
}

func (r *landlordRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Landlord) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *landlordRepo) update(ctx context.Context, l *models.Landlord, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE landlords
		SET first_name=$1, last_name=$2, email=$3, phone=$4, active=$5, updated_at=NOW()
	`
	args := []any{l.FirstName, l.LastName, l.Email, l.Phone, l.Active}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, l.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, l.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *landlordRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE landlords SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *landlordRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	return existsByColumn(ctx, r.db, "landlords", field, number)
}

func (r *landlordRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxByPrefix(ctx, r.db, "landlords", "number", prefix)
}

func baseSelectLandlord() string {
	return `
		SELECT id, number, first_name, last_name, email, phone, active,
		created_at, updated_at, deleted_at, row_version
		FROM landlords`
}

func scanLandlord(row pgx.Row) (*models.Landlord, error) {
	var l models.Landlord
	if err := row.Scan(
		&l.ID, &l.Number, &l.FirstName, &l.LastName,
		&l.Email, &l.Phone, &l.Active,
		&l.CreatedAt, &l.UpdatedAt, &l.DeletedAt, &l.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
