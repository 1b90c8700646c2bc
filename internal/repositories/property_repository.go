package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error

	// SetAvailability writes the derived flag; the generic Update
	// deliberately never touches it.
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	// LockForUpdate reads the property inside tx with a row lock,
	// serializing concurrent lease creation against the same property.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Property, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByNumber(ctx context.Context, field, number string) (bool, error)
	MaxNumber(ctx context.Context, prefix string) (string, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, number, landlord_id, title, address, city, mode, available,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		p.ID,
		p.Number,
		p.LandlordID,
		p.Title,
		p.Address,
		p.City,
		p.Mode,
		p.Available,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE landlord_id=$1 AND deleted_at IS NULL ORDER BY created_at", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

// update covers the caller-editable columns only; `available` is derived
// and goes through SetAvailability.
func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE properties SET
            title=$1, address=$2, city=$3, mode=$4, updated_at=NOW()
    `
	args := []any{p.Title, p.Address, p.City, p.Mode}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$5 AND row_version=$6`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$5`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE properties
		SET available=$1, updated_at=NOW(), row_version=row_version+1
		WHERE id=$2 AND available IS DISTINCT FROM $1
	`, available, id)
	if err != nil {
		return err
	}
	_ = tag // no-op when the flag already matches
	return nil
}

func (r *propertyRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Property, error) {
	row := tx.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1 AND deleted_at IS NULL FOR UPDATE", id)
	return scanProperty(row)
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

func (r *propertyRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	return existsByColumn(ctx, r.db, "properties", field, number)
}

func (r *propertyRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxByPrefix(ctx, r.db, "properties", "number", prefix)
}

func baseSelectProperty() string {
	return `
        SELECT
            id, number, landlord_id, title,
            address, city, mode, available,
            created_at, updated_at, deleted_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Number,
		&p.LandlordID,
		&p.Title,
		&p.Address,
		&p.City,
		&p.Mode,
		&p.Available,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
