package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type RoomRepository interface {
	Create(ctx context.Context, rm *models.Room) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Room, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Room, error)
	ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Room, error)

	Update(ctx context.Context, rm *models.Room) error
	UpdateIfVersion(ctx context.Context, rm *models.Room, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Room) error) error

	SetStatus(ctx context.Context, id uuid.UUID, status models.ResourceStatus) error

	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type roomRepo struct {
	*BaseVersionedRepo[*models.Room]
	db DB
}

func NewRoomRepository(db DB) RoomRepository {
	r := &roomRepo{db: db}
	selectStmt := baseSelectRoom() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanRoom)
	return r
}

func (r *roomRepo) Create(ctx context.Context, rm *models.Room) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (
			id, property_id, unit_id, name, room_number, surface_sqm,
			monthly_rent, status, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
	`, rm.ID, rm.PropertyID, rm.UnitID, rm.Name, rm.RoomNumber, rm.SurfaceSqm, rm.MonthlyRent, rm.Status)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *roomRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, baseSelectRoom()+" WHERE id::text = ANY($1) AND deleted_at IS NULL ORDER BY room_number", uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

func (r *roomRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, baseSelectRoom()+" WHERE property_id=$1 AND deleted_at IS NULL ORDER BY room_number", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

func (r *roomRepo) ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, baseSelectRoom()+" WHERE unit_id=$1 AND deleted_at IS NULL ORDER BY room_number", unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

func (r *roomRepo) Update(ctx context.Context, rm *models.Room) error {
	_, err := r.update(ctx, rm, false, 0)
	return err
}

func (r *roomRepo) UpdateIfVersion(ctx context.Context, rm *models.Room, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, rm, true, expected)
}

func (r *roomRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Room) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *roomRepo) update(ctx context.Context, rm *models.Room, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE rooms
		SET name=$1, room_number=$2, surface_sqm=$3, monthly_rent=$4, unit_id=$5, updated_at=NOW()
	`
	args := []any{rm.Name, rm.RoomNumber, rm.SurfaceSqm, rm.MonthlyRent, rm.UnitID}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, rm.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, rm.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *roomRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.ResourceStatus) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rooms
		SET status=$1, updated_at=NOW(), row_version=row_version+1
		WHERE id=$2 AND status IS DISTINCT FROM $1
	`, status, id)
	return err
}

func (r *roomRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE rooms SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	return err
}

func (r *roomRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE property_id=$1`, propID)
	return err
}

/* ---------- internals ---------- */

func baseSelectRoom() string {
	return `
		SELECT id, property_id, unit_id, name, room_number, surface_sqm,
		monthly_rent, status, created_at, updated_at, deleted_at, row_version
		FROM rooms`
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	if err := row.Scan(
		&rm.ID, &rm.PropertyID, &rm.UnitID,
		&rm.Name, &rm.RoomNumber, &rm.SurfaceSqm,
		&rm.MonthlyRent, &rm.Status,
		&rm.CreatedAt, &rm.UpdatedAt, &rm.DeletedAt, &rm.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

func scanRooms(rows pgx.Rows) ([]*models.Room, error) {
	var out []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}
