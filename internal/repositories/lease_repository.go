package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// LeaseRepository persists leases and answers the occupancy questions the
// availability engine is built on.
//
// Methods taking an explicit DB run on whatever the caller passes (pool
// or open transaction), so lease creation can lock, re-check and insert
// atomically. Occupancy reads deliberately include soft-deleted leases:
// an administrative delete must not resurrect availability.
type LeaseRepository interface {
	CreateIn(ctx context.Context, db DB, l *models.Lease) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	GetByNumber(ctx context.Context, number string) (*models.Lease, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Lease, error)
	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error)

	// FindConflicting returns every occupying lease whose date range
	// overlaps the proposed lease and whose target collides with it
	// (whole-property collides with everything on the property).
	FindConflicting(ctx context.Context, db DB, proposed *models.Lease) ([]*models.Lease, error)

	ListOccupyingWholeProperty(ctx context.Context, propID uuid.UUID, on time.Time) ([]*models.Lease, error)
	ListOccupyingByUnitID(ctx context.Context, unitID uuid.UUID, on time.Time) ([]*models.Lease, error)
	ListOccupyingByRoomID(ctx context.Context, roomID uuid.UUID, on time.Time) ([]*models.Lease, error)
	ListOccupyingByLandlordID(ctx context.Context, landlordID uuid.UUID, on time.Time) ([]*models.Lease, error)

	// CountByPropertyID counts every lease ever attached to the
	// property, soft-deleted ones included; backs the delete guard.
	CountByPropertyID(ctx context.Context, propID uuid.UUID) (int, error)

	Update(ctx context.Context, l *models.Lease) error
	UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error

	SoftDelete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByNumber(ctx context.Context, field, number string) (bool, error)
	MaxNumber(ctx context.Context, prefix string) (string, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type leaseRepo struct {
	*BaseVersionedRepo[*models.Lease]
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	r := &leaseRepo{db: db}
	selectStmt := baseSelectLease() + " WHERE l.id=$1 AND l.deleted_at IS NULL GROUP BY l.id"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLease)
	return r
}

/* ---------- create ---------- */

func (r *leaseRepo) CreateIn(ctx context.Context, db DB, l *models.Lease) error {
	_, err := db.Exec(ctx, `
		INSERT INTO leases (
			id, number, property_id, unit_id, tenant_id,
			start_date, end_date, monthly_rent, deductible_charges,
			active, terminated, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW(), 1)
	`,
		l.ID, l.Number, l.PropertyID, l.UnitID, l.TenantID,
		l.StartDate, l.EndDate, l.MonthlyRent, l.DeductibleCharges,
		l.Active, l.Terminated,
	)
	if err != nil {
		return err
	}
	for _, roomID := range l.RoomIDs {
		if _, err := db.Exec(ctx,
			`INSERT INTO lease_rooms (lease_id, room_id) VALUES ($1,$2)`,
			l.ID, roomID,
		); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- reads ---------- */

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *leaseRepo) GetByNumber(ctx context.Context, number string) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE l.number=$1 AND l.deleted_at IS NULL GROUP BY l.id", number)
	return scanLease(row)
}

func (r *leaseRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx,
		baseSelectLease()+" WHERE l.property_id=$1 AND l.deleted_at IS NULL GROUP BY l.id ORDER BY l.start_date",
		propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx,
		baseSelectLease()+" WHERE l.tenant_id=$1 AND l.deleted_at IS NULL GROUP BY l.id ORDER BY l.start_date",
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

/* ---------- occupancy ---------- */

// occupyingWindow is the shared predicate: lease counts against its
// target and its date range covers the reference day. Open-ended leases
// carry a NULL end date, coalesced to a far-future sentinel.
const occupyingWindow = `
	l.active AND NOT l.terminated
	AND l.start_date <= $2
	AND COALESCE(l.end_date, DATE '9999-12-31') >= $2`

func (r *leaseRepo) ListOccupyingWholeProperty(ctx context.Context, propID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+`
		WHERE l.property_id=$1 AND l.unit_id IS NULL
		AND NOT EXISTS (SELECT 1 FROM lease_rooms x WHERE x.lease_id=l.id)
		AND `+occupyingWindow+`
		GROUP BY l.id`, propID, on)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) ListOccupyingByUnitID(ctx context.Context, unitID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+`
		WHERE l.unit_id=$1
		AND `+occupyingWindow+`
		GROUP BY l.id`, unitID, on)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) ListOccupyingByRoomID(ctx context.Context, roomID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+`
		WHERE EXISTS (SELECT 1 FROM lease_rooms x WHERE x.lease_id=l.id AND x.room_id=$1)
		AND `+occupyingWindow+`
		GROUP BY l.id`, roomID, on)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) ListOccupyingByLandlordID(ctx context.Context, landlordID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+`
		JOIN properties p ON p.id = l.property_id
		WHERE p.landlord_id=$1
		AND `+occupyingWindow+`
		GROUP BY l.id`, landlordID, on)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

// FindConflicting applies the half-open overlap test in SQL:
// existing.start < proposed.end AND proposed.start < existing.end.
// A nil db runs against the pool; lease creation passes its open
// transaction so the re-check happens under the property row lock.
func (r *leaseRepo) FindConflicting(ctx context.Context, db DB, proposed *models.Lease) ([]*models.Lease, error) {
	if db == nil {
		db = r.db
	}
	base := baseSelectLease() + `
		WHERE l.property_id=$1
		AND l.active AND NOT l.terminated
		AND l.id <> $2
		AND l.start_date < COALESCE($4, DATE '9999-12-31')
		AND $3 < COALESCE(l.end_date, DATE '9999-12-31')`

	args := []any{proposed.PropertyID, proposed.ID, proposed.StartDate, proposed.EndDate}

	switch proposed.TargetKind() {
	case models.TargetWholeProperty:
		// collides with anything on the property
	case models.TargetUnit:
		base += `
		AND (l.unit_id=$5
		     OR (l.unit_id IS NULL AND NOT EXISTS (SELECT 1 FROM lease_rooms x WHERE x.lease_id=l.id)))`
		args = append(args, *proposed.UnitID)
	case models.TargetRooms:
		base += `
		AND (EXISTS (SELECT 1 FROM lease_rooms x WHERE x.lease_id=l.id AND x.room_id::text = ANY($5))
		     OR (l.unit_id IS NULL AND NOT EXISTS (SELECT 1 FROM lease_rooms x WHERE x.lease_id=l.id)))`
		args = append(args, uuidStrings(proposed.RoomIDs))
	default:
		return nil, nil
	}

	rows, err := db.Query(ctx, base+" GROUP BY l.id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) CountByPropertyID(ctx context.Context, propID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM leases WHERE property_id=$1`, propID,
	).Scan(&n)
	return n, err
}

/* ---------- update / delete ---------- */

func (r *leaseRepo) Update(ctx context.Context, l *models.Lease) error {
	_, err := r.update(ctx, l, false, 0)
	return err
}

func (r *leaseRepo) UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, l, true, expected)
}

func (r *leaseRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *leaseRepo) update(ctx context.Context, l *models.Lease, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE leases
		SET start_date=$1, end_date=$2, monthly_rent=$3, deductible_charges=$4,
		    active=$5, terminated=$6, deleted_at=$7, updated_at=NOW()
	`
	args := []any{
		l.StartDate, l.EndDate, l.MonthlyRent, l.DeductibleCharges,
		l.Active, l.Terminated, l.DeletedAt,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$8 AND row_version=$9`
		args = append(args, l.ID, expected)
	} else {
		sql += ` WHERE id=$8`
		args = append(args, l.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *leaseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE leases SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM lease_rooms WHERE lease_id=$1`, id); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM leases WHERE id=$1`, id)
	return err
}

func (r *leaseRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	return existsByColumn(ctx, r.db, "leases", field, number)
}

func (r *leaseRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxByPrefix(ctx, r.db, "leases", "number", prefix)
}

/* ---------- internals ---------- */

// baseSelectLease aggregates the room-set as text[] so scanning stays on
// pgx-native destinations. Callers append WHERE ... GROUP BY l.id.
func baseSelectLease() string {
	return `
		SELECT l.id, l.number, l.property_id, l.unit_id,
		COALESCE(array_agg(lr.room_id::text) FILTER (WHERE lr.room_id IS NOT NULL), '{}'),
		l.tenant_id, l.start_date, l.end_date,
		l.monthly_rent, l.deductible_charges,
		l.active, l.terminated,
		l.created_at, l.updated_at, l.deleted_at, l.row_version
		FROM leases l
		LEFT JOIN lease_rooms lr ON lr.lease_id = l.id`
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var (
		l       models.Lease
		roomIDs []string
	)
	if err := row.Scan(
		&l.ID, &l.Number, &l.PropertyID, &l.UnitID,
		&roomIDs,
		&l.TenantID, &l.StartDate, &l.EndDate,
		&l.MonthlyRent, &l.DeductibleCharges,
		&l.Active, &l.Terminated,
		&l.CreatedAt, &l.UpdatedAt, &l.DeletedAt, &l.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	for _, s := range roomIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		l.RoomIDs = append(l.RoomIDs, id)
	}
	return &l, nil
}

func scanLeases(rows pgx.Rows) ([]*models.Lease, error) {
	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
