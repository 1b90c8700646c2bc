package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/repositories"
)

// In-memory fakes of the repository interfaces. They replicate the SQL
// semantics the services depend on (occupancy windows, soft-delete
// visibility, conflict detection) without a database.

var okTag = pgconn.CommandTag("UPDATE 1")

/* ---------- fake transaction plumbing ---------- */

type fakeTx struct{}

func (fakeTx) Begin(ctx context.Context) (pgx.Tx, error)                 { return fakeTx{}, nil }
func (fakeTx) BeginFunc(ctx context.Context, f func(pgx.Tx) error) error { return f(fakeTx{}) }
func (fakeTx) Commit(ctx context.Context) error                          { return nil }
func (fakeTx) Rollback(ctx context.Context) error                        { return nil }
func (fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row { return nil }
func (fakeTx) QueryFunc(ctx context.Context, sql string, args []interface{}, scans []interface{}, f func(pgx.QueryFuncRow) error) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (fakeTx) Conn() *pgx.Conn { return nil }

type fakeDB struct{}

func (fakeDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, nil
}
func (fakeDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row { return nil }
func (fakeDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

/* ---------- landlords / tenants ---------- */

type fakeLandlordRepo struct {
	byID map[uuid.UUID]*models.Landlord
}

func newFakeLandlordRepo() *fakeLandlordRepo {
	return &fakeLandlordRepo{byID: map[uuid.UUID]*models.Landlord{}}
}

func (f *fakeLandlordRepo) Create(ctx context.Context, l *models.Landlord) error {
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLandlordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error) {
	l := f.byID[id]
	if l == nil || l.DeletedAt != nil {
		return nil, nil
	}
	return l, nil
}

func (f *fakeLandlordRepo) GetByNumber(ctx context.Context, number string) (*models.Landlord, error) {
	for _, l := range f.byID {
		if l.Number == number && l.DeletedAt == nil {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLandlordRepo) ListAll(ctx context.Context) ([]*models.Landlord, error) {
	var out []*models.Landlord
	for _, l := range f.byID {
		if l.DeletedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLandlordRepo) Update(ctx context.Context, l *models.Landlord) error { return nil }
func (f *fakeLandlordRepo) UpdateIfVersion(ctx context.Context, l *models.Landlord, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakeLandlordRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Landlord) error) error {
	l := f.byID[id]
	if l == nil {
		return pgx.ErrNoRows
	}
	return mutate(l)
}
func (f *fakeLandlordRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	f.byID[id].DeletedAt = &now
	return nil
}
func (f *fakeLandlordRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	for _, l := range f.byID {
		if l.Number == number {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeLandlordRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxNumber(prefix, func() []string {
		var out []string
		for _, l := range f.byID {
			out = append(out, l.Number)
		}
		return out
	}), nil
}

type fakeTenantRepo struct {
	byID map[uuid.UUID]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{byID: map[uuid.UUID]*models.Tenant{}}
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t := f.byID[id]
	if t == nil || t.DeletedAt != nil {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTenantRepo) GetByNumber(ctx context.Context, number string) (*models.Tenant, error) {
	for _, t := range f.byID {
		if t.Number == number && t.DeletedAt == nil {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) ListAll(ctx context.Context) ([]*models.Tenant, error) {
	var out []*models.Tenant
	for _, t := range f.byID {
		if t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTenantRepo) Update(ctx context.Context, t *models.Tenant) error { return nil }
func (f *fakeTenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakeTenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	t := f.byID[id]
	if t == nil {
		return pgx.ErrNoRows
	}
	return mutate(t)
}
func (f *fakeTenantRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	f.byID[id].DeletedAt = &now
	return nil
}
func (f *fakeTenantRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	for _, t := range f.byID {
		if t.Number == number {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeTenantRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxNumber(prefix, func() []string {
		var out []string
		for _, t := range f.byID {
			out = append(out, t.Number)
		}
		return out
	}), nil
}

/* ---------- properties ---------- */

type fakePropertyRepo struct {
	byID map[uuid.UUID]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{byID: map[uuid.UUID]*models.Property{}}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *models.Property) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p := f.byID[id]
	if p == nil || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}

func (f *fakePropertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.byID {
		if p.LandlordID == landlordID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.byID {
		if p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *models.Property) error { return nil }
func (f *fakePropertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	p := f.byID[id]
	if p == nil {
		return pgx.ErrNoRows
	}
	return mutate(p)
}

func (f *fakePropertyRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	if p := f.byID[id]; p != nil {
		p.Available = available
	}
	return nil
}

func (f *fakePropertyRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Property, error) {
	return f.GetByID(ctx, id)
}

func (f *fakePropertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	f.byID[id].DeletedAt = &now
	return nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakePropertyRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	for _, p := range f.byID {
		if p.Number == number {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakePropertyRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxNumber(prefix, func() []string {
		var out []string
		for _, p := range f.byID {
			out = append(out, p.Number)
		}
		return out
	}), nil
}

/* ---------- units / rooms ---------- */

type fakeUnitRepo struct {
	byID map[uuid.UUID]*models.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{byID: map[uuid.UUID]*models.Unit{}}
}

func (f *fakeUnitRepo) Create(ctx context.Context, u *models.Unit) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUnitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		f.byID[list[i].ID] = &list[i]
	}
	return nil
}

func (f *fakeUnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	u := f.byID[id]
	if u == nil || u.DeletedAt != nil {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUnitRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range f.byID {
		if u.PropertyID == propID && u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) Update(ctx context.Context, u *models.Unit) error { return nil }
func (f *fakeUnitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakeUnitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	u := f.byID[id]
	if u == nil {
		return pgx.ErrNoRows
	}
	return mutate(u)
}

func (f *fakeUnitRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.ResourceStatus) error {
	if u := f.byID[id]; u != nil {
		u.Status = status
	}
	return nil
}

func (f *fakeUnitRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	f.byID[id].DeletedAt = &now
	return nil
}

func (f *fakeUnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeUnitRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	for id, u := range f.byID {
		if u.PropertyID == propID {
			delete(f.byID, id)
		}
	}
	return nil
}

type fakeRoomRepo struct {
	byID map[uuid.UUID]*models.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{byID: map[uuid.UUID]*models.Room{}}
}

func (f *fakeRoomRepo) Create(ctx context.Context, rm *models.Room) error {
	f.byID[rm.ID] = rm
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	rm := f.byID[id]
	if rm == nil || rm.DeletedAt != nil {
		return nil, nil
	}
	return rm, nil
}

func (f *fakeRoomRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Room, error) {
	var out []*models.Room
	for _, id := range ids {
		if rm := f.byID[id]; rm != nil && rm.DeletedAt == nil {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Room, error) {
	var out []*models.Room
	for _, rm := range f.byID {
		if rm.PropertyID == propID && rm.DeletedAt == nil {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Room, error) {
	var out []*models.Room
	for _, rm := range f.byID {
		if rm.UnitID != nil && *rm.UnitID == unitID && rm.DeletedAt == nil {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) Update(ctx context.Context, rm *models.Room) error { return nil }
func (f *fakeRoomRepo) UpdateIfVersion(ctx context.Context, rm *models.Room, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakeRoomRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Room) error) error {
	rm := f.byID[id]
	if rm == nil {
		return pgx.ErrNoRows
	}
	return mutate(rm)
}

func (f *fakeRoomRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.ResourceStatus) error {
	if rm := f.byID[id]; rm != nil {
		rm.Status = status
	}
	return nil
}

func (f *fakeRoomRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	f.byID[id].DeletedAt = &now
	return nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRoomRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	for id, rm := range f.byID {
		if rm.PropertyID == propID {
			delete(f.byID, id)
		}
	}
	return nil
}

/* ---------- leases ---------- */

type fakeLeaseRepo struct {
	byID  map[uuid.UUID]*models.Lease
	props *fakePropertyRepo // for landlord lookups
}

func newFakeLeaseRepo(props *fakePropertyRepo) *fakeLeaseRepo {
	return &fakeLeaseRepo{byID: map[uuid.UUID]*models.Lease{}, props: props}
}

func (f *fakeLeaseRepo) CreateIn(ctx context.Context, db repositories.DB, l *models.Lease) error {
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLeaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	l := f.byID[id]
	if l == nil || l.DeletedAt != nil {
		return nil, nil
	}
	return l, nil
}

func (f *fakeLeaseRepo) GetByNumber(ctx context.Context, number string) (*models.Lease, error) {
	for _, l := range f.byID {
		if l.Number == number {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaseRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		if l.PropertyID == propID && l.DeletedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		if l.TenantID == tenantID && l.DeletedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}

// occupiesOn mirrors the SQL occupancy window, soft-deleted included.
func occupiesOn(l *models.Lease, on time.Time) bool {
	return l.Occupies() && l.CoversDate(on)
}

func (f *fakeLeaseRepo) FindConflicting(ctx context.Context, db repositories.DB, proposed *models.Lease) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		if l.PropertyID != proposed.PropertyID || l.ID == proposed.ID {
			continue
		}
		if !l.Occupies() || !l.Overlaps(proposed.StartDate, proposed.EndDate) {
			continue
		}
		switch proposed.TargetKind() {
		case models.TargetWholeProperty:
			out = append(out, l)
		case models.TargetUnit:
			if l.TargetKind() == models.TargetWholeProperty ||
				(l.UnitID != nil && *l.UnitID == *proposed.UnitID) {
				out = append(out, l)
			}
		case models.TargetRooms:
			if l.TargetKind() == models.TargetWholeProperty || sharesRoom(l.RoomIDs, proposed.RoomIDs) {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func sharesRoom(a, b []uuid.UUID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (f *fakeLeaseRepo) ListOccupyingWholeProperty(ctx context.Context, propID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		if l.PropertyID == propID && l.TargetKind() == models.TargetWholeProperty && occupiesOn(l, on) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListOccupyingByUnitID(ctx context.Context, unitID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		if l.UnitID != nil && *l.UnitID == unitID && occupiesOn(l, on) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListOccupyingByRoomID(ctx context.Context, roomID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		if occupiesOn(l, on) {
			for _, id := range l.RoomIDs {
				if id == roomID {
					out = append(out, l)
					break
				}
			}
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListOccupyingByLandlordID(ctx context.Context, landlordID uuid.UUID, on time.Time) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.byID {
		prop := f.props.byID[l.PropertyID]
		if prop != nil && prop.LandlordID == landlordID && occupiesOn(l, on) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) CountByPropertyID(ctx context.Context, propID uuid.UUID) (int, error) {
	n := 0
	for _, l := range f.byID {
		if l.PropertyID == propID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLeaseRepo) Update(ctx context.Context, l *models.Lease) error { return nil }
func (f *fakeLeaseRepo) UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakeLeaseRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error {
	l := f.byID[id]
	if l == nil || l.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	return mutate(l)
}

func (f *fakeLeaseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	l := f.byID[id]
	if l == nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	l.DeletedAt = &now
	return nil
}

func (f *fakeLeaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeLeaseRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	for _, l := range f.byID {
		if l.Number == number {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeLeaseRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxNumber(prefix, func() []string {
		var out []string
		for _, l := range f.byID {
			out = append(out, l.Number)
		}
		return out
	}), nil
}

/* ---------- payments / receipts / sequences ---------- */

type fakePaymentRepo struct {
	byID map[uuid.UUID]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byID: map[uuid.UUID]*models.Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p := f.byID[id]
	if p == nil || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}

func (f *fakePaymentRepo) GetByNumber(ctx context.Context, number string) (*models.Payment, error) {
	for _, p := range f.byID {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.byID {
		if p.LeaseID == leaseID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) SumValidatedForLeasesInMonth(ctx context.Context, leaseIDs []uuid.UUID, year int, month int) (float64, error) {
	inSet := map[uuid.UUID]bool{}
	for _, id := range leaseIDs {
		inSet[id] = true
	}
	var total float64
	for _, p := range f.byID {
		if p.DeletedAt != nil || p.Status != models.PaymentValidated || !inSet[p.LeaseID] {
			continue
		}
		if p.PaidOn.Year() == year && int(p.PaidOn.Month()) == month {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, p *models.Payment) error { return nil }
func (f *fakePaymentRepo) UpdateIfVersion(ctx context.Context, p *models.Payment, expected int64) (pgconn.CommandTag, error) {
	return okTag, nil
}
func (f *fakePaymentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Payment) error) error {
	p := f.byID[id]
	if p == nil {
		return pgx.ErrNoRows
	}
	return mutate(p)
}
func (f *fakePaymentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	f.byID[id].DeletedAt = &now
	return nil
}
func (f *fakePaymentRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	for _, p := range f.byID {
		if p.Number == number {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakePaymentRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxNumber(prefix, func() []string {
		var out []string
		for _, p := range f.byID {
			out = append(out, p.Number)
		}
		return out
	}), nil
}

type fakeReceiptRepo struct {
	byID map[uuid.UUID]*models.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{byID: map[uuid.UUID]*models.Receipt{}}
}

func (f *fakeReceiptRepo) Create(ctx context.Context, rc *models.Receipt) error {
	f.byID[rc.ID] = rc
	return nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	return f.byID[id], nil
}

func (f *fakeReceiptRepo) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Receipt, error) {
	for _, rc := range f.byID {
		if rc.PaymentID == paymentID {
			return rc, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) ExistsByNumber(ctx context.Context, field, number string) (bool, error) {
	for _, rc := range f.byID {
		if rc.Number == number {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeReceiptRepo) MaxNumber(ctx context.Context, prefix string) (string, error) {
	return maxNumber(prefix, func() []string {
		var out []string
		for _, rc := range f.byID {
			out = append(out, rc.Number)
		}
		return out
	}), nil
}

// fakeSequenceRepo mirrors the atomic upsert: one counter per
// (entity, period), safe under concurrent use.
type fakeSequenceRepo struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counts: map[string]int64{}}
}

func (f *fakeSequenceRepo) NextValue(ctx context.Context, entity, period string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := entity + "|" + period
	f.counts[key]++
	return f.counts[key], nil
}

func maxNumber(prefix string, all func() []string) string {
	max := ""
	for _, n := range all() {
		if strings.HasPrefix(n, prefix) && n > max {
			max = n
		}
	}
	return max
}
