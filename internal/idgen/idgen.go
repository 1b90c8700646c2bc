// Package idgen mints the human-readable business identifiers used on
// landlords, tenants, properties, leases, payments and receipts.
//
// The package has no store dependency: callers supply the existence
// probe (or max-code lookup) for whichever table backs the entity, so
// the same allocator serves every record type. Issued formats are a
// persisted contract and must never change for codes already handed out.
package idgen

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gestimmob/rental-service/internal/utils"
)

// EntityType names a business record kind with its own identifier space.
type EntityType string

const (
	EntityLandlord EntityType = "landlord"
	EntityTenant   EntityType = "tenant"
	EntityProperty EntityType = "property"
	EntityLease    EntityType = "lease"
	EntityPayment  EntityType = "payment"
	EntityReceipt  EntityType = "receipt"
)

// PeriodKind is the granularity of the period segment embedded in a
// sequential code.
type PeriodKind int

const (
	PeriodNone PeriodKind = iota
	PeriodYear
	PeriodYearMonth
	PeriodFullDate
)

// Format describes one entity type's identifier layout.
type Format struct {
	Prefix        string
	Period        PeriodKind
	SequenceWidth int
	RandomLength  int
}

// Formats is the identifier contract table. Sequence numbers reset per
// period (yearly for people/properties/leases, monthly for payments,
// daily for receipts).
var Formats = map[EntityType]Format{
	EntityLandlord: {Prefix: "BLR", Period: PeriodYear, SequenceWidth: 4, RandomLength: 8},
	EntityTenant:   {Prefix: "LOC", Period: PeriodYear, SequenceWidth: 4, RandomLength: 8},
	EntityProperty: {Prefix: "PRP", Period: PeriodYear, SequenceWidth: 4, RandomLength: 8},
	EntityLease:    {Prefix: "CTR", Period: PeriodYear, SequenceWidth: 4, RandomLength: 10},
	EntityPayment:  {Prefix: "PAY", Period: PeriodYearMonth, SequenceWidth: 4, RandomLength: 8},
	EntityReceipt:  {Prefix: "REC", Period: PeriodFullDate, SequenceWidth: 4, RandomLength: 8},
}

// ExistsFunc reports whether a record of the entity type already carries
// the candidate code in the given field.
type ExistsFunc func(ctx context.Context, field, candidate string) (bool, error)

// MaxCodeFunc returns the highest existing code starting with prefix
// (lexicographic order), or "" when none exists.
type MaxCodeFunc func(ctx context.Context, prefix string) (string, error)

// ExhaustedError is the fatal outcome of a unique-code allocation that
// collided on every attempt.
type ExhaustedError struct {
	Entity   EntityType
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("could not allocate a unique %s code after %d attempts", e.Entity, e.Attempts)
}

func formatFor(entity EntityType) (Format, error) {
	f, ok := Formats[entity]
	if !ok {
		return Format{}, fmt.Errorf("unknown entity type %q", entity)
	}
	return f, nil
}

// GenerateCode builds PREFIX-<random alphanumeric> with no persistence
// check; pure formatting. customLength overrides the configured random
// length when > 0.
func GenerateCode(entity EntityType, customLength int) (string, error) {
	f, err := formatFor(entity)
	if err != nil {
		return "", err
	}
	length := f.RandomLength
	if customLength > 0 {
		length = customLength
	}
	return f.Prefix + "-" + utils.RandomCode(length), nil
}

// GenerateUniqueCode repeatedly generates random codes and probes the
// caller-supplied existence check until an attempt misses. Exhausting
// maxAttempts (default 100) returns an *ExhaustedError; there is no
// silent fallback.
func GenerateUniqueCode(ctx context.Context, entity EntityType, exists ExistsFunc, field string, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = 100
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := GenerateCode(entity, 0)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, field, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", &ExhaustedError{Entity: entity, Attempts: maxAttempts}
}

// PeriodKey renders the period segment of a sequential code for the
// given time: "" (none), "2026", "202603" or "20260315".
func PeriodKey(entity EntityType, now time.Time) (string, error) {
	f, err := formatFor(entity)
	if err != nil {
		return "", err
	}
	switch f.Period {
	case PeriodYear:
		return now.Format("2006"), nil
	case PeriodYearMonth:
		return now.Format("200601"), nil
	case PeriodFullDate:
		return now.Format("20060102"), nil
	default:
		return "", nil
	}
}

// SequentialCode formats PREFIX-<period>-<sequence> (or PREFIX-<sequence>
// for period-less types) with the configured zero padding.
func SequentialCode(entity EntityType, now time.Time, seq int64) (string, error) {
	f, err := formatFor(entity)
	if err != nil {
		return "", err
	}
	period, err := PeriodKey(entity, now)
	if err != nil {
		return "", err
	}
	padded := fmt.Sprintf("%0*d", f.SequenceWidth, seq)
	if period == "" {
		return f.Prefix + "-" + padded, nil
	}
	return f.Prefix + "-" + period + "-" + padded, nil
}

// SequentialPrefix is the shared leading part of every sequential code
// of the entity type in the current period, e.g. "PAY-202603-".
func SequentialPrefix(entity EntityType, now time.Time) (string, error) {
	f, err := formatFor(entity)
	if err != nil {
		return "", err
	}
	period, err := PeriodKey(entity, now)
	if err != nil {
		return "", err
	}
	if period == "" {
		return f.Prefix + "-", nil
	}
	return f.Prefix + "-" + period + "-", nil
}

// NextSequentialCode finds the highest existing code for the current
// period via the caller-supplied lookup, parses its trailing sequence
// and returns the incremented, zero-padded successor (sequence 1 when
// nothing parses).
//
// The read-then-format window makes this strategy unsafe under
// interactive concurrency; request paths must allocate through an
// atomic store-side sequence instead and reserve this for batch and
// backfill use.
func NextSequentialCode(ctx context.Context, entity EntityType, maxCode MaxCodeFunc, now time.Time) (string, error) {
	prefix, err := SequentialPrefix(entity, now)
	if err != nil {
		return "", err
	}
	highest, err := maxCode(ctx, prefix)
	if err != nil {
		return "", err
	}
	next := int64(1)
	if highest != "" {
		parts := strings.Split(highest, "-")
		if n, convErr := strconv.ParseInt(parts[len(parts)-1], 10, 64); convErr == nil {
			next = n + 1
		}
	}
	return SequentialCode(entity, now, next)
}

// ValidateCodeFormat structurally checks a code against the entity
// type's two layouts: the random form PREFIX-[A-Z0-9]{length} and the
// period-qualified sequential form.
func ValidateCodeFormat(code string, entity EntityType) bool {
	f, ok := Formats[entity]
	if !ok {
		return false
	}
	random := fmt.Sprintf(`^%s-[A-Z0-9]{%d}$`, f.Prefix, f.RandomLength)
	var sequential string
	switch f.Period {
	case PeriodYear:
		sequential = fmt.Sprintf(`^%s-\d{4}-\d{%d}$`, f.Prefix, f.SequenceWidth)
	case PeriodYearMonth:
		sequential = fmt.Sprintf(`^%s-\d{6}-\d{%d}$`, f.Prefix, f.SequenceWidth)
	case PeriodFullDate:
		sequential = fmt.Sprintf(`^%s-\d{8}-\d{%d}$`, f.Prefix, f.SequenceWidth)
	default:
		sequential = fmt.Sprintf(`^%s-\d{%d,}$`, f.Prefix, f.SequenceWidth)
	}
	if matched, _ := regexp.MatchString(random, code); matched {
		return true
	}
	matched, _ := regexp.MatchString(sequential, code)
	return matched
}

// IDInfo is the structured breakdown of a period-qualified identifier.
type IDInfo struct {
	Year     int        `json:"year"`
	Month    int        `json:"month,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Sequence int        `json:"sequence"`
}

// GetIDInfo parses a previously issued sequential identifier back into
// its period and sequence components. It is a best-effort audit helper:
// an unparseable code yields (nil, false), never an error.
func GetIDInfo(entity EntityType, code string) (*IDInfo, bool) {
	f, ok := Formats[entity]
	if !ok {
		return nil, false
	}
	parts := strings.Split(code, "-")
	if len(parts) != 3 || parts[0] != f.Prefix {
		return nil, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, false
	}
	info := &IDInfo{Sequence: seq}
	switch f.Period {
	case PeriodYear:
		if len(parts[1]) != 4 {
			return nil, false
		}
		year, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, false
		}
		info.Year = year
	case PeriodYearMonth:
		t, err := time.Parse("200601", parts[1])
		if err != nil {
			return nil, false
		}
		info.Year = t.Year()
		info.Month = int(t.Month())
	case PeriodFullDate:
		t, err := time.Parse("20060102", parts[1])
		if err != nil {
			return nil, false
		}
		info.Year = t.Year()
		info.Month = int(t.Month())
		info.Date = &t
	default:
		return nil, false
	}
	return info, true
}
