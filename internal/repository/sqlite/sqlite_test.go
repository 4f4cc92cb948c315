package sqlite

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sathira/codewizard/internal/apperror"
	sqlite3 "modernc.org/sqlite/lib"
)

// newTestDB opens a fresh in-memory database per test. t.Cleanup closes it
// even if the test fails or runs subtests.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrations again on an initialized database must be a no-op.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}

// driverErr stands in for the driver's error type, which has no exported
// constructor.
type driverErr struct {
	code int
}

func (e *driverErr) Error() string { return fmt.Sprintf("sqlite result code %d", e.code) }
func (e *driverErr) Code() int     { return e.code }

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"busy", &driverErr{code: sqlite3.SQLITE_BUSY}, true},
		{"locked", &driverErr{code: sqlite3.SQLITE_LOCKED}, true},
		{"busy extended code", &driverErr{code: sqlite3.SQLITE_BUSY | (5 << 8)}, true},
		{"wrapped busy", fmt.Errorf("query: %w", &driverErr{code: sqlite3.SQLITE_BUSY}), true},
		{"constraint is not an outage", &driverErr{code: sqlite3.SQLITE_CONSTRAINT_UNIQUE}, false},
		{"plain error passes through", errors.New("broken pipe"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapErr(tt.err)
			if errors.Is(got, apperror.ErrUnavailable) != tt.unavailable {
				t.Errorf("wrapErr(%v): ErrUnavailable = %v, want %v",
					tt.err, !tt.unavailable, tt.unavailable)
			}
			if !tt.unavailable && got != tt.err {
				t.Errorf("wrapErr(%v) rewrote a non-outage error to %v", tt.err, got)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique", &driverErr{code: sqlite3.SQLITE_CONSTRAINT_UNIQUE}, true},
		{"primary key", &driverErr{code: sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY}, true},
		{"wrapped unique", fmt.Errorf("insert: %w", &driverErr{code: sqlite3.SQLITE_CONSTRAINT_UNIQUE}), true},
		{"busy", &driverErr{code: sqlite3.SQLITE_BUSY}, false},
		{"plain error", errors.New("broken pipe"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
