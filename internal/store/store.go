// Package store implements the flat tabular persistence layer. Each
// collection is a CSV file with a header row; every operation loads
// the full collection and writes the full collection back, matching
// the storage discipline of the original system. The store offers no
// row-level locking; callers serialize read-modify-write sequences
// through WithLock.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrPersistence marks any underlying read/write failure. Callers test
// for it with errors.Is; the wrapped error carries the detail.
var ErrPersistence = errors.New("storage failure")

// Collection file names and headers. The layouts mirror the original
// data files so existing CSVs keep working.
var (
	usersHeader    = []string{"user_id", "username", "password_hash", "salt", "email", "status"}
	adminsHeader   = []string{"admin_id", "username", "password_hash", "salt", "type", "theatre_id"}
	showingsHeader = []string{"id", "title", "genre", "duration", "theatre_id", "showtime", "available_seats", "price"}
	bookingsHeader = []string{"booking_id", "user_id", "showing_id", "seats_booked", "seat_numbers", "total_price", "booking_date"}
)

// Table is read-all/write-all access to one named collection.
type Table struct {
	name   string
	path   string
	header []string
}

// Name returns the collection name (e.g. "users").
func (t *Table) Name() string { return t.name }

// Header returns the column names in file order.
func (t *Table) Header() []string { return t.header }

// ReadAll parses the collection file and returns its data rows, header
// excluded. A missing file reads as an empty collection. Every row
// must have exactly as many fields as the header.
func (t *Table) ReadAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %v: %w", t.name, err, ErrPersistence)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = len(t.header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", t.name, err, ErrPersistence)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// WriteAll rewrites the collection file with the header followed by
// the given rows.
func (t *Table) WriteAll(ctx context.Context, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("write %s: %v: %w", t.name, err, ErrPersistence)
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %v: %w", t.name, err, ErrPersistence)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %v: %w", t.name, err, ErrPersistence)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %v: %w", t.name, err, ErrPersistence)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %v: %w", t.name, err, ErrPersistence)
	}
	return nil
}

// ensure creates the file with a bare header when it does not exist.
func (t *Table) ensure(ctx context.Context) error {
	if _, err := os.Stat(t.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %v: %w", t.name, err, ErrPersistence)
	}
	return t.WriteAll(ctx, nil)
}

// Store owns the data directory and the four collections. The single
// mutex is the critical section around every read-modify-write
// sequence; without it two concurrent bookings could both pass the
// availability check against stale data and both commit.
type Store struct {
	mu sync.Mutex

	Users    *Table
	Admins   *Table
	Showings *Table
	Bookings *Table
}

// Open prepares the data directory and table handles and creates any
// missing collection files with their headers.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("data dir %s: %v: %w", dataDir, err, ErrPersistence)
	}
	s := &Store{
		Users:    &Table{name: "users", path: filepath.Join(dataDir, "users.csv"), header: usersHeader},
		Admins:   &Table{name: "admins", path: filepath.Join(dataDir, "admins.csv"), header: adminsHeader},
		Showings: &Table{name: "movies_showings", path: filepath.Join(dataDir, "movies_showings.csv"), header: showingsHeader},
		Bookings: &Table{name: "bookings", path: filepath.Join(dataDir, "bookings.csv"), header: bookingsHeader},
	}
	for _, t := range []*Table{s.Users, s.Admins, s.Showings, s.Bookings} {
		if err := t.ensure(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithLock runs fn while holding the store's mutex. Scoped acquisition
// keeps call sites unchanged if per-collection locking ever replaces
// the global lock.
func (s *Store) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
