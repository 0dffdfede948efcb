/*
Package sqlite provides the SQLite-backed implementation of the payroll
storage interfaces.

PURPOSE:
  Implements payroll.EmployeeStore and payroll.AttendanceStore over a
  single SQLite database. The same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  employees:  rate, hire date, and the two payment markers
  attendance: one row per employee per day with clock times

DATE ENCODING:
  All dates are stored as ISO "YYYY-MM-DD" text. Reads still funnel
  through payroll.ParseDate, so rows written by older tooling with
  datetime or Z-suffixed values load fine; writes are always plain ISO.

MONEY ENCODING:
  daily_wage is stored as a decimal string to avoid float drift.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The database is opened in WAL mode
  so readers don't block behind the writer.

USAGE:
  st, err := sqlite.New("./data/payroll.db")
  if err != nil { ... }
  defer st.Close()
  engine := payroll.New(st, st, logger)

SEE ALSO:
  - payroll/store.go: Interface definitions
  - payroll/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// Store implements the payroll storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ payroll.EmployeeStore   = (*Store)(nil)
	_ payroll.AttendanceStore = (*Store)(nil)
)

// New opens (or creates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		daily_wage TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		last_paid TEXT,
		last_bonus_paid TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		time_in TEXT,
		time_out TEXT,
		exception_hours REAL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (employee_id) REFERENCES employees(id)
	);

	-- One attendance row per employee per day.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_unique_day
		ON attendance(employee_id, date);

	-- Period queries (hot path): employee + date range.
	CREATE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employee_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE (payroll.EmployeeStore interface)
// =============================================================================

// SaveEmployee inserts or updates an employee. Markers are only written when
// set; SetMarker is the path payment confirmation uses.
func (s *Store) SaveEmployee(ctx context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, daily_wage, hire_date, last_paid, last_bonus_paid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			daily_wage = excluded.daily_wage,
			hire_date = excluded.hire_date,
			last_paid = excluded.last_paid,
			last_bonus_paid = excluded.last_bonus_paid
	`

	_, err := s.db.ExecContext(ctx, query,
		string(emp.ID),
		emp.Name,
		emp.DailyWage.String(),
		emp.HireDate.String(),
		markerString(emp.LastPaid),
		markerString(emp.LastBonusPaid),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetEmployee retrieves an employee by ID. Returns (nil, nil) when absent.
func (s *Store) GetEmployee(ctx context.Context, id payroll.EmployeeID) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, daily_wage, hire_date, last_paid, last_bonus_paid
		 FROM employees WHERE id = ?`, string(id))

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, daily_wage, hire_date, last_paid, last_bonus_paid
		 FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

// SetMarker writes one payment marker as an ISO date and reports how many
// rows changed. Zero rows means the employee is unknown.
func (s *Store) SetMarker(ctx context.Context, id payroll.EmployeeID, kind payroll.PayKind, paidOn payroll.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column := "last_paid"
	if kind == payroll.KindBonus {
		column = "last_bonus_paid"
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE employees SET "+column+" = ? WHERE id = ?",
		paidOn.String(), string(id))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*payroll.Employee, error) {
	var (
		emp                 payroll.Employee
		id, wage, hireDate  string
		lastPaid, lastBonus sql.NullString
	)
	if err := row.Scan(&id, &emp.Name, &wage, &hireDate, &lastPaid, &lastBonus); err != nil {
		return nil, err
	}

	emp.ID = payroll.EmployeeID(id)

	var err error
	if emp.DailyWage, err = decimal.NewFromString(wage); err != nil {
		return nil, fmt.Errorf("employee %s: bad daily_wage %q: %w", id, wage, err)
	}
	if emp.HireDate, err = payroll.ParseDate(hireDate); err != nil {
		return nil, fmt.Errorf("employee %s: bad hire_date %q: %w", id, hireDate, err)
	}
	if emp.LastPaid, err = scanMarker(lastPaid); err != nil {
		return nil, fmt.Errorf("employee %s: bad last_paid: %w", id, err)
	}
	if emp.LastBonusPaid, err = scanMarker(lastBonus); err != nil {
		return nil, fmt.Errorf("employee %s: bad last_bonus_paid: %w", id, err)
	}
	return &emp, nil
}

func scanMarker(v sql.NullString) (*payroll.Date, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	d, err := payroll.ParseDate(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func markerString(d *payroll.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// =============================================================================
// ATTENDANCE STORE (payroll.AttendanceStore interface)
// =============================================================================

// SaveRecord inserts an attendance row; a second row for the same employee
// and day replaces the first. An empty ID is assigned a fresh UUID.
func (s *Store) SaveRecord(ctx context.Context, rec payroll.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance (id, employee_id, date, status, time_in, time_out, exception_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			status = excluded.status,
			time_in = excluded.time_in,
			time_out = excluded.time_out,
			exception_hours = excluded.exception_hours
	`

	var exception any
	if rec.ExceptionHours != nil {
		exception = *rec.ExceptionHours
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.EmployeeID),
		rec.Date.String(),
		string(rec.Status),
		rec.TimeIn,
		rec.TimeOut,
		exception,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RecordsInRange returns the employee's attendance with dates in [from, to],
// ordered by date.
func (s *Store) RecordsInRange(ctx context.Context, id payroll.EmployeeID, from, to payroll.Date) ([]payroll.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, date, status, time_in, time_out, exception_hours
		 FROM attendance
		 WHERE employee_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		string(id), from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.AttendanceRecord
	for rows.Next() {
		var (
			rec             payroll.AttendanceRecord
			empID, date     string
			status          string
			timeIn, timeOut sql.NullString
			exception       sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &empID, &date, &status, &timeIn, &timeOut, &exception); err != nil {
			return nil, err
		}
		rec.EmployeeID = payroll.EmployeeID(empID)
		rec.Status = payroll.AttendanceStatus(status)
		rec.TimeIn = timeIn.String
		rec.TimeOut = timeOut.String
		if rec.Date, err = payroll.ParseDate(date); err != nil {
			return nil, fmt.Errorf("attendance %s: bad date %q: %w", rec.ID, date, err)
		}
		if exception.Valid {
			v := exception.Float64
			rec.ExceptionHours = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// HOUSEKEEPING
// =============================================================================

// Reset wipes all data. Dev/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"attendance", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
