// Package store provides in-memory implementations of the payroll
// persistence interfaces, for tests and local development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory EmployeeStore + AttendanceStore
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	employees  map[payroll.EmployeeID]payroll.Employee
	attendance map[payroll.EmployeeID][]payroll.AttendanceRecord
}

func NewMemory() *Memory {
	return &Memory{
		employees:  make(map[payroll.EmployeeID]payroll.Employee),
		attendance: make(map[payroll.EmployeeID][]payroll.AttendanceRecord),
	}
}

// Compile-time interface checks.
var (
	_ payroll.EmployeeStore   = (*Memory)(nil)
	_ payroll.AttendanceStore = (*Memory)(nil)
)

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (m *Memory) GetEmployee(_ context.Context, id payroll.EmployeeID) (*payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	cp := emp
	return &cp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]payroll.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveEmployee(_ context.Context, emp payroll.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) SetMarker(_ context.Context, id payroll.EmployeeID, kind payroll.PayKind, paidOn payroll.Date) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	emp, ok := m.employees[id]
	if !ok {
		return 0, nil
	}
	d := paidOn
	if kind == payroll.KindBonus {
		emp.LastBonusPaid = &d
	} else {
		emp.LastPaid = &d
	}
	m.employees[id] = emp
	return 1, nil
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

func (m *Memory) RecordsInRange(_ context.Context, id payroll.EmployeeID, from, to payroll.Date) ([]payroll.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []payroll.AttendanceRecord
	for _, rec := range m.attendance[id] {
		if rec.Date.AfterOrEqual(from) && rec.Date.BeforeOrEqual(to) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) SaveRecord(_ context.Context, rec payroll.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance[rec.EmployeeID] = append(m.attendance[rec.EmployeeID], rec)
	return nil
}
