/*
scenarios.go - Demo data scenarios

PURPOSE:
  Seeds the database with small, self-describing payroll situations so the
  engine can be explored without hand-entering attendance. Dates are laid
  out relative to the engine clock, so every scenario shows a live open
  period when loaded.

SCENARIOS:
  fresh-hire:    Two weeks of attendance since hiring, never paid
  steady-month:  Paid a month ago, mixed statuses and clock formats since
  bonus-due:     Over a year since the last bonus payment
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "fresh-hire",
		Name:        "Fresh Hire",
		Description: "Employee hired two weeks ago, full attendance, never paid",
	},
	{
		ID:          "steady-month",
		Name:        "Steady Month",
		Description: "Paid a month ago; mixed statuses, 12-hour and 24-hour clock times since",
	},
	{
		ID:          "bonus-due",
		Name:        "Bonus Due",
		Description: "Last bonus paid over a year ago, annual bonus now due",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario wipes the database and seeds the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	today := h.Engine.Clock.Today()
	var err error
	switch req.ScenarioID {
	case "fresh-hire":
		err = h.seedFreshHire(ctx, today)
	case "steady-month":
		err = h.seedSteadyMonth(ctx, today)
	case "bonus-due":
		err = h.seedBonusDue(ctx, today)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// ResetDatabase wipes all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// =============================================================================
// SEEDERS
// =============================================================================

func (h *Handler) seedFreshHire(ctx context.Context, today payroll.Date) error {
	hired := today.AddDays(-14)
	emp := payroll.Employee{
		ID:        "emp-ava",
		Name:      "Ava Laurent",
		DailyWage: decimal.NewFromInt(800),
		HireDate:  hired,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// Weekdays only, a steady nine-to-six.
	for day := hired; day.BeforeOrEqual(today.AddDays(-1)); day = day.AddDays(1) {
		if wd := day.Time().Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		rec := payroll.AttendanceRecord{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     payroll.StatusPresent,
			TimeIn:     "09:00",
			TimeOut:    "18:00",
		}
		if err := h.Store.SaveRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) seedSteadyMonth(ctx context.Context, today payroll.Date) error {
	lastPaid := today.AddDays(-30)
	emp := payroll.Employee{
		ID:        "emp-bruno",
		Name:      "Bruno Okafor",
		DailyWage: decimal.NewFromInt(640),
		HireDate:  today.AddYears(-2),
		LastPaid:  &lastPaid,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	pattern := []payroll.AttendanceRecord{
		{Status: payroll.StatusPresent, TimeIn: "08:30 AM", TimeOut: "05:30 PM"},
		{Status: payroll.StatusPresent, TimeIn: "08:00", TimeOut: "17:00"},
		{Status: payroll.StatusOvertime, TimeIn: "08:00", TimeOut: "20:00"},
		{Status: payroll.StatusLeave},
		{Status: payroll.StatusPresent, TimeIn: "22:00", TimeOut: "06:00"}, // night shift
		{Status: payroll.StatusAbsent},
	}
	day := lastPaid.AddDays(1)
	for i := 0; day.BeforeOrEqual(today.AddDays(-1)); i++ {
		rec := pattern[i%len(pattern)]
		rec.EmployeeID = emp.ID
		rec.Date = day
		if err := h.Store.SaveRecord(ctx, rec); err != nil {
			return err
		}
		day = day.AddDays(1)
	}
	return nil
}

func (h *Handler) seedBonusDue(ctx context.Context, today payroll.Date) error {
	lastBonus := today.AddYears(-1).AddDays(-15)
	lastPaid := today.AddDays(-7)
	emp := payroll.Employee{
		ID:            "emp-carla",
		Name:          "Carla Mendes",
		DailyWage:     decimal.NewFromInt(960),
		HireDate:      today.AddYears(-3),
		LastPaid:      &lastPaid,
		LastBonusPaid: &lastBonus,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// A year of sparse attendance: three present days a week.
	for day := lastBonus.AddDays(1); day.BeforeOrEqual(today.AddDays(-1)); day = day.AddDays(1) {
		wd := day.Time().Weekday()
		if wd != time.Monday && wd != time.Wednesday && wd != time.Friday {
			continue
		}
		rec := payroll.AttendanceRecord{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     payroll.StatusPresent,
			TimeIn:     "09:00",
			TimeOut:    "17:30",
		}
		if err := h.Store.SaveRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
