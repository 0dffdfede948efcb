/*
handlers.go - HTTP handlers for the payroll engine

PURPOSE:
  Exposes the engine via REST. Handlers parse HTTP, delegate to the
  engine/store, and serialize responses; no payroll math lives here.

ENDPOINTS:
  Employees:
    GET    /api/employees                   List all employees
    POST   /api/employees                   Create employee
    GET    /api/employees/{id}              Get employee
    GET    /api/employees/{id}/attendance   List attendance (from/to)
    POST   /api/employees/{id}/attendance   Record a day

  Payroll:
    GET    /api/employees/{id}/wage         Wage report for the open period
    GET    /api/employees/{id}/bonus        Bonus report (?rate= override)
    POST   /api/employees/{id}/wage/paid    Mark wage paid (today)
    POST   /api/employees/{id}/bonus/paid   Mark bonus paid (today)
    GET    /api/payroll/summary             All-employee wage totals

  Scenarios:
    GET    /api/scenarios                   List demo scenarios
    POST   /api/scenarios/load              Seed a scenario
    POST   /api/scenarios/reset             Wipe the database

ERROR HANDLING:
  - 400: malformed input
  - 404: unknown employee
  - 409: overlapping mark-paid for the same employee/kind
  - 422: calculation refused (invalid daily wage, missing dates)
  - 500: storage failures
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *payroll.Engine
	Log    zerolog.Logger

	currentScenario string
}

// NewHandler creates a handler over the given store and engine.
func NewHandler(store *sqlite.Store, engine *payroll.Engine, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Engine: engine, Log: log}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, emp := range employees {
		dtos = append(dtos, toEmployeeDTO(emp))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	hireDate, err := payroll.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date", err)
		return
	}

	emp := payroll.Employee{
		ID:        payroll.EmployeeID(req.ID),
		Name:      req.Name,
		DailyWage: decimal.NewFromFloat(req.DailyWage),
		HireDate:  hireDate,
		// Markers stay unset: the first period starts at the hire date.
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	from := payroll.NewDate(1, 1, 1)
	to := payroll.NewDate(9999, 12, 31)
	var err error
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = payroll.ParseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
	}
	if q := r.URL.Query().Get("to"); q != "" {
		if to, err = payroll.ParseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
	}

	records, err := h.Store.RecordsInRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to query attendance", err)
		return
	}

	dtos := make([]AttendanceDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toAttendanceDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	var req RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := payroll.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	rec := payroll.AttendanceRecord{
		EmployeeID:     id,
		Date:           date,
		Status:         payroll.AttendanceStatus(req.Status),
		TimeIn:         req.TimeIn,
		TimeOut:        req.TimeOut,
		ExceptionHours: req.ExceptionHours,
	}
	if err := h.Store.SaveRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save attendance", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAttendanceDTO(rec))
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

func (h *Handler) GetWageReport(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	report, err := h.Engine.CalculateWage(r.Context(), id)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWageReportDTO(*report))
}

func (h *Handler) GetBonusReport(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	rate := decimal.Zero // zero selects the configured default
	if q := r.URL.Query().Get("rate"); q != "" {
		parsed, err := decimal.NewFromString(q)
		if err != nil || parsed.IsNegative() {
			writeError(w, http.StatusBadRequest, "Invalid bonus rate", err)
			return
		}
		rate = parsed
	}

	report, err := h.Engine.CalculateBonus(r.Context(), id, rate)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBonusReportDTO(*report))
}

func (h *Handler) MarkWagePaid(w http.ResponseWriter, r *http.Request) {
	h.markPaid(w, r, payroll.KindWage)
}

func (h *Handler) MarkBonusPaid(w http.ResponseWriter, r *http.Request) {
	h.markPaid(w, r, payroll.KindBonus)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request, kind payroll.PayKind) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	var err error
	if kind == payroll.KindBonus {
		err = h.Engine.MarkBonusPaid(r.Context(), id)
	} else {
		err = h.Engine.MarkWagePaid(r.Context(), id)
	}
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"marked": true, "kind": string(kind)})
}

func (h *Handler) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Engine.PayrollSummary(r.Context())
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(*summary))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var ve *payroll.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:        ve.Reason,
			EmployeeID:   string(ve.EmployeeID),
			EmployeeName: ve.EmployeeName,
		})
	case payroll.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, payroll.ErrMarkInProgress):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, payroll.ErrMissingDates):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		h.Log.Error().Err(err).Msg("payroll operation failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}
