/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's domain
  model from the external contract. Money fields render as 2-decimal
  floats; dates as "YYYY-MM-DD" strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DailyWage     float64 `json:"daily_wage"`
	HireDate      string  `json:"hire_date"`
	LastPaid      *string `json:"last_paid"`
	LastBonusPaid *string `json:"last_bonus_paid"`
}

type CreateEmployeeRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DailyWage float64 `json:"daily_wage"`
	HireDate  string  `json:"hire_date"`
}

func toEmployeeDTO(emp payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:            string(emp.ID),
		Name:          emp.Name,
		DailyWage:     money(emp.DailyWage),
		HireDate:      emp.HireDate.String(),
		LastPaid:      markerStr(emp.LastPaid),
		LastBonusPaid: markerStr(emp.LastBonusPaid),
	}
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type AttendanceDTO struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Date           string   `json:"date"`
	Status         string   `json:"status"`
	TimeIn         string   `json:"time_in"`
	TimeOut        string   `json:"time_out"`
	ExceptionHours *float64 `json:"exception_hours,omitempty"`
}

type RecordAttendanceRequest struct {
	Date           string   `json:"date"`
	Status         string   `json:"status"`
	TimeIn         string   `json:"time_in"`
	TimeOut        string   `json:"time_out"`
	ExceptionHours *float64 `json:"exception_hours"`
}

func toAttendanceDTO(rec payroll.AttendanceRecord) AttendanceDTO {
	return AttendanceDTO{
		ID:             rec.ID,
		EmployeeID:     string(rec.EmployeeID),
		Date:           rec.Date.String(),
		Status:         string(rec.Status),
		TimeIn:         rec.TimeIn,
		TimeOut:        rec.TimeOut,
		ExceptionHours: rec.ExceptionHours,
	}
}

// =============================================================================
// REPORTS
// =============================================================================

type WageReportDTO struct {
	EmployeeID          string   `json:"employee_id"`
	EmployeeName        string   `json:"employee_name"`
	DailyWage           float64  `json:"daily_wage"`
	HourlyRate          float64  `json:"hourly_rate"`
	PeriodStart         string   `json:"period_start"`
	PeriodEnd           string   `json:"period_end"`
	WorkDays            int      `json:"work_days"`
	TotalHoursWorked    float64  `json:"total_hours_worked"`
	TotalExceptionHours float64  `json:"total_exception_hours"`
	TotalOvertimeHours  float64  `json:"total_overtime_hours"`
	EffectiveHours      float64  `json:"effective_hours"`
	TotalWage           float64  `json:"total_wage"`
	Warnings            []string `json:"warnings,omitempty"`
}

type BonusReportDTO struct {
	WageReportDTO

	TotalEarned     float64 `json:"total_earned"`
	BonusRate       float64 `json:"bonus_rate"`
	BonusAmount     float64 `json:"bonus_amount"`
	NextBonusDate   string  `json:"next_bonus_date"`
	IsBonusDue      bool    `json:"is_bonus_due"`
	MonthsRemaining int     `json:"months_remaining"`
	DaysRemaining   int     `json:"days_remaining"`
}

type PayrollSummaryDTO struct {
	AsOf           string           `json:"as_of"`
	TotalEmployees int              `json:"total_employees"`
	TotalWage      float64          `json:"total_wage"`
	Reports        []WageReportDTO  `json:"reports"`
	Failures       []SummaryFailDTO `json:"failures,omitempty"`
}

type SummaryFailDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

func toWageReportDTO(r payroll.WageReport) WageReportDTO {
	return WageReportDTO{
		EmployeeID:          string(r.EmployeeID),
		EmployeeName:        r.EmployeeName,
		DailyWage:           money(r.DailyWage),
		HourlyRate:          money(r.HourlyRate),
		PeriodStart:         r.Period.Start.String(),
		PeriodEnd:           r.Period.End.String(),
		WorkDays:            r.WorkDays,
		TotalHoursWorked:    r.TotalHoursWorked,
		TotalExceptionHours: r.TotalExceptionHours,
		TotalOvertimeHours:  r.TotalOvertimeHours,
		EffectiveHours:      r.EffectiveHours,
		TotalWage:           money(r.TotalWage),
		Warnings:            r.Warnings,
	}
}

func toBonusReportDTO(r payroll.BonusReport) BonusReportDTO {
	return BonusReportDTO{
		WageReportDTO:   toWageReportDTO(r.WageReport),
		TotalEarned:     money(r.TotalWage),
		BonusRate:       money(r.BonusRate),
		BonusAmount:     money(r.BonusAmount),
		NextBonusDate:   r.NextBonusDate.String(),
		IsBonusDue:      r.IsBonusDue,
		MonthsRemaining: r.MonthsRemaining,
		DaysRemaining:   r.DaysRemaining,
	}
}

func toSummaryDTO(s payroll.PayrollSummary) PayrollSummaryDTO {
	dto := PayrollSummaryDTO{
		AsOf:           s.AsOf.String(),
		TotalEmployees: s.TotalEmployees,
		TotalWage:      money(s.TotalWage),
		Reports:        make([]WageReportDTO, 0, len(s.Reports)),
	}
	for _, r := range s.Reports {
		dto.Reports = append(dto.Reports, toWageReportDTO(r))
	}
	for _, f := range s.Failures {
		dto.Failures = append(dto.Failures, SummaryFailDTO{
			EmployeeID:   string(f.EmployeeID),
			EmployeeName: f.EmployeeName,
			Reason:       f.Reason,
		})
	}
	return dto
}

// =============================================================================
// SCENARIOS & ERRORS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the uniform error body. EmployeeID/EmployeeName are set
// for calculation refusals so UIs can render which employee was rejected.
type ErrorResponse struct {
	Error        string `json:"error"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}

// =============================================================================
// HELPERS
// =============================================================================

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func markerStr(d *payroll.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
