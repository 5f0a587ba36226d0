package attendance

import "github.com/shopspring/decimal"

type DailySheetEntry struct {
	AttendanceID    string `json:"attendance_id"`
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	ShiftName       string `json:"shift_name,omitempty"`
	FNStatus        string `json:"fn_status"`
	ANStatus        string `json:"an_status"`
	Status          string `json:"status"`
	ActualStartTime string `json:"actual_start_time,omitempty"`
	ActualEndTime   string `json:"actual_end_time,omitempty"`
	WorkingDuration string `json:"working_duration"`
	OTDuration      string `json:"ot_duration"`
	OTMinutes       int    `json:"ot_minutes"`
	PermissionHours string `json:"permission_hours"`
}

type DailySheetResponse struct {
	Date           string            `json:"date"`
	Entries        []DailySheetEntry `json:"entries"`
	TotalRecords   int               `json:"total_records"`
	PresentCount   int               `json:"present_count"`
	FullDayCount   int               `json:"full_day_count"`
	HalfDayCount   int               `json:"half_day_count"`
	AbsentCount    int               `json:"absent_count"`
	TotalOTMinutes int               `json:"total_ot_minutes"`
	TotalOT        string            `json:"total_ot"`
}

// MonthlySheetEmployee summarises one employee's records for a month. Only
// employees with at least one record appear.
type MonthlySheetEmployee struct {
	EmployeeID      string          `json:"employee_id"`
	EmployeeCode    string          `json:"employee_code"`
	EmployeeName    string          `json:"employee_name"`
	EmployeeType    string          `json:"employee_type"`
	TotalDays       int             `json:"total_days"`
	PresentDays     int             `json:"present_days"`
	AbsentDays      int             `json:"absent_days"`
	FNPresentDays   int             `json:"fn_present_days"`
	ANPresentDays   int             `json:"an_present_days"`
	OTMinutes       int             `json:"ot_minutes"`
	OTHours         decimal.Decimal `json:"ot_hours"`
	OTDuration      string          `json:"ot_duration"`
	PermissionHours decimal.Decimal `json:"permission_hours"`
	AttendanceRate  decimal.Decimal `json:"attendance_rate"` // Percent of recorded days present, one decimal place
}

type MonthlySheetResponse struct {
	Year                  int                    `json:"year"`
	Month0                int                    `json:"month0"`
	WorkingDays           int                    `json:"working_days"`
	Employees             []MonthlySheetEmployee `json:"employees"`
	TotalEmployees        int                    `json:"total_employees"`
	TotalRecords          int                    `json:"total_records"`
	AverageAttendanceRate decimal.Decimal        `json:"average_attendance_rate"`
	TotalOTMinutes        int                    `json:"total_ot_minutes"`
	TotalOT               string                 `json:"total_ot"`
	TotalPermissionHours  decimal.Decimal        `json:"total_permission_hours"`
}
