package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/response"
)

type AttendanceHandler interface {
	DailySheet(w http.ResponseWriter, r *http.Request)
	MonthlySheet(w http.ResponseWriter, r *http.Request)
	ExportMonthlySheet(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// DailySheet serves GET /attendance/daily?date=YYYY-MM-DD, defaulting to today.
func (h *attendanceHandlerImpl) DailySheet(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}

	result, err := h.attendanceService.DailySheet(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlySheet serves GET /attendance/monthly?year=&month0=, defaulting to the current month.
func (h *attendanceHandlerImpl) MonthlySheet(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MonthlySheet(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ExportMonthlySheet(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.attendanceService.ExportMonthlySheet(r.Context(), payroll.ExportRequest{
		PeriodRequest: period,
		Format:        payroll.ExportFormat(r.URL.Query().Get("format")),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}
