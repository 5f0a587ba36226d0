package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Calculations
	CalculateDuration(w http.ResponseWriter, r *http.Request)
	GetWorkingDays(w http.ResponseWriter, r *http.Request)

	// Reports
	ListReports(w http.ResponseWriter, r *http.Request)
	GetEmployeeReport(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== CALCULATIONS ==========

func (h *payrollHandlerImpl) CalculateDuration(w http.ResponseWriter, r *http.Request) {
	var req payroll.DurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateDuration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetWorkingDays(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== REPORTS ==========

func (h *payrollHandlerImpl) ListReports(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GenerateReports(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Year:       period.Year,
		Month0:     period.Month0,
		TotalItems: int64(len(result)),
	})
}

func (h *payrollHandlerImpl) GetEmployeeReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetEmployeeReport(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetSummary(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.payrollService.ExportReports(r.Context(), payroll.ExportRequest{
		PeriodRequest: period,
		Format:        payroll.ExportFormat(r.URL.Query().Get("format")),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}

// writeFile sends an export as an attachment.
func writeFile(w http.ResponseWriter, file payroll.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// parsePeriod reads year, month0 and employee_ids from the query string. A missing
// year or month0 defaults to the current month.
func parsePeriod(r *http.Request) (payroll.PeriodRequest, error) {
	now := time.Now()
	period := payroll.PeriodRequest{Year: now.Year(), Month0: int(now.Month()) - 1}
	query := r.URL.Query()

	var errs validator.ValidationErrors
	if yearStr := query.Get("year"); yearStr != "" {
		if validator.IsNumeric(yearStr) {
			period.Year, _ = strconv.Atoi(yearStr)
		} else {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be an integer"})
		}
	}
	if monthStr := query.Get("month0"); monthStr != "" {
		if validator.IsNumeric(monthStr) {
			period.Month0, _ = strconv.Atoi(monthStr)
		} else {
			errs = append(errs, validator.ValidationError{Field: "month0", Message: "must be an integer"})
		}
	}
	if len(errs) > 0 {
		return payroll.PeriodRequest{}, errs
	}

	if ids := query.Get("employee_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				period.EmployeeIDs = append(period.EmployeeIDs, id)
			}
		}
	}

	return period, nil
}
