package salaryhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"staffhub/internal/domain/salary"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Store *salary.Store
}

func NewHandler(store *salary.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/addsalary", h.handleAddSalary)
	r.Get("/getsalary", h.handleListSalaries)
	r.Get("/getsalary/{recordID}/payslip", h.handlePayslip)
}

type salaryRequest struct {
	EmployeeName string            `json:"employeeName"`
	BasicPay     float64           `json:"basicPay"`
	Allowances   salary.Allowances `json:"allowances"`
	Deductions   salary.Deductions `json:"deductions"`
}

func (req salaryRequest) validate() []fieldIssue {
	var issues []fieldIssue
	if strings.TrimSpace(req.EmployeeName) == "" {
		issues = append(issues, fieldIssue{Field: "employeeName", Reason: "is required"})
	}
	if req.BasicPay < 0 {
		issues = append(issues, fieldIssue{Field: "basicPay", Reason: "must not be negative"})
	}
	return issues
}

type fieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (h *Handler) handleAddSalary(w http.ResponseWriter, r *http.Request) {
	var payload salaryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if issues := payload.validate(); len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": issues}, middleware.GetRequestID(r.Context()))
		return
	}

	record := salary.SalaryRecord{
		EmployeeName: strings.TrimSpace(payload.EmployeeName),
		BasicPay:     payload.BasicPay,
		Allowances:   payload.Allowances,
		Deductions:   payload.Deductions,
	}

	id, err := h.Store.Create(r.Context(), record)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_save_failed", "failed to save salary record", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSalaries(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to fetch salary records", middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]salary.SalaryView, 0, len(records))
	for _, record := range records {
		views = append(views, record.View())
	}

	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	if _, err := uuid.Parse(recordID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "salary record not found", middleware.GetRequestID(r.Context()))
		return
	}
	record, err := h.Store.Get(r.Context(), recordID)
	if errors.Is(err, salary.ErrRecordNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "salary record not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_fetch_failed", "failed to fetch salary record", middleware.GetRequestID(r.Context()))
		return
	}

	pdfBytes, err := salary.RenderPayslipPDF(*record)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip-"+recordID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
