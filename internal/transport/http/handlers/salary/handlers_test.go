package salaryhandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/salary"
)

func TestSalaryRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       salaryRequest
		wantField string
	}{
		{
			name: "valid",
			req: salaryRequest{
				EmployeeName: "Akshaya Kumar",
				BasicPay:     50000,
				Allowances:   salary.Allowances{HRA: 5000, DA: 2000, Travel: 1000},
				Deductions:   salary.Deductions{PF: 1800, Tax: 3000},
			},
		},
		{
			name:      "missing name",
			req:       salaryRequest{BasicPay: 50000},
			wantField: "employeeName",
		},
		{
			name:      "negative basic pay",
			req:       salaryRequest{EmployeeName: "Akshaya Kumar", BasicPay: -1},
			wantField: "basicPay",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			issues := tc.req.validate()
			if tc.wantField == "" {
				if len(issues) != 0 {
					t.Fatalf("expected no issues, got %+v", issues)
				}
				return
			}
			found := false
			for _, issue := range issues {
				if issue.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue on %s, got %+v", tc.wantField, issues)
			}
		})
	}
}

func TestHandleAddSalaryRejectsInvalidJSON(t *testing.T) {
	handler := NewHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/addsalary", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler.handleAddSalary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAddSalaryRejectsMissingName(t *testing.T) {
	handler := NewHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/addsalary", strings.NewReader(`{"basicPay":1000}`))
	rec := httptest.NewRecorder()
	handler.handleAddSalary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePayslipRejectsMalformedID(t *testing.T) {
	handler := NewHandler(nil)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/getsalary/abc/payslip", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
}
