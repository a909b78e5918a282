package staffhandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/domain/staff"
	"staffhub/internal/platform/uploads"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

const (
	maxIdentificationDocs = 5
	maxProfileFormMemory  = 1 * 1024 * 1024
)

type Handler struct {
	Store   *staff.Store
	Uploads *uploads.Store
}

func NewHandler(store *staff.Store, uploadStore *uploads.Store) *Handler {
	return &Handler{Store: store, Uploads: uploadStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Route("/{userID}", func(r chi.Router) {
			r.Post("/", h.handleReplaceProfile)
			r.Get("/", h.handleGetEmployee)
		})
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListWithProfiles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if accounts == nil {
		accounts = []staff.StaffAccount{}
	}
	api.Success(w, accounts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(userID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	account, err := h.Store.GetAccountWithProfile(r.Context(), userID)
	if errors.Is(err, staff.ErrAccountNotFound) || errors.Is(err, staff.ErrProfileNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_fetch_failed", "failed to fetch employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, account, middleware.GetRequestID(r.Context()))
}

// handleReplaceProfile writes the uploaded files first and replaces the
// profile second; any failure after the writes removes every file written,
// so a failed save cannot orphan uploads.
func (h *Handler) handleReplaceProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(userID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "staff account not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := r.ParseMultipartForm(maxProfileFormMemory); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	photoHeaders := r.MultipartForm.File["profilePhoto"]
	if len(photoHeaders) != 1 {
		api.Fail(w, http.StatusBadRequest, "upload_invalid", "exactly one profilePhoto is required", middleware.GetRequestID(r.Context()))
		return
	}
	docHeaders := r.MultipartForm.File["identificationDocs"]
	if len(docHeaders) == 0 {
		api.Fail(w, http.StatusBadRequest, "upload_invalid", "at least one identification document is required", middleware.GetRequestID(r.Context()))
		return
	}
	if len(docHeaders) > maxIdentificationDocs {
		api.Fail(w, http.StatusBadRequest, "upload_invalid", "too many identification documents", middleware.GetRequestID(r.Context()))
		return
	}

	photo, err := uploads.ReadFileHeader(photoHeaders[0])
	if err != nil {
		failUpload(w, r, err)
		return
	}
	docs := make([]uploads.File, 0, len(docHeaders))
	for _, header := range docHeaders {
		doc, err := uploads.ReadFileHeader(header)
		if err != nil {
			failUpload(w, r, err)
			return
		}
		docs = append(docs, doc)
	}

	dateOfBirth, err := staff.ParseDate(strings.TrimSpace(r.FormValue("dateOfBirth")))
	if err != nil {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": []staff.FieldIssue{{Field: "dateOfBirth", Reason: "must be a valid date in YYYY-MM-DD format"}}},
			middleware.GetRequestID(r.Context()))
		return
	}

	var saved []string
	photoPath, err := h.Uploads.SaveProfilePhoto("profilePhoto", photo)
	if err != nil {
		failUpload(w, r, err)
		return
	}
	saved = append(saved, photoPath)

	docPaths := make([]string, 0, len(docs))
	for _, doc := range docs {
		path, err := h.Uploads.SaveIdentificationDoc("identificationDocs", doc)
		if err != nil {
			h.Uploads.Remove(saved...)
			failUpload(w, r, err)
			return
		}
		saved = append(saved, path)
		docPaths = append(docPaths, path)
	}

	profile := staff.EmployeeProfile{
		FullName:    strings.TrimSpace(r.FormValue("fullName")),
		DateOfBirth: dateOfBirth,
		Gender:      strings.TrimSpace(r.FormValue("gender")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		Email:       staff.NormalizeEmail(r.FormValue("email")),
		EmergencyContact: staff.EmergencyContact{
			Name:         strings.TrimSpace(r.FormValue("emergencyName")),
			Relationship: strings.TrimSpace(r.FormValue("emergencyRelationship")),
			Phone:        strings.TrimSpace(r.FormValue("emergencyPhone")),
		},
		ProfilePhoto:       photoPath,
		IdentificationDocs: docPaths,
		Status:             strings.TrimSpace(r.FormValue("status")),
	}

	if issues := staff.ValidateProfile(profile); len(issues) > 0 {
		h.Uploads.Remove(saved...)
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": issues}, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.ReplaceProfile(r.Context(), userID, profile); err != nil {
		h.Uploads.Remove(saved...)
		if errors.Is(err, staff.ErrAccountNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "staff account not found", middleware.GetRequestID(r.Context()))
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Fail(w, http.StatusConflict, "email_exists", "profile email already in use", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "profile_save_failed", "failed to save employee profile", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]any{"userId": userID, "profilePhoto": photoPath, "identificationDocs": docPaths}, middleware.GetRequestID(r.Context()))
}

func failUpload(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, uploads.ErrFileTooLarge):
		api.Fail(w, http.StatusBadRequest, "upload_too_large", "uploaded file exceeds the 5 MB limit", requestID)
	case errors.Is(err, uploads.ErrEmptyFile):
		api.Fail(w, http.StatusBadRequest, "upload_invalid", "empty file is not allowed", requestID)
	case errors.Is(err, uploads.ErrUnsupportedType):
		api.Fail(w, http.StatusBadRequest, "upload_invalid", "unsupported file type", requestID)
	case errors.Is(err, uploads.ErrNotAnImage):
		api.Fail(w, http.StatusBadRequest, "upload_invalid", "profile photo must be a valid image", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store uploaded file", requestID)
	}
}
