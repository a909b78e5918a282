package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/staff"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Store  *staff.Store
	Secret string
}

func NewHandler(store *staff.Store, secret string) *Handler {
	return &Handler{Store: store, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
}

type registerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	MobileNumber int64  `json:"mobilenumber"`
	Gender       string `json:"gender"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	registration := staff.Registration{
		Username:     strings.TrimSpace(payload.Username),
		Password:     payload.Password,
		Email:        staff.NormalizeEmail(payload.Email),
		MobileNumber: payload.MobileNumber,
		Gender:       strings.TrimSpace(payload.Gender),
	}
	if issues := staff.ValidateRegistration(registration); len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": issues}, middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := auth.HashPassword(registration.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to process password", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateAccount(r.Context(), staff.StaffAccount{
		Username:     registration.Username,
		PasswordHash: hash,
		Email:        registration.Email,
		MobileNumber: registration.MobileNumber,
		Gender:       registration.Gender,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Fail(w, http.StatusConflict, "email_exists", "email already registered", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to create account", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: id, Username: registration.Username}, auth.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]string{"token": token, "userId": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	account, err := h.Store.GetAccountByUsername(r.Context(), strings.TrimSpace(payload.Username))
	if errors.Is(err, staff.ErrAccountNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to look up account", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: account.ID, Username: account.Username}, auth.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"token": token, "userId": account.ID}, middleware.GetRequestID(r.Context()))
}
