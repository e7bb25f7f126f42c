package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/khohang/khohang/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	client    *Client
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, client *Client) *Handler {
	return &Handler{logger: logger, client: client, validator: validator.New()}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Post("/forgot-password", h.handleForgotPassword)
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.client.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		h.respondUpstream(w, "register", err)
		return
	}
	httpx.JSON(w, http.StatusOK, session)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondUpstream(w, "login", err)
		return
	}
	httpx.JSON(w, http.StatusOK, session)
}

// handleLogout always succeeds: the provider has no server-side sign-out for
// REST clients, so the UI only needs to discard its tokens.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.client.SendPasswordReset(r.Context(), req.Email); err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.Code == "EMAIL_NOT_FOUND" {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "email is not registered")
			return
		}
		h.respondUpstream(w, "forgot-password", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": "password reset email sent, please check your inbox",
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

// respondUpstream reports provider failures as 400 with the provider's error
// code, matching the original behavior. These are kept distinct from this
// service's own validation errors.
func (h *Handler) respondUpstream(w http.ResponseWriter, flow string, err error) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		h.logger.Warn("auth upstream rejected", slog.String("flow", flow), slog.String("code", upstream.Code))
		httpx.Problem(w, http.StatusBadRequest, "Auth Failed", upstream.Code)
		return
	}
	h.logger.Error("auth upstream unreachable", slog.String("flow", flow), slog.Any("error", err))
	httpx.Problem(w, http.StatusBadGateway, "Upstream Error", "identity provider unreachable")
}
