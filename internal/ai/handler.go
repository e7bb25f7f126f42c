package ai

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/khohang/khohang/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the AI chat proxy.
type Handler struct {
	logger    *slog.Logger
	client    *Client
	validator *validator.Validate
}

// NewHandler constructs the AI handler.
func NewHandler(logger *slog.Logger, client *Client) *Handler {
	return &Handler{logger: logger, client: client, validator: validator.New()}
}

// MountRoutes registers AI routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/chat-md", h.handleChatMarkdown)
}

type chatRequest struct {
	Prompt            string  `json:"prompt" validate:"required"`
	SystemInstruction *string `json:"system_instruction"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	reply, ok := h.generate(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, chatResponse{Reply: reply, Model: h.client.Model()})
}

// handleChatMarkdown returns the raw reply as text/markdown for UIs that
// render it directly.
func (h *Handler) handleChatMarkdown(w http.ResponseWriter, r *http.Request) {
	reply, ok := h.generate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(reply))
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req chatRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return "", false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return "", false
	}

	reply, err := h.client.Generate(r.Context(), req.Prompt, req.SystemInstruction)
	if err != nil {
		h.logger.Warn("generate reply failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return "", false
	}
	return reply, true
}
