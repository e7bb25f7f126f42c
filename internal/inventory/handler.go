package inventory

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/khohang/khohang/internal/platform/httpx"
)

// Handler wires HTTP endpoints for items and stock transactions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs the inventory handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountItemRoutes registers item routes.
func (h *Handler) MountItemRoutes(r chi.Router) {
	r.Get("/", h.ListItems)
	r.Post("/", h.CreateItem)
	r.Put("/{id}", h.UpdateItem)
	r.Delete("/{id}", h.DeleteItem)
}

// MountTransactionRoutes registers stock transaction routes.
func (h *Handler) MountTransactionRoutes(r chi.Router) {
	r.Get("/transactions", h.ListTransactions)
	r.Post("/transactions", h.CreateTransaction)
}

type itemCreateRequest struct {
	Name       string  `json:"name" validate:"required"`
	SKU        string  `json:"sku" validate:"required"`
	Quantity   int64   `json:"quantity" validate:"gte=0"`
	Unit       string  `json:"unit" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	Category   string  `json:"category" validate:"required"`
	SupplierID *int64  `json:"supplier_id"`
}

type transactionCreateRequest struct {
	ItemID   int64   `json:"item_id" validate:"required"`
	Type     string  `json:"type" validate:"required"`
	Quantity int64   `json:"quantity" validate:"required"`
	Note     *string `json:"note"`
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListItems(r.Context())
	if err != nil {
		h.logger.Error("list items failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.service.CreateItem(r.Context(), Item{
		Name:       req.Name,
		SKU:        req.SKU,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Price:      req.Price,
		Category:   req.Category,
		SupplierID: req.SupplierID,
	})
	if err != nil {
		h.logger.Warn("create item rejected", slog.Any("error", err), slog.String("sku", req.SKU))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	var patch ItemPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}

	updated, err := h.service.UpdateItem(r.Context(), id, patch)
	if err != nil {
		h.logger.Warn("update item rejected", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.logger.Warn("delete item rejected", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListTransactions(r.Context())
	if err != nil {
		h.logger.Error("list transactions failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.service.RecordTransaction(r.Context(), TransactionInput{
		ItemID:   req.ItemID,
		Type:     TransactionType(req.Type),
		Quantity: req.Quantity,
		Note:     req.Note,
	})
	if err != nil {
		h.logger.Warn("record transaction rejected",
			slog.Any("error", err),
			slog.Int64("item_id", req.ItemID),
			slog.String("type", req.Type))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}
