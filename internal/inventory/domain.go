package inventory

import (
	"fmt"
	"time"

	"github.com/khohang/khohang/internal/platform/httpx"
)

// TransactionType enumerates supported stock movements.
type TransactionType string

const (
	// TypeIn represents an inbound movement that increases stock.
	TypeIn TransactionType = "in"
	// TypeOut represents an outbound movement that decreases stock.
	TypeOut TransactionType = "out"
)

// Item models a stock item. Quantity is mutated only through the ledger,
// except for the administrative partial update which deliberately bypasses
// it.
type Item struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Quantity   int64   `json:"quantity"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
	SupplierID *int64  `json:"supplier_id"`
}

// StockTransaction records one ledger movement. Transactions are append-only
// and immutable; the timestamp is assigned server-side in UTC.
type StockTransaction struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Type      TransactionType `json:"type"`
	ItemID    int64           `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	Note      *string         `json:"note"`
	Timestamp time.Time       `json:"timestamp"`
}

// ItemPatch carries a partial item update. Nil fields are left untouched.
type ItemPatch struct {
	Name       *string  `json:"name"`
	SKU        *string  `json:"sku"`
	Quantity   *int64   `json:"quantity"`
	Unit       *string  `json:"unit"`
	Price      *float64 `json:"price"`
	Category   *string  `json:"category"`
	SupplierID *int64   `json:"supplier_id"`
}

// TransactionInput describes a ledger movement request.
type TransactionInput struct {
	ItemID   int64
	Type     TransactionType
	Quantity int64
	Note     *string
}

var (
	// ErrItemNotFound indicates the referenced item does not exist.
	ErrItemNotFound = fmt.Errorf("item %w", httpx.ErrNotFound)
	// ErrSKUExists indicates another live item already uses the sku.
	ErrSKUExists = fmt.Errorf("sku already exists: %w", httpx.ErrConflict)
	// ErrInvalidQuantity indicates a non-positive transaction quantity.
	ErrInvalidQuantity = fmt.Errorf("quantity must be a positive integer: %w", httpx.ErrValidation)
	// ErrInvalidType indicates an unrecognized transaction type.
	ErrInvalidType = fmt.Errorf(`transaction type must be "in" or "out": %w`, httpx.ErrValidation)
	// ErrInsufficientStock indicates an outbound quantity exceeding current stock.
	ErrInsufficientStock = fmt.Errorf("outbound quantity exceeds current stock: %w", httpx.ErrInsufficientStock)
)
