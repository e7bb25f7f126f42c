package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khohang/khohang/internal/platform/httpx"
	"github.com/khohang/khohang/internal/store"
)

// Service is the sole authority for item lifecycle and stock movements.
//
// The mutex serializes every check-then-act sequence: the sku uniqueness
// scan before an insert, and the ledger's sufficiency check followed by the
// quantity mutation plus transaction append. No reader can observe an
// updated quantity without the matching transaction already recorded.
type Service struct {
	mu           sync.Mutex
	items        store.Store[Item]
	transactions store.Store[StockTransaction]
	now          func() time.Time
}

// NewService builds a Service on top of the given stores.
func NewService(items store.Store[Item], transactions store.Store[StockTransaction]) *Service {
	return &Service{items: items, transactions: transactions, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func validateItem(item Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("item name is required: %w", httpx.ErrValidation)
	}
	if strings.TrimSpace(item.SKU) == "" {
		return fmt.Errorf("item sku is required: %w", httpx.ErrValidation)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("item quantity must not be negative: %w", httpx.ErrValidation)
	}
	if strings.TrimSpace(item.Unit) == "" {
		return fmt.Errorf("item unit is required: %w", httpx.ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("item price must not be negative: %w", httpx.ErrValidation)
	}
	if strings.TrimSpace(item.Category) == "" {
		return fmt.Errorf("item category is required: %w", httpx.ErrValidation)
	}
	return nil
}

// skuTaken reports whether another live item uses the sku. Callers must hold
// the mutex.
func (s *Service) skuTaken(ctx context.Context, sku string, excludeID int64) (bool, error) {
	all, err := s.items.List(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range all {
		if existing.SKU == sku && existing.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// CreateItem validates the item, enforces sku uniqueness and stores it.
func (s *Service) CreateItem(ctx context.Context, item Item) (Item, error) {
	if err := validateItem(item); err != nil {
		return Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	taken, err := s.skuTaken(ctx, item.SKU, 0)
	if err != nil {
		return Item{}, err
	}
	if taken {
		return Item{}, ErrSKUExists
	}
	return s.items.Create(ctx, func(id int64) Item {
		item.ID = id
		return item
	})
}

// GetItem returns a single item.
func (s *Service) GetItem(ctx context.Context, id int64) (Item, error) {
	item, err := s.items.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Item{}, ErrItemNotFound
	}
	return item, err
}

// ListItems returns all items in insertion order.
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	return s.items.List(ctx)
}

// UpdateItem merges the supplied fields into the stored item. Quantity may
// change here without a ledger record; that administrative override mirrors
// the original system and is intentionally kept (see DESIGN.md).
func (s *Service) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.SKU != nil {
		taken, err := s.skuTaken(ctx, *patch.SKU, id)
		if err != nil {
			return Item{}, err
		}
		if taken {
			return Item{}, ErrSKUExists
		}
	}
	updated, err := s.items.Update(ctx, id, func(item Item) (Item, error) {
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.SKU != nil {
			item.SKU = *patch.SKU
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.Unit != nil {
			item.Unit = *patch.Unit
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		}
		if patch.SupplierID != nil {
			item.SupplierID = patch.SupplierID
		}
		return item, validateItem(item)
	})
	if errors.Is(err, store.ErrNotFound) {
		return Item{}, ErrItemNotFound
	}
	return updated, err
}

// DeleteItem removes the item permanently. Its id is never reused.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	err := s.items.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

// RecordTransaction applies a stock movement to an item and appends the
// transaction record. The quantity mutation and the append are observed as
// one atomic unit; on any validation failure nothing is mutated.
func (s *Service) RecordTransaction(ctx context.Context, input TransactionInput) (StockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.items.Get(ctx, input.ItemID)
	if errors.Is(err, store.ErrNotFound) {
		return StockTransaction{}, ErrItemNotFound
	}
	if err != nil {
		return StockTransaction{}, err
	}
	if input.Quantity <= 0 {
		return StockTransaction{}, ErrInvalidQuantity
	}

	var newQuantity int64
	switch input.Type {
	case TypeIn:
		newQuantity = item.Quantity + input.Quantity
	case TypeOut:
		if input.Quantity > item.Quantity {
			return StockTransaction{}, ErrInsufficientStock
		}
		newQuantity = item.Quantity - input.Quantity
	default:
		return StockTransaction{}, ErrInvalidType
	}

	if _, err := s.items.Update(ctx, item.ID, func(stored Item) (Item, error) {
		stored.Quantity = newQuantity
		return stored, nil
	}); err != nil {
		return StockTransaction{}, err
	}

	postedAt := s.now().UTC()
	code := fmt.Sprintf("TXN-%s", uuid.NewString())
	return s.transactions.Create(ctx, func(id int64) StockTransaction {
		return StockTransaction{
			ID:        id,
			Code:      code,
			Type:      input.Type,
			ItemID:    input.ItemID,
			Quantity:  input.Quantity,
			Note:      input.Note,
			Timestamp: postedAt,
		}
	})
}

// ListTransactions returns all transactions newest first. The sort is stable
// so equal timestamps keep their insertion order within one response.
func (s *Service) ListTransactions(ctx context.Context) ([]StockTransaction, error) {
	all, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	return all, nil
}
