// Package dashboard computes read-only derived statistics over the current
// store state. Nothing is cached; every call recomputes from scratch.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/khohang/khohang/internal/inventory"
)

// lowStockThreshold marks items running low. Quantity 9 is low, 10 is not.
const lowStockThreshold = 10

const recentTransactionLimit = 10

// Stats is the dashboard read model.
type Stats struct {
	TotalItems         int                          `json:"total_items"`
	LowStockCount      int                          `json:"low_stock_count"`
	TotalValue         float64                      `json:"total_value"`
	RecentTransactions []inventory.StockTransaction `json:"recent_transactions"`
}

// InventoryReader is the slice of the inventory service the dashboard needs.
type InventoryReader interface {
	ListItems(ctx context.Context) ([]inventory.Item, error)
	ListTransactions(ctx context.Context) ([]inventory.StockTransaction, error)
}

// Service aggregates dashboard statistics.
type Service struct {
	inventory InventoryReader
}

// NewService constructs the dashboard service.
func NewService(inv InventoryReader) *Service {
	return &Service{inventory: inv}
}

// Stats computes the dashboard numbers. Items and transactions load in
// parallel; an empty store yields zeros and an empty list.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		items        []inventory.Item
		transactions []inventory.StockTransaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.inventory.ListItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.inventory.ListTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalItems:         len(items),
		RecentTransactions: make([]inventory.StockTransaction, 0, recentTransactionLimit),
	}
	for _, item := range items {
		if item.Quantity < lowStockThreshold {
			stats.LowStockCount++
		}
		stats.TotalValue += float64(item.Quantity) * item.Price
	}
	// ListTransactions already sorts newest first.
	for i, tx := range transactions {
		if i == recentTransactionLimit {
			break
		}
		stats.RecentTransactions = append(stats.RecentTransactions, tx)
	}
	return stats, nil
}
