package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khohang/khohang/internal/inventory"
	"github.com/khohang/khohang/internal/store"
)

func newFixtures() (*inventory.Service, *Service) {
	inv := inventory.NewService(store.NewMemory[inventory.Item](), store.NewMemory[inventory.StockTransaction]())
	return inv, NewService(inv)
}

func addItem(t *testing.T, inv *inventory.Service, sku string, quantity int64, price float64) inventory.Item {
	t.Helper()
	item, err := inv.CreateItem(context.Background(), inventory.Item{
		Name: "Item " + sku, SKU: sku, Quantity: quantity, Unit: "pcs", Price: price, Category: "general",
	})
	require.NoError(t, err)
	return item
}

func TestStatsEmptyStore(t *testing.T) {
	_, svc := newFixtures()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalItems)
	require.Equal(t, 0, stats.LowStockCount)
	require.Zero(t, stats.TotalValue)
	require.NotNil(t, stats.RecentTransactions)
	require.Empty(t, stats.RecentTransactions)
}

func TestStatsTotalsAndLowStockBoundary(t *testing.T) {
	inv, svc := newFixtures()
	addItem(t, inv, "A1", 9, 2.5)   // low stock
	addItem(t, inv, "B2", 10, 4.0)  // exactly at threshold: not low
	addItem(t, inv, "C3", 11, 1.0)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalItems)
	require.Equal(t, 1, stats.LowStockCount)
	require.InDelta(t, 9*2.5+10*4.0+11*1.0, stats.TotalValue, 0.0001)
}

func TestStatsRecomputedFresh(t *testing.T) {
	inv, svc := newFixtures()
	item := addItem(t, inv, "A1", 5, 10)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 50.0, stats.TotalValue, 0.0001)

	_, err = inv.RecordTransaction(context.Background(), inventory.TransactionInput{
		ItemID: item.ID, Type: inventory.TypeOut, Quantity: 3,
	})
	require.NoError(t, err)

	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 20.0, stats.TotalValue, 0.0001)
	require.Len(t, stats.RecentTransactions, 1)
}

func TestStatsRecentTransactionsTruncatedNewestFirst(t *testing.T) {
	inv, svc := newFixtures()
	item := addItem(t, inv, "A1", 0, 1)

	base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	clock := base
	inv.WithNow(func() time.Time { return clock })

	for i := 0; i < 12; i++ {
		clock = base.Add(time.Duration(i) * time.Second)
		_, err := inv.RecordTransaction(context.Background(), inventory.TransactionInput{
			ItemID: item.ID, Type: inventory.TypeIn, Quantity: 1,
		})
		require.NoError(t, err, fmt.Sprintf("transaction %d", i))
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.RecentTransactions, 10)
	require.Equal(t, int64(12), stats.RecentTransactions[0].ID)
	require.Equal(t, int64(3), stats.RecentTransactions[9].ID)
}
