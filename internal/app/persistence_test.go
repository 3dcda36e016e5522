package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shop-erp/internal/app"
	"shop-erp/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// gatedStore holds its first Save until release is closed.
type gatedStore struct {
	mu      sync.Mutex
	snap    core.Snapshot
	calls   int
	started chan struct{}
	release chan struct{}
}

func newGatedStore(t *testing.T) *gatedStore {
	t.Helper()
	seed, err := seededStore(t).Load(context.Background())
	require.NoError(t, err)
	return &gatedStore{snap: seed, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) Load(ctx context.Context) (core.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap, nil
}

func (g *gatedStore) Save(ctx context.Context, snap core.Snapshot) error {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	if first {
		close(g.started)
		<-g.release
	}

	g.mu.Lock()
	g.snap = snap
	g.mu.Unlock()
	return nil
}

func (g *gatedStore) saved() core.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap
}

func TestAutoSave_ConcurrentConfirmationsKeepNewestSnapshot(t *testing.T) {
	ctx := context.Background()
	rows := newGatedStore(t)
	svc := newService(t, rows)
	sale := app.SaleRequest{CashierID: 1, Lines: []core.BasketLine{{ProductID: 7, Quantity: 1}}}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	confirm := func() {
		defer wg.Done()
		_, err := svc.ConfirmSale(ctx, sale)
		errs <- err
	}

	wg.Add(1)
	go confirm()
	<-rows.started

	wg.Add(1)
	go confirm()
	require.Eventually(t, func() bool {
		orders, err := svc.ListSalesOrders(ctx)
		return err == nil && len(orders.Orders) == 2
	}, 5*time.Second, 5*time.Millisecond)

	close(rows.release)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	saved := rows.saved()
	require.Len(t, saved.SalesOrders, 2)
	require.Equal(t, "7", saved.Products[0][0])
	require.Equal(t, "3", saved.Products[0][3])

	reloaded := newService(t, rows)
	next, err := reloaded.ConfirmSale(ctx, sale)
	require.NoError(t, err)
	require.Equal(t, 3, next.Order.Number)
}

func TestAutoSave_OutlivesCancelledRequest(t *testing.T) {
	rows := seededStore(t)
	svc := newService(t, rows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := svc.AddProduct(ctx, app.AddProductRequest{Name: "Gear", SalePrice: decimal.RequireFromString("3.5"), Quantity: 2})
	require.NoError(t, err)

	snap, err := rows.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Products, 3)
	require.Equal(t, "9", snap.Products[2][0])
	require.Equal(t, p.Name, snap.Products[2][1])
}
