package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"shop-erp/internal/core"
	"shop-erp/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type appService struct {
	// mu lets any number of mutations run together (each core component is
	// safe on its own) while Save takes it exclusively so the snapshot sees
	// no half-applied confirmation.
	mu       sync.RWMutex
	// saveMu is held across snapshot and write so a stale snapshot can
	// never land after a newer one.
	saveMu   sync.Mutex
	state    *core.State
	report   *core.LoadReport
	rows     store.RowStore
	sales    core.SalesService
	resupply core.ResupplyService
	autoSave bool
	logger   *zap.Logger
}

// Options tunes the application service.
type Options struct {
	// AutoSave writes a snapshot after every successful confirmation.
	AutoSave bool
	// CoreOptions are passed to the sales and resupply services.
	CoreOptions []core.Option
}

// NewAppService constructs an appService that satisfies ApplicationService.
// report may be nil when the state was not reconstructed from a store.
func NewAppService(state *core.State, report *core.LoadReport, rows store.RowStore, logger *zap.Logger, opts Options) ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if report == nil {
		report = &core.LoadReport{Loaded: map[core.RowKind]int{}}
	}
	coreOpts := append([]core.Option{core.WithLogger(logger)}, opts.CoreOptions...)
	return &appService{
		state:    state,
		report:   report,
		rows:     rows,
		sales:    core.NewSalesService(state.Catalog, state.Ledger, coreOpts...),
		resupply: core.NewResupplyService(state.Catalog, state.Ledger, coreOpts...),
		autoSave: opts.AutoSave,
		logger:   logger,
	}
}

// Load reads the row store and rebuilds the state, then wraps it in an
// ApplicationService.
func Load(ctx context.Context, rows store.RowStore, logger *zap.Logger, opts Options) (ApplicationService, error) {
	snap, err := rows.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}
	state, report := core.Reconstruct(snap, logger)
	return NewAppService(state, report, rows, logger, opts), nil
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	return &ProductListResult{Products: s.state.Catalog.List()}, nil
}

func (s *appService) SearchProducts(ctx context.Context, query string) (*ProductListResult, error) {
	return &ProductListResult{Products: s.state.Catalog.SearchByName(query)}, nil
}

func (s *appService) GetProduct(ctx context.Context, id int) (*core.Product, error) {
	p, err := s.state.Catalog.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *appService) AddProduct(ctx context.Context, req AddProductRequest) (*core.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("product name: %w", core.ErrMissingField)
	}
	s.mu.RLock()
	p, err := s.state.Catalog.Add(name, req.SalePrice, req.Quantity)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	s.logger.Info("product added", zap.Int("id", p.ID), zap.String("name", p.Name))
	s.persist(ctx)
	return &p, nil
}

func (s *appService) SetProductPrice(ctx context.Context, id int, price decimal.Decimal) (*core.Product, error) {
	s.mu.RLock()
	err := s.state.Catalog.SetSalePrice(id, price)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return s.GetProduct(ctx, id)
}

func (s *appService) DeleteProduct(ctx context.Context, id int) error {
	s.mu.RLock()
	err := s.state.Catalog.Delete(id)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int("id", id))
	s.persist(ctx)
	return nil
}

// ── Directories ───────────────────────────────────────────────────────────────

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	return &CustomerListResult{Customers: s.state.Customers.List()}, nil
}

func (s *appService) AddCustomer(ctx context.Context, req core.CustomerInput) (*core.Customer, error) {
	s.mu.RLock()
	c, err := s.state.Customers.Add(req)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return &c, nil
}

func (s *appService) DeleteCustomer(ctx context.Context, id int) error {
	s.mu.RLock()
	err := s.state.Customers.Delete(id)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	return &SupplierListResult{Suppliers: s.state.Suppliers.List()}, nil
}

func (s *appService) AddSupplier(ctx context.Context, req core.SupplierInput) (*core.Supplier, error) {
	s.mu.RLock()
	sup, err := s.state.Suppliers.Add(req)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return &sup, nil
}

func (s *appService) DeleteSupplier(ctx context.Context, id int) error {
	s.mu.RLock()
	err := s.state.Suppliers.Delete(id)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

func (s *appService) GetUser(ctx context.Context, id int) (*core.User, error) {
	u, err := s.state.Users.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ── Checkouts ─────────────────────────────────────────────────────────────────

func (s *appService) checkSaleParties(cashierID int, customer core.CustomerRef) error {
	if _, err := s.state.Users.FindByID(cashierID); err != nil {
		return fmt.Errorf("cashier: %w", err)
	}
	if id, ok := customer.CustomerID(); ok {
		if _, err := s.state.Customers.FindByID(id); err != nil {
			return fmt.Errorf("customer: %w", err)
		}
	}
	return nil
}

func (s *appService) checkResupplyParties(storekeeperID, supplierID int) error {
	if _, err := s.state.Users.FindByID(storekeeperID); err != nil {
		return fmt.Errorf("storekeeper: %w", err)
	}
	if _, err := s.state.Suppliers.FindByID(supplierID); err != nil {
		return fmt.Errorf("supplier: %w", err)
	}
	return nil
}

func (s *appService) BeginSale(ctx context.Context, cashierID int, customer core.CustomerRef) (*core.SalesCheckout, error) {
	if err := s.checkSaleParties(cashierID, customer); err != nil {
		return nil, err
	}
	return s.sales.Begin(cashierID, customer), nil
}

func (s *appService) BeginResupply(ctx context.Context, storekeeperID, supplierID int) (*core.ResupplyCheckout, error) {
	if err := s.checkResupplyParties(storekeeperID, supplierID); err != nil {
		return nil, err
	}
	return s.resupply.Begin(storekeeperID, supplierID), nil
}

func (s *appService) SaleLabels(ctx context.Context, cashierID int, customer core.CustomerRef) (string, string) {
	view := core.DescribeSalesOrder(core.SalesOrder{Customer: customer, CashierID: cashierID},
		s.state.Catalog, s.state.Customers, s.state.Users)
	return view.CustomerLabel, view.CashierLabel
}

func (s *appService) ResupplyLabels(ctx context.Context, storekeeperID, supplierID int) (string, string) {
	view := core.DescribeResupplyOrder(core.ResupplyOrder{SupplierID: supplierID, StorekeeperID: storekeeperID},
		s.state.Catalog, s.state.Suppliers, s.state.Users)
	return view.SupplierLabel, view.StorekeeperLabel
}

func (s *appService) CompleteSale(ctx context.Context, checkout *core.SalesCheckout) (*SalesOrderResult, error) {
	s.mu.RLock()
	order, err := checkout.Confirm(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return &SalesOrderResult{Order: s.describeSale(*order)}, nil
}

func (s *appService) CompleteResupply(ctx context.Context, checkout *core.ResupplyCheckout) (*ResupplyOrderResult, error) {
	s.mu.RLock()
	order, err := checkout.Confirm(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return &ResupplyOrderResult{Order: s.describeResupply(*order)}, nil
}

// buildSale runs the request lines through a sales checkout, stopping at the
// first rejected line.
func (s *appService) buildSale(ctx context.Context, req SaleRequest) (*core.SalesCheckout, error) {
	co, err := s.BeginSale(ctx, req.CashierID, req.Customer)
	if err != nil {
		return nil, err
	}
	for i, line := range req.Lines {
		if err := co.Add(line.ProductID, line.Quantity); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return co, nil
}

func (s *appService) buildResupply(ctx context.Context, req ResupplyRequest) (*core.ResupplyCheckout, error) {
	co, err := s.BeginResupply(ctx, req.StorekeeperID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	for i, line := range req.Lines {
		if err := co.Add(line.ProductID, line.Quantity); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	if err := co.SetTotalCost(req.TotalCost); err != nil {
		return nil, err
	}
	return co, nil
}

func (s *appService) PreviewSale(ctx context.Context, req SaleRequest) (*SalePreviewResult, error) {
	co, err := s.buildSale(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := co.Preview(ctx)
	if err != nil {
		return nil, err
	}
	customerLabel, cashierLabel := s.SaleLabels(ctx, req.CashierID, req.Customer)
	return &SalePreviewResult{Preview: p, CustomerLabel: customerLabel, CashierLabel: cashierLabel}, nil
}

func (s *appService) ConfirmSale(ctx context.Context, req SaleRequest) (*SalesOrderResult, error) {
	co, err := s.buildSale(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := co.Preview(ctx); err != nil {
		return nil, err
	}
	return s.CompleteSale(ctx, co)
}

func (s *appService) PreviewResupply(ctx context.Context, req ResupplyRequest) (*ResupplyPreviewResult, error) {
	co, err := s.buildResupply(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := co.Preview(ctx)
	if err != nil {
		return nil, err
	}
	supplierLabel, storekeeperLabel := s.ResupplyLabels(ctx, req.StorekeeperID, req.SupplierID)
	return &ResupplyPreviewResult{Preview: p, SupplierLabel: supplierLabel, StorekeeperLabel: storekeeperLabel}, nil
}

func (s *appService) ConfirmResupply(ctx context.Context, req ResupplyRequest) (*ResupplyOrderResult, error) {
	co, err := s.buildResupply(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := co.Preview(ctx); err != nil {
		return nil, err
	}
	return s.CompleteResupply(ctx, co)
}

// ── Orders ────────────────────────────────────────────────────────────────────

func (s *appService) describeSale(o core.SalesOrder) core.SalesOrderView {
	return core.DescribeSalesOrder(o, s.state.Catalog, s.state.Customers, s.state.Users)
}

func (s *appService) describeResupply(o core.ResupplyOrder) core.ResupplyOrderView {
	return core.DescribeResupplyOrder(o, s.state.Catalog, s.state.Suppliers, s.state.Users)
}

func (s *appService) salesViews(orders []core.SalesOrder) *SalesOrderListResult {
	views := make([]core.SalesOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, s.describeSale(o))
	}
	return &SalesOrderListResult{Orders: views}
}

func (s *appService) resupplyViews(orders []core.ResupplyOrder) *ResupplyOrderListResult {
	views := make([]core.ResupplyOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, s.describeResupply(o))
	}
	return &ResupplyOrderListResult{Orders: views}
}

func (s *appService) ListSalesOrders(ctx context.Context) (*SalesOrderListResult, error) {
	return s.salesViews(s.state.Ledger.Sales()), nil
}

func (s *appService) GetSalesOrder(ctx context.Context, number int) (*SalesOrderResult, error) {
	o, err := s.state.Ledger.SaleByNumber(number)
	if err != nil {
		return nil, err
	}
	return &SalesOrderResult{Order: s.describeSale(o)}, nil
}

func (s *appService) ListResupplyOrders(ctx context.Context) (*ResupplyOrderListResult, error) {
	return s.resupplyViews(s.state.Ledger.Resupplies()), nil
}

func (s *appService) GetResupplyOrder(ctx context.Context, number int) (*ResupplyOrderResult, error) {
	o, err := s.state.Ledger.ResupplyByNumber(number)
	if err != nil {
		return nil, err
	}
	return &ResupplyOrderResult{Order: s.describeResupply(o)}, nil
}

func (s *appService) CustomerHistory(ctx context.Context, customerID int) (*SalesOrderListResult, error) {
	return s.salesViews(s.state.Ledger.SalesForCustomer(customerID)), nil
}

func (s *appService) SupplierHistory(ctx context.Context, supplierID int) (*ResupplyOrderListResult, error) {
	return s.resupplyViews(s.state.Ledger.ResuppliesForSupplier(supplierID)), nil
}

// ── Persistence ───────────────────────────────────────────────────────────────

func (s *appService) Save(ctx context.Context) error {
	if s.rows == nil {
		return fmt.Errorf("no row store configured")
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	snap := s.state.Snapshot()
	s.mu.Unlock()

	if err := s.rows.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.logger.Debug("state saved",
		zap.Int("products", len(snap.Products)),
		zap.Int("sales_orders", len(snap.SalesOrders)),
		zap.Int("resupply_orders", len(snap.ResupplyOrders)),
	)
	return nil
}

// persist saves after a mutation when auto-save is on. A failed save is
// logged, not returned: the in-memory change has already happened. The save
// outlives the caller's cancellation.
func (s *appService) persist(ctx context.Context) {
	if !s.autoSave || s.rows == nil {
		return
	}
	if err := s.Save(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("auto-save failed", zap.Error(err))
	}
}

func (s *appService) LoadReport() *core.LoadReport {
	return s.report
}
