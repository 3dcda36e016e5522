package repl

import (
	"fmt"
	"io"
	"strings"

	"shop-erp/internal/app"
	"shop-erp/internal/core"
)

const rule = 72

func banner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", rule))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func closing(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func printProducts(w io.Writer, result *app.ProductListResult) {
	banner(w, "PRODUCTS")
	if len(result.Products) == 0 {
		fmt.Fprintln(w, "  No products found.")
		closing(w)
		return
	}
	fmt.Fprintf(w, "  %-6s %-36s %12s %10s\n", "ID", "NAME", "PRICE", "QTY")
	fmt.Fprintln(w, strings.Repeat("-", rule))
	for _, p := range result.Products {
		fmt.Fprintf(w, "  %-6d %-36s %12s %10d\n", p.ID, p.Name, p.SalePrice.StringFixed(2), p.Quantity)
	}
	closing(w)
}

func printCustomers(w io.Writer, result *app.CustomerListResult) {
	banner(w, "CUSTOMERS")
	if len(result.Customers) == 0 {
		fmt.Fprintln(w, "  No customers found.")
		closing(w)
		return
	}
	fmt.Fprintf(w, "  %-6s %-28s %-22s %s\n", "ID", "COMPANY", "ADDRESS", "TELEPHONE")
	fmt.Fprintln(w, strings.Repeat("-", rule))
	for _, c := range result.Customers {
		fmt.Fprintf(w, "  %-6d %-28s %-22s %s\n", c.ID, c.CompanyName, c.Address, c.Telephone)
	}
	closing(w)
}

func printSuppliers(w io.Writer, result *app.SupplierListResult) {
	banner(w, "SUPPLIERS")
	if len(result.Suppliers) == 0 {
		fmt.Fprintln(w, "  No suppliers found.")
		closing(w)
		return
	}
	fmt.Fprintf(w, "  %-6s %-28s %-22s %s\n", "ID", "NAME", "ADDRESS", "TELEPHONE")
	fmt.Fprintln(w, strings.Repeat("-", rule))
	for _, s := range result.Suppliers {
		fmt.Fprintf(w, "  %-6d %-28s %-22s %s\n", s.ID, s.Name, s.Address, s.Telephone)
	}
	closing(w)
}

func printSalePreview(w io.Writer, p *core.SalesPreview, customerLabel, cashierLabel string) {
	banner(w, "SALES ORDER PREVIEW")
	fmt.Fprintf(w, "  Customer : %s\n", customerLabel)
	fmt.Fprintf(w, "  Cashier  : %s\n", cashierLabel)
	fmt.Fprintln(w, strings.Repeat("-", rule))
	fmt.Fprintf(w, "  %-6s %-30s %8s %10s %12s\n", "ID", "PRODUCT", "QTY", "PRICE", "LINE TOTAL")
	for _, l := range p.Lines {
		fmt.Fprintf(w, "  %-6d %-30s %8d %10s %12s\n",
			l.ProductID, l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2))
	}
	fmt.Fprintln(w, strings.Repeat("-", rule))
	fmt.Fprintf(w, "  %-57s %12s\n", "TOTAL", p.Total.StringFixed(2))
	closing(w)
}

func printResupplyPreview(w io.Writer, p *core.ResupplyPreview, supplierLabel, storekeeperLabel string) {
	banner(w, "RESUPPLY ORDER PREVIEW")
	fmt.Fprintf(w, "  Supplier    : %s\n", supplierLabel)
	fmt.Fprintf(w, "  Storekeeper : %s\n", storekeeperLabel)
	fmt.Fprintln(w, strings.Repeat("-", rule))
	fmt.Fprintf(w, "  %-6s %-30s %8s\n", "ID", "PRODUCT", "QTY")
	for _, l := range p.Lines {
		fmt.Fprintf(w, "  %-6d %-30s %8d\n", l.ProductID, l.Name, l.Quantity)
	}
	fmt.Fprintln(w, strings.Repeat("-", rule))
	fmt.Fprintf(w, "  Units      : %d\n", p.TotalQuantity)
	fmt.Fprintf(w, "  Total cost : %s\n", p.TotalCost.StringFixed(2))
	closing(w)
}

func printLines(w io.Writer, lines []core.OrderLineView) {
	for _, l := range lines {
		fmt.Fprintf(w, "    %-6d %-48s x%d\n", l.ProductID, l.Name, l.Quantity)
	}
}

// PrintSalesOrder writes one sales order with resolved names.
func PrintSalesOrder(w io.Writer, o core.SalesOrderView) {
	fmt.Fprintf(w, "  Order #%d  %s  total %s\n", o.Number, o.Date, o.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "    Customer: %s", o.CustomerLabel)
	if o.CustomerAddr != "" {
		fmt.Fprintf(w, " (%s)", o.CustomerAddr)
	}
	fmt.Fprintf(w, "\n    Cashier: %s\n", o.CashierLabel)
	printLines(w, o.Lines)
}

// PrintResupplyOrder writes one resupply order with resolved names.
func PrintResupplyOrder(w io.Writer, o core.ResupplyOrderView) {
	fmt.Fprintf(w, "  Resupply #%d  %s  total %s\n", o.Number, o.Date, o.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "    Supplier: %s", o.SupplierLabel)
	if o.SupplierAddr != "" {
		fmt.Fprintf(w, " (%s)", o.SupplierAddr)
	}
	fmt.Fprintf(w, "\n    Storekeeper: %s\n", o.StorekeeperLabel)
	printLines(w, o.Lines)
}

// PrintSalesOrders writes a list of sales orders under title.
func PrintSalesOrders(w io.Writer, title string, result *app.SalesOrderListResult) {
	banner(w, title)
	if len(result.Orders) == 0 {
		fmt.Fprintln(w, "  No orders found.")
	}
	for _, o := range result.Orders {
		PrintSalesOrder(w, o)
	}
	closing(w)
}

// PrintResupplyOrders writes a list of resupply orders under title.
func PrintResupplyOrders(w io.Writer, title string, result *app.ResupplyOrderListResult) {
	banner(w, title)
	if len(result.Orders) == 0 {
		fmt.Fprintln(w, "  No orders found.")
	}
	for _, o := range result.Orders {
		PrintResupplyOrder(w, o)
	}
	closing(w)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Commands:
  /products [query]            List products, optionally filtered by name
  /customers                   List registered customers
  /suppliers                   List suppliers
  /sell <cashier-id> [cust-id] Start a sale (no customer id means guest)
  /resupply <storekeeper-id> <supplier-id>
                               Record a delivery from a supplier
  /orders                      List sales orders
  /resupply-orders             List resupply orders
  /order <n>                   Show one sales order
  /resupply-order <n>          Show one resupply order
  /history-customer <id>       Sales orders of a customer
  /history-supplier <id>       Resupply orders of a supplier
  /save                        Write all data to the store
  /help                        Show this help
  /exit                        Leave`)
}
