package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shop-erp/internal/app"
)

const usage = "Available: products [query], customers, suppliers, orders, resupply-orders, " +
	"order <n>, resupply-order <n>, history-customer <id>, history-supplier <id>, load-report"

// Run executes a one-shot CLI command and writes its result to out as
// indented JSON. args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}

	var (
		result any
		err    error
	)
	switch args[0] {
	case "products":
		if len(args) > 1 {
			result, err = svc.SearchProducts(ctx, strings.Join(args[1:], " "))
		} else {
			result, err = svc.ListProducts(ctx)
		}
	case "customers":
		result, err = svc.ListCustomers(ctx)
	case "suppliers":
		result, err = svc.ListSuppliers(ctx)
	case "orders":
		result, err = svc.ListSalesOrders(ctx)
	case "resupply-orders":
		result, err = svc.ListResupplyOrders(ctx)
	case "order":
		var n int
		if n, err = idArg(args, "order <number>"); err == nil {
			result, err = svc.GetSalesOrder(ctx, n)
		}
	case "resupply-order":
		var n int
		if n, err = idArg(args, "resupply-order <number>"); err == nil {
			result, err = svc.GetResupplyOrder(ctx, n)
		}
	case "history-customer":
		var id int
		if id, err = idArg(args, "history-customer <customer-id>"); err == nil {
			result, err = svc.CustomerHistory(ctx, id)
		}
	case "history-supplier":
		var id int
		if id, err = idArg(args, "history-supplier <supplier-id>"); err == nil {
			result, err = svc.SupplierHistory(ctx, id)
		}
	case "load-report":
		result = svc.LoadReport()
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func idArg(args []string, usage string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: app %s", usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[1])
	}
	return n, nil
}
