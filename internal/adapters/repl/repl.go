package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shop-erp/internal/app"
	"shop-erp/internal/core"
)

var errExit = errors.New("exit")

// Run starts the interactive REPL loop. It reads commands from in until
// /exit or end of input and writes everything to out.
func Run(ctx context.Context, svc app.ApplicationService, in *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "Shop ERP")
	if report := svc.LoadReport(); !report.OK() {
		fmt.Fprintf(out, "Warning: %s\n", report)
	}
	fmt.Fprintln(out, "Type /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", rule))

	for {
		fmt.Fprint(out, "\n> ")
		input, ok := readLine(in)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		if input == "" {
			continue
		}
		if !strings.HasPrefix(input, "/") {
			fmt.Fprintln(out, "Commands start with /. Type /help for the list.")
			continue
		}
		if err := dispatch(ctx, svc, in, out, input); err != nil {
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func dispatch(ctx context.Context, svc app.ApplicationService, in *bufio.Reader, out io.Writer, input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "products", "p":
		var (
			result *app.ProductListResult
			err    error
		)
		if len(args) > 0 {
			result, err = svc.SearchProducts(ctx, strings.Join(args, " "))
		} else {
			result, err = svc.ListProducts(ctx)
		}
		if err != nil {
			return err
		}
		printProducts(out, result)

	case "customers":
		result, err := svc.ListCustomers(ctx)
		if err != nil {
			return err
		}
		printCustomers(out, result)

	case "suppliers":
		result, err := svc.ListSuppliers(ctx)
		if err != nil {
			return err
		}
		printSuppliers(out, result)

	case "sell", "sale":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /sell <cashier-id> [customer-id]")
			return nil
		}
		cashierID, err := atoiArg(args[0], "cashier id")
		if err != nil {
			return err
		}
		customer := core.GuestCustomer()
		if len(args) > 1 && !strings.EqualFold(args[1], "guest") {
			id, err := atoiArg(args[1], "customer id")
			if err != nil {
				return err
			}
			customer = core.RegisteredCustomer(id)
		}
		return handleSale(ctx, in, out, svc, cashierID, customer)

	case "resupply":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /resupply <storekeeper-id> <supplier-id>")
			return nil
		}
		storekeeperID, err := atoiArg(args[0], "storekeeper id")
		if err != nil {
			return err
		}
		supplierID, err := atoiArg(args[1], "supplier id")
		if err != nil {
			return err
		}
		return handleResupply(ctx, in, out, svc, storekeeperID, supplierID)

	case "orders":
		result, err := svc.ListSalesOrders(ctx)
		if err != nil {
			return err
		}
		PrintSalesOrders(out, "SALES ORDERS", result)

	case "resupply-orders":
		result, err := svc.ListResupplyOrders(ctx)
		if err != nil {
			return err
		}
		PrintResupplyOrders(out, "RESUPPLY ORDERS", result)

	case "order":
		n, err := requireID(args, "/order <number>")
		if err != nil {
			return err
		}
		result, err := svc.GetSalesOrder(ctx, n)
		if err != nil {
			return err
		}
		PrintSalesOrder(out, result.Order)

	case "resupply-order":
		n, err := requireID(args, "/resupply-order <number>")
		if err != nil {
			return err
		}
		result, err := svc.GetResupplyOrder(ctx, n)
		if err != nil {
			return err
		}
		PrintResupplyOrder(out, result.Order)

	case "history-customer":
		id, err := requireID(args, "/history-customer <customer-id>")
		if err != nil {
			return err
		}
		result, err := svc.CustomerHistory(ctx, id)
		if err != nil {
			return err
		}
		PrintSalesOrders(out, fmt.Sprintf("ORDERS OF CUSTOMER %d", id), result)

	case "history-supplier":
		id, err := requireID(args, "/history-supplier <supplier-id>")
		if err != nil {
			return err
		}
		result, err := svc.SupplierHistory(ctx, id)
		if err != nil {
			return err
		}
		PrintResupplyOrders(out, fmt.Sprintf("DELIVERIES FROM SUPPLIER %d", id), result)

	case "save":
		if err := svc.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Saved.")

	case "help", "h":
		printHelp(out)

	case "exit", "quit", "e", "q":
		return errExit

	default:
		fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

func atoiArg(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return n, nil
}

func requireID(args []string, usage string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return atoiArg(args[0], "id")
}
