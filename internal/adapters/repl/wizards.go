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

	"github.com/shopspring/decimal"
)

// basketFeeder is satisfied by both checkout kinds.
type basketFeeder interface {
	Feed(candidate core.BasketLine) (bool, error)
}

// readLine returns the next trimmed input line; ok is false at end of input.
func readLine(in *bufio.Reader) (string, bool) {
	raw, err := in.ReadString('\n')
	if err != nil && raw == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

// parseLine reads "<product-id> <quantity>". An empty line or a lone 0 ends
// the basket and is returned as the zero line.
func parseLine(raw string) (core.BasketLine, error) {
	parts := strings.Fields(raw)
	if len(parts) == 0 || (len(parts) == 1 && parts[0] == "0") {
		return core.BasketLine{}, nil
	}
	if len(parts) != 2 {
		return core.BasketLine{}, fmt.Errorf("use: <product-id> <quantity>")
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		return core.BasketLine{}, fmt.Errorf("invalid product id %q", parts[0])
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return core.BasketLine{}, fmt.Errorf("invalid quantity %q", parts[1])
	}
	return core.BasketLine{ProductID: id, Quantity: qty}, nil
}

// fillBasket prompts for lines until the basket is finished. Rejected lines
// are reported and asked for again. It returns false if the user cancelled.
func fillBasket(in *bufio.Reader, w io.Writer, f basketFeeder) bool {
	fmt.Fprintln(w, "Enter lines as <product-id> <quantity>. An empty line finishes, 'cancel' aborts.")
	n := 1
	for {
		fmt.Fprintf(w, "  Line %d: ", n)
		raw, ok := readLine(in)
		if !ok || strings.EqualFold(raw, "cancel") {
			return false
		}
		line, err := parseLine(raw)
		if err != nil {
			fmt.Fprintf(w, "  %v\n", err)
			continue
		}
		done, err := f.Feed(line)
		if err != nil {
			fmt.Fprintf(w, "  %s\n", describeLineError(err, line))
			continue
		}
		if done {
			return true
		}
		n++
	}
}

func describeLineError(err error, line core.BasketLine) string {
	var stockErr *core.StockError
	switch {
	case errors.As(err, &stockErr):
		return fmt.Sprintf("Only %d in stock for product %d, try again.", stockErr.Available, stockErr.ProductID)
	case errors.Is(err, core.ErrNotFound):
		return fmt.Sprintf("Product %d not found, try again.", line.ProductID)
	case errors.Is(err, core.ErrInvalidQuantity):
		return "Quantity must be greater than zero."
	}
	return err.Error()
}

// askYesNo repeats the question until it gets y or n. End of input is a no.
func askYesNo(in *bufio.Reader, w io.Writer, question string) bool {
	for {
		fmt.Fprintf(w, "%s (y/n): ", question)
		raw, ok := readLine(in)
		if !ok {
			return false
		}
		switch strings.ToLower(raw) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

// handleSale runs an interactive sale from basket to confirmation.
func handleSale(ctx context.Context, in *bufio.Reader, w io.Writer, svc app.ApplicationService, cashierID int, customer core.CustomerRef) error {
	co, err := svc.BeginSale(ctx, cashierID, customer)
	if err != nil {
		return err
	}
	if !fillBasket(in, w, co) {
		_ = co.Cancel()
		fmt.Fprintln(w, "Sale cancelled.")
		return nil
	}

	preview, err := co.Preview(ctx)
	if err != nil {
		return err
	}
	customerLabel, cashierLabel := svc.SaleLabels(ctx, co.CashierID(), co.Customer())
	printSalePreview(w, preview, customerLabel, cashierLabel)

	if !askYesNo(in, w, "Confirm order?") {
		_ = co.Cancel()
		fmt.Fprintln(w, "Sale cancelled.")
		return nil
	}
	result, err := svc.CompleteSale(ctx, co)
	if err != nil {
		return fmt.Errorf("sale not recorded: %w", err)
	}
	fmt.Fprintln(w, "Sale CONFIRMED.")
	PrintSalesOrder(w, result.Order)
	return nil
}

// handleResupply runs an interactive delivery from basket to confirmation.
func handleResupply(ctx context.Context, in *bufio.Reader, w io.Writer, svc app.ApplicationService, storekeeperID, supplierID int) error {
	co, err := svc.BeginResupply(ctx, storekeeperID, supplierID)
	if err != nil {
		return err
	}
	if !fillBasket(in, w, co) {
		_ = co.Cancel()
		fmt.Fprintln(w, "Resupply cancelled.")
		return nil
	}

	for {
		fmt.Fprint(w, "Total cost: ")
		raw, ok := readLine(in)
		if !ok {
			_ = co.Cancel()
			fmt.Fprintln(w, "Resupply cancelled.")
			return nil
		}
		cost, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Fprintf(w, "  invalid amount %q\n", raw)
			continue
		}
		if err := co.SetTotalCost(cost); err != nil {
			fmt.Fprintf(w, "  %v\n", err)
			continue
		}
		break
	}

	preview, err := co.Preview(ctx)
	if err != nil {
		return err
	}
	supplierLabel, storekeeperLabel := svc.ResupplyLabels(ctx, co.StorekeeperID(), co.SupplierID())
	printResupplyPreview(w, preview, supplierLabel, storekeeperLabel)

	if !askYesNo(in, w, "Confirm delivery?") {
		_ = co.Cancel()
		fmt.Fprintln(w, "Resupply cancelled.")
		return nil
	}
	result, err := svc.CompleteResupply(ctx, co)
	if err != nil {
		return fmt.Errorf("resupply not recorded: %w", err)
	}
	fmt.Fprintln(w, "Resupply CONFIRMED.")
	PrintResupplyOrder(w, result.Order)
	return nil
}
