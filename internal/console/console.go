// Package console is the interactive menu loop. It only reads input, calls
// into core.App and prints results; all record keeping lives in core.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/shopkeep/internal/core"
	"github.com/JonMunkholm/shopkeep/internal/logging"
)

// Console runs numbered menus over a line-oriented input stream.
type Console struct {
	app     *core.App
	in      *bufio.Scanner
	out     io.Writer
	running bool
}

// New returns a console reading choices from in and printing to out.
func New(app *core.App, in io.Reader, out io.Writer) *Console {
	return &Console{
		app: app,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loops until the user exits or input ends. While nobody is logged in
// the main menu is shown; otherwise the admin menu and then the customer
// menu, for whichever roles are active. Errors from operations are printed
// and the loop continues; only a failing input stream ends it with an error.
func (c *Console) Run(ctx context.Context) error {
	ctx = c.app.Context(ctx)
	c.running = true

	for c.running {
		session := c.app.Session()

		if session.Anonymous() {
			if err := c.runMenu(ctx, c.mainMenu()); err != nil {
				return endOfInput(err)
			}
			continue
		}

		for _, role := range session.Roles() {
			if err := c.runMenu(ctx, c.roleMenu(role)); err != nil {
				return endOfInput(err)
			}
		}
	}

	return nil
}

// endOfInput treats EOF as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) runMenu(ctx context.Context, menu *Menu) error {
	c.printf("\n%s:\n", menu.Title)
	for i, item := range menu.Items {
		c.printf("%d. %s\n", i+1, item.Label)
	}

	input, err := c.prompt("Enter your choice: ")
	if err != nil {
		return err
	}

	choice, convErr := strconv.Atoi(strings.TrimSpace(input))
	if convErr != nil || choice < 1 || choice > len(menu.Items) {
		c.report(ctx, fmt.Errorf("%w: %q", core.ErrInvalidMenuChoice, input))
		return nil
	}

	if err := menu.Items[choice-1].Action(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		c.report(ctx, err)
	}
	return nil
}

// prompt prints label and reads one line. io.EOF means input is exhausted.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

// report prints the user-facing message. Errors with no specific message
// are logged in full.
func (c *Console) report(ctx context.Context, err error) {
	logger := logging.FromContext(ctx)
	if core.IsUserFacing(err) {
		logger.Debug("operation failed", "error", err)
	} else {
		logger.Error("operation failed", "error", err)
	}
	c.printf("%s\n", core.FormatUserError(err))
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

/* ----------------------------------------
	MAIN MENU ACTIONS
---------------------------------------- */

func (c *Console) adminLogin(ctx context.Context) error {
	username, password, err := c.credentials("Enter Admin Username: ", "Enter Admin Password: ")
	if err != nil {
		return err
	}
	if err := c.app.LoginAdmin(ctx, username, password); err != nil {
		return err
	}
	c.printf("Admin login successful!\n")
	return nil
}

func (c *Console) customerLogin(ctx context.Context) error {
	username, password, err := c.credentials("Enter Customer Username: ", "Enter Customer Password: ")
	if err != nil {
		return err
	}
	if err := c.app.LoginCustomer(ctx, username, password); err != nil {
		return err
	}
	c.printf("Customer login successful!\n")
	return nil
}

func (c *Console) register(ctx context.Context) error {
	username, password, err := c.credentials("Enter new Customer Username: ", "Enter new Customer Password: ")
	if err != nil {
		return err
	}
	if err := c.app.Register(ctx, username, password); err != nil {
		return err
	}
	c.printf("Registration successful!\n")
	return nil
}

func (c *Console) exit(context.Context) error {
	c.running = false
	c.printf("Exiting the E-Commerce System.\n")
	return nil
}

func (c *Console) credentials(userLabel, passLabel string) (string, string, error) {
	username, err := c.prompt(userLabel)
	if err != nil {
		return "", "", err
	}
	password, err := c.prompt(passLabel)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

/* ----------------------------------------
	ADMIN ACTIONS
---------------------------------------- */

func (c *Console) addProduct(ctx context.Context) error {
	name, err := c.prompt("Enter product name: ")
	if err != nil {
		return err
	}
	priceText, err := c.prompt("Enter product price: ")
	if err != nil {
		return err
	}
	stockText, err := c.prompt("Enter product stock: ")
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(strings.TrimSpace(priceText))
	if err != nil {
		return fmt.Errorf("%w: price %q is not a number", core.ErrInvalidProduct, priceText)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(stockText))
	if err != nil {
		return fmt.Errorf("%w: stock %q is not a whole number", core.ErrInvalidProduct, stockText)
	}

	if _, err := c.app.AddProduct(ctx, name, price, stock); err != nil {
		return err
	}
	c.printf("Product added successfully.\n")
	return nil
}

func (c *Console) uploadCatalog(ctx context.Context) error {
	report, err := c.app.UploadCatalog(ctx)
	if err != nil {
		return err
	}
	for _, pe := range report.Errors {
		c.printf("Skipped line %d (%s): %s\n", pe.LineNumber, pe.Reason, pe.Line)
	}
	c.printf("Uploaded %d products from %s!\n", report.Imported, report.Path)
	return nil
}

func (c *Console) saveCatalog(ctx context.Context) error {
	if err := c.app.SaveCatalog(ctx); err != nil {
		return err
	}
	c.printf("Product catalog saved to %s!\n", c.app.CatalogPath())
	return nil
}

func (c *Console) logoutAdmin(ctx context.Context) error {
	if err := c.app.LogoutAdmin(ctx); err != nil {
		return err
	}
	c.printf("Admin logged out.\n")
	return nil
}

/* ----------------------------------------
	CUSTOMER ACTIONS
---------------------------------------- */

func (c *Console) browse(ctx context.Context) error {
	products, err := c.app.Browse(ctx)
	if err != nil {
		return err
	}
	c.printf("Product Catalog:\n")
	if len(products) == 0 {
		c.printf("(no products)\n")
	}
	for _, p := range products {
		c.printf("%s\n", p)
	}
	return nil
}

func (c *Console) addToCart(ctx context.Context) error {
	name, err := c.prompt("Enter product name to add to cart: ")
	if err != nil {
		return err
	}
	item, err := c.app.AddToCart(ctx, name)
	if err != nil {
		return err
	}
	c.printf("%s added to cart!\n", item.Name)
	return nil
}

func (c *Console) checkout(ctx context.Context) error {
	order, err := c.app.Checkout(ctx)
	if order.ID == "" {
		return err
	}

	c.printf("Order placed successfully!\n")
	if werr := core.WriteOrder(c.out, order); werr != nil {
		return werr
	}
	c.printf("Total: $%s\n", order.Total().StringFixed(2))

	// The order stands even if the order log could not be written
	return err
}

func (c *Console) saveAccount(ctx context.Context) error {
	if err := c.app.SaveAccount(ctx); err != nil {
		return err
	}
	c.printf("Account saved!\n")
	return nil
}

func (c *Console) viewOrders(ctx context.Context) error {
	orders, err := c.app.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		c.printf("No orders yet.\n")
		return nil
	}
	for _, o := range orders {
		if err := core.WriteOrder(c.out, o); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) logoutCustomer(ctx context.Context) error {
	if err := c.app.LogoutCustomer(ctx); err != nil {
		return err
	}
	c.printf("Customer logged out.\n")
	return nil
}
