package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/shopkeep/internal/config"
	"github.com/JonMunkholm/shopkeep/internal/logging"
)

// Session holds the active identities: at most one admin and at most one
// customer, independently.
type Session struct {
	ID       string
	admin    *Admin
	customer *Customer
}

// Admin returns the logged-in admin, if any.
func (s *Session) Admin() (*Admin, bool) {
	return s.admin, s.admin != nil
}

// Customer returns the logged-in customer, if any.
func (s *Session) Customer() (*Customer, bool) {
	return s.customer, s.customer != nil
}

// Anonymous reports whether no role is logged in.
func (s *Session) Anonymous() bool {
	return s.admin == nil && s.customer == nil
}

// Roles returns the active roles, admin first.
func (s *Session) Roles() []Role {
	var roles []Role
	if s.admin != nil {
		roles = append(roles, s.admin)
	}
	if s.customer != nil {
		roles = append(roles, s.customer)
	}
	return roles
}

// ImportReport summarises a catalog upload.
type ImportReport struct {
	Path     string
	Imported int
	Errors   []*ParseError
}

// App is the whole application state. Every operation goes through it; there
// are no package-level catalogs or ledgers.
type App struct {
	catalog     *Catalog
	ledger      *OrderLedger
	credentials *CredentialStore
	checkout    Checkout
	catalogPath string
	admin       config.AdminConfig
	session     Session
}

// NewApp wires an App from configuration. The catalog starts empty and the
// ledger is not reloaded from the order log.
func NewApp(cfg *config.Config) (*App, error) {
	policy, err := ParseZeroStockPolicy(cfg.Checkout.ZeroStockPolicy)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog(WithZeroStockPolicy(policy))
	ledger := NewOrderLedger()

	var orderLog *OrderLog
	if cfg.Store.OrderLogEnabled {
		orderLog = NewOrderLog(cfg.Store.OrderLogPath)
	}

	return &App{
		catalog:     catalog,
		ledger:      ledger,
		credentials: NewCredentialStore(cfg.Store.AccountsPath, cfg.Store.LockTimeout),
		checkout: Checkout{
			Catalog:        catalog,
			Ledger:         ledger,
			Log:            orderLog,
			DecrementStock: cfg.Checkout.DecrementStock,
		},
		catalogPath: cfg.Store.CatalogPath,
		admin:       cfg.Admin,
		session:     Session{ID: uuid.NewString()},
	}, nil
}

// Session returns the current session.
func (a *App) Session() *Session {
	return &a.session
}

// Catalog returns the running catalog.
func (a *App) Catalog() *Catalog {
	return a.catalog
}

// Ledger returns the order ledger.
func (a *App) Ledger() *OrderLedger {
	return a.ledger
}

// Context tags ctx with the session ID for logging.
func (a *App) Context(ctx context.Context) context.Context {
	return logging.ContextWithSessionID(ctx, a.session.ID)
}

/* ----------------------------------------
	Login / logout
---------------------------------------- */

// LoginAdmin checks username and password against the built-in admin pair.
func (a *App) LoginAdmin(ctx context.Context, username, password string) error {
	if username != a.admin.Username || password != a.admin.Password {
		logging.FromContext(ctx).Info("admin login rejected", "username", username)
		return fmt.Errorf("admin login: %w", ErrInvalidCredentials)
	}

	a.session.admin = &Admin{username: username}
	logging.FromContext(ctx).Info("admin logged in", "username", username)
	return nil
}

// LoginCustomer verifies against the credential store. A successful login
// replaces any customer already logged in, with a fresh cart.
func (a *App) LoginCustomer(ctx context.Context, username, password string) error {
	ok, err := a.credentials.Verify(username, password)
	if err != nil {
		return fmt.Errorf("customer login: %w", err)
	}
	if !ok {
		logging.FromContext(ctx).Info("customer login rejected", "username", username)
		return fmt.Errorf("customer login: %w", ErrInvalidCredentials)
	}

	a.session.customer = &Customer{username: username, password: password}
	logging.FromContext(ctx).Info("customer logged in", "username", username)
	return nil
}

// Register creates a customer account and logs it in.
func (a *App) Register(ctx context.Context, username, password string) error {
	if err := a.credentials.Register(ctx, username, password); err != nil {
		return err
	}

	a.session.customer = &Customer{username: username, password: password}
	logging.FromContext(ctx).Info("customer registered", "username", username)
	return nil
}

// LogoutAdmin ends the admin role. The customer, if any, stays logged in.
func (a *App) LogoutAdmin(ctx context.Context) error {
	if _, err := a.requireAdmin(); err != nil {
		return err
	}
	a.session.admin = nil
	logging.FromContext(ctx).Info("admin logged out")
	return nil
}

// LogoutCustomer ends the customer role and discards the cart.
func (a *App) LogoutCustomer(ctx context.Context) error {
	c, err := a.requireCustomer()
	if err != nil {
		return err
	}
	if n := c.cart.Len(); n > 0 {
		logging.FromContext(ctx).Info("cart discarded on logout", "items", n)
	}
	a.session.customer = nil
	logging.FromContext(ctx).Info("customer logged out", "username", c.username)
	return nil
}

/* ----------------------------------------
	Admin operations
---------------------------------------- */

// AddProduct validates and appends a product to the catalog.
func (a *App) AddProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (Product, error) {
	if _, err := a.requireAdmin(); err != nil {
		return Product{}, err
	}

	p, err := NewProduct(name, price, stock)
	if err != nil {
		return Product{}, err
	}

	a.catalog.Add(p)
	logging.FromContext(ctx).Info("product added", "product", p.Name, "price", p.Price.String(), "stock", p.Stock)
	return p, nil
}

// UploadCatalog imports the catalog CSV and appends its products to the
// running catalog. Malformed lines are skipped and listed in the report.
// If the file cannot be opened the catalog is unchanged.
func (a *App) UploadCatalog(ctx context.Context) (ImportReport, error) {
	if _, err := a.requireAdmin(); err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Path: a.catalogPath}
	imported, parseErrs, err := ImportCatalog(a.catalogPath)
	if err != nil {
		return report, err
	}

	report.Imported = a.catalog.Append(imported)
	report.Errors = parseErrs

	logger := logging.FromContext(ctx)
	for _, pe := range parseErrs {
		logger.Warn("skipped malformed catalog line", "path", a.catalogPath, "line", pe.LineNumber, "reason", pe.Reason)
	}
	logger.Info("catalog uploaded", "path", a.catalogPath, "imported", report.Imported, "skipped", len(parseErrs))

	return report, nil
}

// SaveCatalog overwrites the catalog CSV with the running catalog.
func (a *App) SaveCatalog(ctx context.Context) error {
	if _, err := a.requireAdmin(); err != nil {
		return err
	}

	if err := ExportCatalog(a.catalog, a.catalogPath); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("catalog saved", "path", a.catalogPath, "products", a.catalog.Len())
	return nil
}

// CatalogPath is where UploadCatalog and SaveCatalog read and write.
func (a *App) CatalogPath() string {
	return a.catalogPath
}

/* ----------------------------------------
	Customer operations
---------------------------------------- */

// Browse returns the catalog in order.
func (a *App) Browse(ctx context.Context) ([]Product, error) {
	if _, err := a.requireCustomer(); err != nil {
		return nil, err
	}
	return a.catalog.Browse(), nil
}

// AddToCart looks name up in the catalog (first match) and adds a copy of
// its name and current price to the customer's cart. Unlike a bare name
// reference, an unknown name is rejected with ErrProductNotFound and the
// cart is left unchanged.
func (a *App) AddToCart(ctx context.Context, name string) (CartItem, error) {
	c, err := a.requireCustomer()
	if err != nil {
		return CartItem{}, err
	}

	p, ok := a.catalog.Find(name)
	if !ok {
		return CartItem{}, fmt.Errorf("add %q to cart: %w", name, ErrProductNotFound)
	}

	item := CartItem{Name: p.Name, Price: p.Price}
	c.cart.Add(item)
	logging.FromContext(ctx).Debug("added to cart", "product", p.Name, "cart_items", c.cart.Len())
	return item, nil
}

// Checkout places an order for the customer's cart. See Checkout.Run for
// the failure semantics.
func (a *App) Checkout(ctx context.Context) (Order, error) {
	c, err := a.requireCustomer()
	if err != nil {
		return Order{}, err
	}
	return a.checkout.Run(ctx, c.username, &c.cart)
}

// SaveAccount appends the customer's credentials to the store
// unconditionally.
func (a *App) SaveAccount(ctx context.Context) error {
	c, err := a.requireCustomer()
	if err != nil {
		return err
	}
	if err := a.credentials.SaveCredential(ctx, c.username, c.password); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("account saved", "username", c.username, "path", a.credentials.Path())
	return nil
}

// Orders returns the orders the logged-in customer placed in this process.
func (a *App) Orders(ctx context.Context) ([]Order, error) {
	c, err := a.requireCustomer()
	if err != nil {
		return nil, err
	}
	return a.ledger.ForCustomer(c.username), nil
}

func (a *App) requireAdmin() (*Admin, error) {
	if a.session.admin == nil {
		return nil, fmt.Errorf("%w: admin login required", ErrNotAuthorized)
	}
	return a.session.admin, nil
}

func (a *App) requireCustomer() (*Customer, error) {
	if a.session.customer == nil {
		return nil, fmt.Errorf("%w: customer login required", ErrNotAuthorized)
	}
	return a.session.customer, nil
}
