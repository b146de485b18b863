package core

// RoleKind identifies which slot of a Session a role occupies.
type RoleKind int

const (
	RoleAdmin RoleKind = iota + 1
	RoleCustomer
)

func (k RoleKind) String() string {
	switch k {
	case RoleAdmin:
		return "admin"
	case RoleCustomer:
		return "customer"
	default:
		return "none"
	}
}

// Action names an operation a role may perform. The console builds its
// menus from these.
type Action string

const (
	ActionAddProduct  Action = "Add Product"
	ActionUploadCSV   Action = "Upload Products from CSV"
	ActionSaveCSV     Action = "Save Product Catalog to CSV"
	ActionBrowse      Action = "Browse Products"
	ActionAddToCart   Action = "Add to Cart"
	ActionCheckout    Action = "Checkout"
	ActionSaveAccount Action = "Save Account"
	ActionViewOrders  Action = "View Orders"
	ActionLogout      Action = "Log Out"
)

var (
	adminActions = []Action{ActionAddProduct, ActionUploadCSV, ActionSaveCSV, ActionLogout}

	customerActions = []Action{
		ActionBrowse, ActionAddToCart, ActionCheckout, ActionSaveAccount, ActionViewOrders, ActionLogout,
	}
)

// Role is a logged-in identity. The set is closed: Admin and Customer.
type Role interface {
	Name() string
	Kind() RoleKind
	Actions() []Action
}

// Admin maintains the catalog.
type Admin struct {
	username string
}

func (a *Admin) Name() string   { return a.username }
func (a *Admin) Kind() RoleKind { return RoleAdmin }

func (a *Admin) Actions() []Action {
	return append([]Action(nil), adminActions...)
}

// Customer shops. The password is kept for the "save account" action.
type Customer struct {
	username string
	password string
	cart     Cart
}

func (c *Customer) Name() string   { return c.username }
func (c *Customer) Kind() RoleKind { return RoleCustomer }

func (c *Customer) Actions() []Action {
	return append([]Action(nil), customerActions...)
}

// Cart returns the customer's cart.
func (c *Customer) Cart() *Cart {
	return &c.cart
}
