package console

import (
	"context"

	"github.com/JonMunkholm/shopkeep/internal/core"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label  string
	Action func(ctx context.Context) error
}

type Menu struct {
	Title string
	Items []MenuItem
}

/* ----------------------------------------
	MENU DEFINITIONS
---------------------------------------- */

func (c *Console) mainMenu() *Menu {
	return &Menu{
		Title: "E-Commerce System Menu",
		Items: []MenuItem{
			{Label: "Admin Login", Action: c.adminLogin},
			{Label: "Customer Login", Action: c.customerLogin},
			{Label: "Register as Customer", Action: c.register},
			{Label: "Exit", Action: c.exit},
		},
	}
}

// roleMenu lists the role's actions in the order the role declares them.
func (c *Console) roleMenu(role core.Role) *Menu {
	title := "Customer Menu"
	if role.Kind() == core.RoleAdmin {
		title = "Admin Menu"
	}

	menu := &Menu{Title: title}
	for _, action := range role.Actions() {
		menu.Items = append(menu.Items, MenuItem{
			Label:  actionLabel(role.Kind(), action),
			Action: c.handler(role.Kind(), action),
		})
	}
	return menu
}

func actionLabel(kind core.RoleKind, action core.Action) string {
	if action == core.ActionLogout {
		if kind == core.RoleAdmin {
			return "Log Out (Admin)"
		}
		return "Log Out (Customer)"
	}
	return string(action)
}

func (c *Console) handler(kind core.RoleKind, action core.Action) func(ctx context.Context) error {
	switch action {
	case core.ActionAddProduct:
		return c.addProduct
	case core.ActionUploadCSV:
		return c.uploadCatalog
	case core.ActionSaveCSV:
		return c.saveCatalog
	case core.ActionBrowse:
		return c.browse
	case core.ActionAddToCart:
		return c.addToCart
	case core.ActionCheckout:
		return c.checkout
	case core.ActionSaveAccount:
		return c.saveAccount
	case core.ActionViewOrders:
		return c.viewOrders
	case core.ActionLogout:
		if kind == core.RoleAdmin {
			return c.logoutAdmin
		}
		return c.logoutCustomer
	}
	return func(context.Context) error { return core.ErrInvalidMenuChoice }
}
