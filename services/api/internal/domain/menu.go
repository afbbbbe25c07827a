package domain

// MenuEntry is a dashboard section visible to a set of roles.
type MenuEntry struct {
	ID    string
	Label string
	Roles []Role
}

func (e MenuEntry) VisibleTo(role Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var menu = []MenuEntry{
	{ID: "dashboard", Label: "Dashboard", Roles: []Role{RoleAdmin, RoleClient, RoleSupplier}},
	{ID: "quotes", Label: "Cotações", Roles: []Role{RoleAdmin, RoleClient, RoleSupplier}},
	{ID: "orders", Label: "Pedidos", Roles: []Role{RoleAdmin, RoleClient}},
	{ID: "products", Label: "Produtos", Roles: []Role{RoleAdmin}},
	{ID: "users", Label: "Usuários", Roles: []Role{RoleAdmin}},
}

// MenuFor returns the menu entries visible to role, in display order.
func MenuFor(role Role) []MenuEntry {
	out := make([]MenuEntry, 0, len(menu))
	for _, e := range menu {
		if e.VisibleTo(role) {
			out = append(out, e)
		}
	}
	return out
}
