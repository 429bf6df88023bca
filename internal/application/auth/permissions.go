package auth

import "github.com/jhoicas/erp-api/internal/application/ports"

// Roles reconocidos en el claim "role" del token.
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"
	RoleBodeguero = "bodeguero"
)

// StaticPermissions implementa ports.PermissionChecker con una tabla fija rol → acciones.
// admin tiene todas las acciones; un rol desconocido no tiene ninguna.
type StaticPermissions struct {
	table map[string]map[string]bool
}

var _ ports.PermissionChecker = (*StaticPermissions)(nil)

// NewStaticPermissions construye la tabla por defecto.
func NewStaticPermissions() *StaticPermissions {
	return &StaticPermissions{table: map[string]map[string]bool{
		RoleVendedor: set(
			ports.ActionSalesCreate,
			ports.ActionSalesRead,
			ports.ActionSalesNotes,
			ports.ActionSalesPayments,
			ports.ActionDispatchCreate,
			ports.ActionInventoryRead,
			ports.ActionCatalogRead,
		),
		RoleBodeguero: set(
			ports.ActionDispatchCreate,
			ports.ActionSalesRead,
			ports.ActionPurchasesWrite,
			ports.ActionPurchasesRead,
			ports.ActionInventoryAdjust,
			ports.ActionInventoryRead,
			ports.ActionCatalogRead,
		),
	}}
}

// HasPermission implementa ports.PermissionChecker.
func (p *StaticPermissions) HasPermission(role, action string) bool {
	if role == RoleAdmin {
		return true
	}
	return p.table[role][action]
}

func set(actions ...string) map[string]bool {
	m := make(map[string]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}
