package ports

// Acciones protegidas por permiso.
const (
	ActionSalesCreate     = "sales.create"
	ActionSalesRead       = "sales.read"
	ActionSalesNotes      = "sales.notes"
	ActionSalesPayments   = "sales.payments"
	ActionDispatchCreate  = "dispatch.create"
	ActionPurchasesWrite  = "purchases.write"
	ActionPurchasesRead   = "purchases.read"
	ActionInventoryAdjust = "inventory.adjust"
	ActionInventoryRead   = "inventory.read"
	ActionCatalogWrite    = "catalog.write"
	ActionCatalogRead     = "catalog.read"
	ActionSequencesManage = "sequences.manage"
)

// PermissionChecker decide si un rol puede ejecutar una acción.
type PermissionChecker interface {
	HasPermission(role, action string) bool
}
