package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
// Un TxRunner entrega un Repos nuevo por transacción; todo lo que se escriba
// a través de él se confirma o se revierte junto.
type Repos struct {
	Products        ProductRepository
	Warehouses      WarehouseRepository
	Customers       CustomerRepository
	Suppliers       SupplierRepository
	Sales           SaleRepository
	PurchaseOrders  PurchaseOrderRepository
	GoodsReceipts   GoodsReceiptRepository
	DirectPurchases DirectPurchaseRepository
	Inventory       InventoryRepository
	Sequences       DocumentSequenceRepository
	Lots            LotRepository
}
