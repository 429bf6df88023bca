// Package memory implementa todos los puertos de repositorio en memoria.
// Se usa con STORE_DRIVER=memory y en los tests de casos de uso: las transacciones
// se serializan con un mutex global y se revierten restaurando una copia del estado.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

type lotWarehouse struct {
	lotID       int64
	warehouseID int64
}

type state struct {
	nextID int64

	products   map[int64]*entity.Product
	warehouses map[int64]*entity.Warehouse
	customers  map[int64]*entity.Customer
	suppliers  map[int64]*entity.Supplier

	sales     map[int64]*entity.Sale
	saleItems map[int64]*entity.SaleItem
	payments  map[int64]*entity.Payment

	orders        map[int64]*entity.PurchaseOrder
	orderItems    map[int64]*entity.PurchaseOrderItem
	receipts      map[int64]*entity.GoodsReceipt
	receiptItems  map[int64]*entity.GoodsReceiptItem
	directs       map[int64]*entity.DirectPurchase
	directItems   map[int64]*entity.DirectPurchaseItem
	levels        map[int64]*entity.InventoryLevel
	transactions  []*entity.InventoryTransaction
	sequences     map[int64]*entity.DocumentSequence
	lots          map[int64]*entity.ProductLot
	lotQuantities map[lotWarehouse]decimal.Decimal
	serials       map[int64]*entity.ProductSerial
}

func newState() *state {
	return &state{
		products:      map[int64]*entity.Product{},
		warehouses:    map[int64]*entity.Warehouse{},
		customers:     map[int64]*entity.Customer{},
		suppliers:     map[int64]*entity.Supplier{},
		sales:         map[int64]*entity.Sale{},
		saleItems:     map[int64]*entity.SaleItem{},
		payments:      map[int64]*entity.Payment{},
		orders:        map[int64]*entity.PurchaseOrder{},
		orderItems:    map[int64]*entity.PurchaseOrderItem{},
		receipts:      map[int64]*entity.GoodsReceipt{},
		receiptItems:  map[int64]*entity.GoodsReceiptItem{},
		directs:       map[int64]*entity.DirectPurchase{},
		directItems:   map[int64]*entity.DirectPurchaseItem{},
		levels:        map[int64]*entity.InventoryLevel{},
		sequences:     map[int64]*entity.DocumentSequence{},
		lots:          map[int64]*entity.ProductLot{},
		lotQuantities: map[lotWarehouse]decimal.Decimal{},
		serials:       map[int64]*entity.ProductSerial{},
	}
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// clone copia el estado para poder revertir una transacción. Las entidades se copian
// por valor; los punteros internos (*int64, *time.Time) nunca se mutan en sitio.
func (s *state) clone() *state {
	lq := make(map[lotWarehouse]decimal.Decimal, len(s.lotQuantities))
	for k, v := range s.lotQuantities {
		lq[k] = v
	}
	return &state{
		nextID:        s.nextID,
		products:      cloneMap(s.products),
		warehouses:    cloneMap(s.warehouses),
		customers:     cloneMap(s.customers),
		suppliers:     cloneMap(s.suppliers),
		sales:         cloneMap(s.sales),
		saleItems:     cloneMap(s.saleItems),
		payments:      cloneMap(s.payments),
		orders:        cloneMap(s.orders),
		orderItems:    cloneMap(s.orderItems),
		receipts:      cloneMap(s.receipts),
		receiptItems:  cloneMap(s.receiptItems),
		directs:       cloneMap(s.directs),
		directItems:   cloneMap(s.directItems),
		levels:        cloneMap(s.levels),
		transactions:  append([]*entity.InventoryTransaction(nil), s.transactions...),
		sequences:     cloneMap(s.sequences),
		lots:          cloneMap(s.lots),
		lotQuantities: lq,
		serials:       cloneMap(s.serials),
	}
}

func cloneMap[T any](m map[int64]*T) map[int64]*T {
	out := make(map[int64]*T, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// values devuelve copias de las filas que cumplen keep, ordenadas por ID.
func values[T any](m map[int64]*T, keep func(*T) bool) []*T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyOf(m[id]))
	}
	return out
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return []*T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sameLot(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Store almacén en memoria. Es seguro para uso concurrente.
type Store struct {
	mu   sync.Mutex
	data *state
}

var _ ports.TxRunner = (*Store)(nil)

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Run ejecuta fn con acceso exclusivo al almacén. Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Repos devuelve repositorios fuera de transacción; cada llamada toma el mutex.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.Repos {
	h := handle{store: s, inTx: inTx}
	return repository.Repos{
		Products:        productRepo{h},
		Warehouses:      warehouseRepo{h},
		Customers:       customerRepo{h},
		Suppliers:       supplierRepo{h},
		Sales:           saleRepo{h},
		PurchaseOrders:  purchaseOrderRepo{h},
		GoodsReceipts:   goodsReceiptRepo{h},
		DirectPurchases: directPurchaseRepo{h},
		Inventory:       inventoryRepo{h},
		Sequences:       sequenceRepo{h},
		Lots:            lotRepo{h},
	}
}

// handle da acceso al estado; dentro de Run el mutex ya está tomado.
type handle struct {
	store *Store
	inTx  bool
}

func (h handle) lock() func() {
	if h.inTx {
		return func() {}
	}
	h.store.mu.Lock()
	return h.store.mu.Unlock
}

func (h handle) data() *state {
	return h.store.data
}
