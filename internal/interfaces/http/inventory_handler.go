package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler maneja ajustes, transferencias y consultas de stock.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Suma QuantityChange (positivo o negativo) al nivel de la bodega. Se permite stock negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "Ajuste"
// @Success      200   {object}  dto.InventoryLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Adjust(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// BulkAdjust godoc
// @Summary      Ajuste masivo por conteo físico
// @Description  Cada línea fija la cantidad absoluta; se registra la diferencia contra el stock actual.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "Conteo"
// @Success      200   {object}  dto.BulkAdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust/bulk [post]
func (h *InventoryHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.BulkAdjust(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir stock entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Transferencia"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Transfer(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Levels godoc
// @Summary      Consultar stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId    query  int   false  "Producto"
// @Param        warehouseId  query  int   false  "Bodega"
// @Param        includeZero  query  bool  false  "Incluir niveles en cero"
// @Success      200  {array}  dto.InventoryLevelResponse
// @Router       /api/inventory/levels [get]
func (h *InventoryHandler) Levels(c *fiber.Ctx) error {
	q, err := levelQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListLevels(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar stock a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productId    query  int   false  "Producto"
// @Param        warehouseId  query  int   false  "Bodega"
// @Param        includeZero  query  bool  false  "Incluir niveles en cero"
// @Success      200  {file}  binary
// @Router       /api/inventory/levels/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	q, err := levelQuery(c)
	if err != nil {
		return err
	}
	data, filename, err := h.uc.ExportLevels(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// Transactions godoc
// @Summary      Log de transacciones de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId    query  int  false  "Producto"
// @Param        warehouseId  query  int  false  "Bodega"
// @Param        lotId        query  int  false  "Lote"
// @Param        limit        query  int  false  "Límite"  default(20)
// @Param        offset       query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.InventoryTransactionResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	q := dto.TransactionQuery{PageRequest: page}
	if q.ProductID, err = queryInt64(c, "productId", "product_id"); err != nil {
		return err
	}
	if q.WarehouseID, err = queryInt64(c, "warehouseId", "warehouse_id"); err != nil {
		return err
	}
	if q.LotID, err = queryInt64(c, "lotId", "lot_id"); err != nil {
		return err
	}
	out, err := h.uc.ListTransactions(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func levelQuery(c *fiber.Ctx) (dto.LevelQuery, error) {
	var (
		q   dto.LevelQuery
		err error
	)
	if q.ProductID, err = queryInt64(c, "productId", "product_id"); err != nil {
		return q, err
	}
	if q.WarehouseID, err = queryInt64(c, "warehouseId", "warehouse_id"); err != nil {
		return q, err
	}
	if q.IncludeZero, err = queryBool(c, "includeZero", "include_zero"); err != nil {
		return q, err
	}
	return q, nil
}
