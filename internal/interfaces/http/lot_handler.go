package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
)

// LotHandler registro de lotes y números de serie.
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// CreateLot godoc
// @Summary      Crear lote
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Lote"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-lots [post]
func (h *LotHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateLot(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLots godoc
// @Summary      Listar lotes en orden FEFO
// @Description  Vencimiento más próximo primero; lotes sin vencimiento al final.
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        productId     query  int   true   "Producto"
// @Param        warehouseId   query  int   false  "Bodega"
// @Param        includeEmpty  query  bool  false  "Incluir lotes sin stock"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/product-lots [get]
func (h *LotHandler) ListLots(c *fiber.Ctx) error {
	productID, err := requiredProduct(c)
	if err != nil {
		return err
	}
	q := dto.LotQuery{ProductID: productID}
	if q.WarehouseID, err = queryInt64(c, "warehouseId", "warehouse_id"); err != nil {
		return err
	}
	if q.IncludeEmpty, err = queryBool(c, "includeEmpty", "include_empty"); err != nil {
		return err
	}
	out, err := h.uc.ListLots(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateSerial godoc
// @Summary      Registrar número de serie
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSerialRequest  true  "Serie"
// @Success      201   {object}  dto.SerialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-serials [post]
func (h *LotHandler) CreateSerial(c *fiber.Ctx) error {
	var in dto.CreateSerialRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateSerial(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSerials godoc
// @Summary      Listar números de serie
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        productId  query  int     true   "Producto"
// @Param        status     query  string  false  "InStock | Sold"
// @Success      200  {array}  dto.SerialResponse
// @Router       /api/product-serials [get]
func (h *LotHandler) ListSerials(c *fiber.Ctx) error {
	productID, err := requiredProduct(c)
	if err != nil {
		return err
	}
	_, status := queryValue(c, "status")
	out, err := h.uc.ListSerials(c.UserContext(), GetCompanyID(c), productID, status)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func requiredProduct(c *fiber.Ctx) (int64, error) {
	id, err := queryInt64(c, "productId", "product_id")
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, domain.Invalid("productId es obligatorio")
	}
	return *id, nil
}
