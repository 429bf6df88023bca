package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/sales"
)

// SalesHandler expone ventas, notas de crédito/débito, guías de despacho y pagos.
type SalesHandler struct {
	engine *sales.Engine
}

// NewSalesHandler construye el handler.
func NewSalesHandler(engine *sales.Engine) *SalesHandler {
	return &SalesHandler{engine: engine}
}

// Create godoc
// @Summary      Crear venta
// @Description  Registra la venta, descuenta stock y aplica los pagos en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.engine.CreateSale(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreditNote godoc
// @Summary      Crear nota de crédito
// @Description  Devuelve mercadería de una FACTURA o BOLETA. No permite devolver más de lo vendido.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "Nota de crédito"
// @Success      201   {object}  dto.CreditNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/credit-note [post]
func (h *SalesHandler) CreditNote(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.engine.CreateCreditNote(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DebitNote godoc
// @Summary      Crear nota de débito
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "Nota de débito"
// @Success      201   {object}  dto.DebitNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/debit-note [post]
func (h *SalesHandler) DebitNote(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.engine.CreateDebitNote(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GuiaDespacho godoc
// @Summary      Crear guía de despacho
// @Description  Requiere correlativo GUIA_DESPACHO activo; sin él responde 422.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGuiaDespachoRequest  true  "Guía de despacho"
// @Success      201   {object}  dto.GuiaDespachoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/guia-despacho [post]
func (h *SalesHandler) GuiaDespacho(c *fiber.Ctx) error {
	var in dto.CreateGuiaDespachoRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.engine.CreateGuiaDespacho(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApplyPayments godoc
// @Summary      Aplicar pagos a una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la venta"
// @Param        body  body  dto.ApplyPaymentsRequest  true  "Pagos"
// @Success      200   {object}  dto.PaymentStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [post]
func (h *SalesHandler) ApplyPayments(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ApplyPaymentsRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.engine.ApplyPayments(c.UserContext(), GetCompanyID(c), GetEmployeeID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        documentType  query  string  false  "Tipo de documento"
// @Param        customerId    query  int     false  "Cliente"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	q := dto.SaleListRequest{PageRequest: page}
	_, q.DocumentType = queryValue(c, "documentType", "document_type")
	if q.CustomerID, err = queryInt64(c, "customerId", "customer_id"); err != nil {
		return err
	}
	if q.From, err = queryTime(c, "from"); err != nil {
		return err
	}
	if q.To, err = queryTime(c, "to"); err != nil {
		return err
	}
	out, err := h.engine.ListSales(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con detalle y pagos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.engine.GetSale(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar documento de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SalesHandler) PDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	pdf, filename, err := h.engine.SalePDF(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
