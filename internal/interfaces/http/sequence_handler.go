package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/sequence"
)

// SequenceHandler administración de correlativos de documentos.
type SequenceHandler struct {
	uc *sequence.UseCase
}

// NewSequenceHandler construye el handler.
func NewSequenceHandler(uc *sequence.UseCase) *SequenceHandler {
	return &SequenceHandler{uc: uc}
}

// List godoc
// @Summary      Listar correlativos
// @Tags         document-sequences
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SequenceResponse
// @Router       /api/document-sequences [get]
func (h *SequenceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear correlativo
// @Tags         document-sequences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSequenceRequest  true  "Correlativo"
// @Success      201   {object}  dto.SequenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/document-sequences [post]
func (h *SequenceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSequenceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar correlativo
// @Description  NextNumber solo puede avanzar.
// @Tags         document-sequences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del correlativo"
// @Param        body  body  dto.UpdateSequenceRequest  true  "Cambios"
// @Success      200   {object}  dto.SequenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/document-sequences/{id} [put]
func (h *SequenceHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateSequenceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
