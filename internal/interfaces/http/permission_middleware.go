package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/ports"
)

// RequirePermission devuelve un middleware Fiber que verifica si el rol del token JWT
// puede ejecutar la acción. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 Unauthorized → no hay company_id o rol en el contexto.
//   - 403 Forbidden    → el rol no tiene la acción.
func RequirePermission(checker ports.PermissionChecker, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		if !checker.HasPermission(role, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene el permiso '" + action + "'",
			})
		}
		return c.Next()
	}
}
