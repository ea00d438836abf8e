package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/auth"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// LocalPrincipal key de Fiber Locals con el *entity.User autenticado.
const LocalPrincipal = "principal"

// AuthMiddleware exige un Bearer token válido de un principal existente antes de seguir la cadena.
func AuthMiddleware(authorizer *auth.Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authorizer.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return unauthorized(c, "token ausente, inválido o expirado")
			}
			return writeError(c, err)
		}
		c.Locals(LocalPrincipal, user)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal autenticado (nil fuera de rutas protegidas).
func GetPrincipal(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalPrincipal).(*entity.User)
	return u
}
