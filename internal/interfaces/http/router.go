package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/auth"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	Authorizer *auth.Authorizer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	// Products (protegido)
	products := app.Group("/products", AuthMiddleware(deps.Authorizer))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/quantity", productHandler.UpdateQuantity)
	products.Delete("/:id", productHandler.Delete)
}
