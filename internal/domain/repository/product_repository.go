package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create devuelve domain.ErrConflict si el SKU ya existe.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID y GetBySKU devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// List ordena por name y luego id para que la paginación sea determinista.
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// UpdateQuantity es una escritura atómica (gana la última); domain.ErrNotFound si no existe.
	UpdateQuantity(ctx context.Context, id string, quantity int) (*entity.Product, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
