package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create inserta el usuario; un username repetido devuelve domain.ErrConflict,
	// también cuando la colisión la detecta el constraint único de la base.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername devuelve (nil, nil) si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
