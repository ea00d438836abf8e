package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. SKU es único e inmutable; Quantity nunca es negativa.
type Product struct {
	ID          string
	Name        string
	Type        string // categoría
	SKU         string
	ImageURL    *string
	Description *string
	Quantity    int
	Price       decimal.Decimal // NUMERIC(10,2), > 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
