package dto

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// NUMERIC(10,2): como máximo 8 dígitos enteros.
var maxPrice = decimal.New(1, 8)

// CreateProductRequest entrada para crear un producto. Quantity omitida vale 0.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	SKU         string          `json:"sku"`
	ImageURL    *string         `json:"image_url"`
	Description *string         `json:"description"`
	Quantity    *int            `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Validate aplica los límites del modelo antes de tocar la base.
func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&r.Type, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.SKU, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.ImageURL, validation.RuneLength(0, 500)),
		validation.Field(&r.Description, validation.RuneLength(0, 1000)),
		validation.Field(&r.Quantity, validation.Min(0), validation.Max(math.MaxInt32)),
		validation.Field(&r.Price, validation.By(validPrice)),
	)
}

// QuantityOrDefault devuelve la cantidad pedida o 0.
func (r CreateProductRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 0
	}
	return *r.Quantity
}

func validPrice(value interface{}) error {
	p, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	switch {
	case !p.IsPositive():
		return errors.New("must be greater than 0")
	case !p.Equal(p.Round(2)):
		return errors.New("must have at most 2 decimal places")
	case p.GreaterThanOrEqual(maxPrice):
		return errors.New("must have at most 10 digits")
	}
	return nil
}

// UpdateQuantityRequest entrada para PUT /products/{id}/quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// Validate exige quantity presente, no negativa y dentro de INTEGER.
func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.NotNil, validation.Min(0), validation.Max(math.MaxInt32)),
	)
}

// ProductResponse vista de un producto. Price siempre con dos decimales.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	SKU         string  `json:"sku"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       string  `json:"price"`
}

// ProductCreatedResponse salida de POST /products.
type ProductCreatedResponse struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
}
