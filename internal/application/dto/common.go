package dto

// Valores por defecto y límites de paginación.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest paginación por número de página (base 1).
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// Offset devuelve cuántos registros se saltan.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// MessageResponse cuerpo simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
