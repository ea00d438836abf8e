package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada uno tiene un status HTTP estable.
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrInvalidIdentifier = errors.New("identificador con formato inválido")
	ErrConflict          = errors.New("conflicto con un recurso existente")
	ErrUnauthenticated   = errors.New("no autenticado")
	ErrNotFound          = errors.New("recurso no encontrado")
)
