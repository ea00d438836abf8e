package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// invalidBody respuesta para cuerpos que no se pueden decodificar.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// unauthorized responde 401 con el desafío Bearer. El mensaje es el mismo para toda causa.
func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: message})
}

// writeError traduce errores de dominio a status y código estables. Los errores no
// reconocidos se registran y salen como INTERNAL sin el texto original.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "identificador inválido"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrUnauthenticated):
		return unauthorized(c, "no autenticado")
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	ev := log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", logger.RequestID(c))
	if u := GetPrincipal(c); u != nil {
		ev = ev.Str("username", u.Username)
	}
	ev.Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}
