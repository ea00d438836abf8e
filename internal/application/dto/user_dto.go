package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// TokenTypeBearer es el único tipo de token emitido.
const TokenTypeBearer = "bearer"

// RegisterRequest entrada para registro (password en texto, se hashea en el caso de uso).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate aplica los límites de longitud (en caracteres).
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.RuneLength(3, 50)),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(6, 0)),
	)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate solo exige presencia; los límites de registro no se revelan en login.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse salida del login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // segundos
}
