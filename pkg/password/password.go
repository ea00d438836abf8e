package password

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword   = errors.New("password: contraseña vacía")
	ErrPasswordTooLong = errors.New("password: la contraseña supera 72 bytes")
)

// BcryptHasher hashea contraseñas con bcrypt (sal aleatoria, costo adaptativo).
type BcryptHasher struct {
	cost  int
	decoy string
}

// NewBcryptHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h := &BcryptHasher{cost: cost}

	// hash señuelo con el mismo costo, para igualar tiempos cuando el usuario no existe
	decoy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, fmt.Errorf("password: generar hash señuelo: %w", err)
	}
	h.decoy = string(decoy)
	return h, nil
}

// Cost devuelve el costo efectivo.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash devuelve el hash bcrypt de la contraseña.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("password: generar hash: %w", err)
	}
	return string(hash), nil
}

// Verify indica si plaintext corresponde al hash. Un hash mal formado devuelve false.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DecoyHash devuelve un hash válido que no corresponde a ninguna contraseña conocida.
func (h *BcryptHasher) DecoyHash() string {
	return h.decoy
}
