package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/password"
)

// PasswordHasher puerto del hash de contraseñas (lo implementa *password.BcryptHasher).
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	DecoyHash() string
}

// TokenIssuer puerto de emisión de tokens (lo implementa *jwt.Service).
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
	TTL() time.Duration
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens, now: time.Now}
}

// Register crea un usuario. La consulta previa solo ahorra un bcrypt; quien decide la unicidad
// es el constraint de la base, cuya violación llega como el mismo domain.ErrConflict.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	existing, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) || errors.Is(err, password.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w: password: %v", domain.ErrValidation, err)
		}
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "usuario registrado correctamente"}, nil
}

// Login verifica username/password y emite un token. Usuario inexistente y contraseña
// incorrecta devuelven el mismo domain.ErrUnauthenticated y cuestan un bcrypt en ambos casos.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	user, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Verify(in.Password, uc.hasher.DecoyHash())
		return nil, domain.ErrUnauthenticated
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthenticated
	}
	ttl := uc.tokens.TTL()
	token, err := uc.tokens.Issue(user.Username, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   dto.TokenTypeBearer,
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}
