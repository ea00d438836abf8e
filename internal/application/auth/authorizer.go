package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// TokenVerifier puerto de verificación de tokens (lo implementa *jwt.Service).
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// PrincipalCache caché opcional de principales por username. Los principales no cambian
// después de creados, así que una entrada nunca queda obsoleta; el TTL solo acota memoria.
type PrincipalCache interface {
	Get(ctx context.Context, username string) (*entity.User, bool)
	Set(ctx context.Context, user *entity.User)
}

// Authorizer es la única frontera de autorización: token Bearer válido y principal existente.
type Authorizer struct {
	tokens TokenVerifier
	users  repository.UserRepository
	cache  PrincipalCache
}

// NewAuthorizer construye el gate. cache puede ser nil.
func NewAuthorizer(tokens TokenVerifier, users repository.UserRepository, cache PrincipalCache) *Authorizer {
	return &Authorizer{tokens: tokens, users: users, cache: cache}
}

// BearerToken extrae el token de un header "Bearer <token>" (esquema sin distinguir mayúsculas).
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// Authorize resuelve el header Authorization a un principal. Header ausente, token inválido,
// expirado o mal formado y principal inexistente dan todos domain.ErrUnauthenticated;
// solo una falla de almacenamiento sale como error interno.
func (a *Authorizer) Authorize(ctx context.Context, authorizationHeader string) (*entity.User, error) {
	token, ok := BearerToken(authorizationHeader)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	username, err := a.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if a.cache != nil {
		if user, hit := a.cache.Get(ctx, username); hit {
			return user, nil
		}
	}
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar principal: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if a.cache != nil {
		a.cache.Set(ctx, user)
	}
	return user, nil
}
