package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-tracker/internal/application/auth"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/pkg/config"
)

const keyPrefix = "principal:"

var _ auth.PrincipalCache = (*PrincipalCache)(nil)

// NewRedisClient crea el cliente a partir de la configuración.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// PrincipalCache guarda principales en Redis. Falla en modo seguro: cualquier error de Redis
// se comporta como un miss y la consulta sigue contra la base.
type PrincipalCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPrincipalCache construye la caché. ttl <= 0 deja las entradas sin expiración.
func NewPrincipalCache(client *redis.Client, ttl time.Duration) *PrincipalCache {
	return &PrincipalCache{client: client, ttl: ttl}
}

// cachedPrincipal no lleva el hash de la contraseña.
type cachedPrincipal struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Get devuelve el principal si está en caché.
func (c *PrincipalCache) Get(ctx context.Context, username string) (*entity.User, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, keyPrefix+username).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("caché de principales no disponible")
		}
		return nil, false
	}
	var p cachedPrincipal
	if err := json.Unmarshal(raw, &p); err != nil || p.Username != username {
		return nil, false
	}
	return &entity.User{ID: p.ID, Username: p.Username, CreatedAt: p.CreatedAt}, true
}

// Set guarda el principal; los errores se ignoran.
func (c *PrincipalCache) Set(ctx context.Context, user *entity.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	raw, err := json.Marshal(cachedPrincipal{ID: user.ID, Username: user.Username, CreatedAt: user.CreatedAt})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+user.Username, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo escribir en la caché de principales")
	}
}
