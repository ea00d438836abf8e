// Package memory implementa los puertos de persistencia en memoria. Replica las garantías
// de la base (unicidad atómica de username y SKU, escrituras de cantidad atómicas) y se usa
// en pruebas de casos de uso y de HTTP.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

// UserRepo almacén de usuarios con índice único por username.
type UserRepo struct {
	mu         sync.Mutex
	byUsername map[string]entity.User
}

// NewUserRepository construye el almacén vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byUsername: make(map[string]entity.User)}
}

// Create inserta; el chequeo y la inserción ocurren bajo el mismo lock.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUsername[user.Username]; exists {
		return domain.ErrConflict
	}
	r.byUsername[user.Username] = *user
	return nil
}

// GetByUsername devuelve una copia o (nil, nil).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// ProductRepo almacén de productos con índice único por SKU.
type ProductRepo struct {
	mu    sync.Mutex
	byID  map[string]entity.Product
	skuID map[string]string
}

// NewProductRepository construye el almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{byID: make(map[string]entity.Product), skuID: make(map[string]string)}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.skuID[product.SKU]; exists {
		return domain.ErrConflict
	}
	if product.Quantity < 0 {
		return domain.ErrValidation
	}
	r.byID[product.ID] = *product
	r.skuID[product.SKU] = product.ID
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.skuID[sku]
	if !ok {
		return nil, nil
	}
	p := r.byID[id]
	return &p, nil
}

// List ordena por name y luego id, igual que la consulta SQL.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	all := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		p := p
		all = append(all, &p)
	}
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	if offset < 0 || offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, domain.ErrValidation
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Quantity = quantity
	r.byID[id] = p
	return &p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.skuID, p.SKU)
	return nil
}
