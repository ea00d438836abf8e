package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// ProductUseCase casos de uso para productos. Valida y parsea identificadores antes de tocar el repositorio.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo producto. El chequeo previo de SKU es solo un atajo; el constraint único decide.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductCreatedResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Type:        in.Type,
		SKU:         in.SKU,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Quantity:    in.QuantityOrDefault(),
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return &dto.ProductCreatedResponse{
		ProductID: product.ID,
		Message:   "producto creado correctamente",
	}, nil
}

// List devuelve la página pedida ordenada por nombre. Una página fuera de rango devuelve lista vacía.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	if page.Page < 1 {
		return nil, fmt.Errorf("%w: page debe ser >= 1", domain.ErrValidation)
	}
	if page.Size < 1 || page.Size > dto.MaxPageSize {
		return nil, fmt.Errorf("%w: size debe estar entre 1 y %d", domain.ErrValidation, dto.MaxPageSize)
	}
	// un offset que no cabe en int queda, por definición, más allá de la última página
	if page.Page-1 > math.MaxInt/page.Size {
		return []dto.ProductResponse{}, nil
	}
	list, err := uc.repo.List(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, rawID string) (*dto.ProductResponse, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// UpdateQuantity fija la cantidad. Es una sola escritura: entre dos actualizaciones concurrentes gana la última.
func (uc *ProductUseCase) UpdateQuantity(ctx context.Context, rawID string, in dto.UpdateQuantityRequest) (*dto.ProductResponse, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	product, err := uc.repo.UpdateQuantity(ctx, id, *in.Quantity)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// parseID normaliza el identificador; un formato inválido se distingue de un recurso inexistente.
func parseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.ErrInvalidIdentifier
	}
	return id.String(), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		SKU:         p.SKU,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price.StringFixed(2),
	}
}
