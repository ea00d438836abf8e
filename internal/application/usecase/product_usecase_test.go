package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// MockProductRepo implementa repository.ProductRepository.
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *MockProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) (*entity.Product, error) {
	args := m.Called(ctx, id, quantity)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const validID = "5f0c7b8e-3c8b-4d55-9d1e-4f7f5a2b9c01"

func intPtr(v int) *int { return &v }

func validCreate() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:  "Widget",
		Type:  "tools",
		SKU:   "SKU-1",
		Price: decimal.RequireFromString("9.99"),
	}
}

func TestCreate_CantidadPorDefectoCero(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	repo.On("GetBySKU", ctx, "SKU-1").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Quantity == 0 && p.SKU == "SKU-1" && p.ID != ""
	})).Return(nil)

	out, err := usecase.NewProductUseCase(repo).Create(ctx, validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ProductID)
	assert.NotEmpty(t, out.Message)
	repo.AssertExpectations(t)
}

func TestCreate_SKUDuplicado_AtajoPrevio(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	repo.On("GetBySKU", ctx, "SKU-1").Return(&entity.Product{ID: validID, SKU: "SKU-1"}, nil)

	_, err := usecase.NewProductUseCase(repo).Create(ctx, validCreate())
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_SKUDuplicado_ConstraintDeLaBase(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	// el chequeo previo no ve al competidor; el constraint lo rechaza igual
	repo.On("GetBySKU", ctx, "SKU-1").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)

	_, err := usecase.NewProductUseCase(repo).Create(ctx, validCreate())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_ValidacionAntesDeTocarLaBase(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}
	tests := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"precio cero", func(r *dto.CreateProductRequest) { r.Price = decimal.Zero }},
		{"precio negativo", func(r *dto.CreateProductRequest) { r.Price = decimal.RequireFromString("-1.00") }},
		{"precio con tres decimales", func(r *dto.CreateProductRequest) { r.Price = decimal.RequireFromString("1.999") }},
		{"precio con más de 10 dígitos", func(r *dto.CreateProductRequest) { r.Price = decimal.RequireFromString("100000000.00") }},
		{"cantidad negativa", func(r *dto.CreateProductRequest) { r.Quantity = intPtr(-1) }},
		{"cantidad fuera de INTEGER", func(r *dto.CreateProductRequest) { r.Quantity = intPtr(math.MaxInt32 + 1) }},
		{"nombre vacío", func(r *dto.CreateProductRequest) { r.Name = "" }},
		{"nombre largo", func(r *dto.CreateProductRequest) { r.Name = long(256) }},
		{"tipo vacío", func(r *dto.CreateProductRequest) { r.Type = "" }},
		{"sku largo", func(r *dto.CreateProductRequest) { r.SKU = long(101) }},
		{"image_url larga", func(r *dto.CreateProductRequest) { s := long(501); r.ImageURL = &s }},
		{"descripción larga", func(r *dto.CreateProductRequest) { s := long(1001); r.Description = &s }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProductRepo)
			in := validCreate()
			tt.mutate(&in)

			_, err := usecase.NewProductUseCase(repo).Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "GetBySKU", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_PrecioConDosDecimalesEquivalentes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	repo.On("GetBySKU", ctx, "SKU-1").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	in := validCreate()
	in.Price = decimal.RequireFromString("9.990")
	in.Quantity = intPtr(3)
	_, err := usecase.NewProductUseCase(repo).Create(ctx, in)
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	repo.On("List", ctx, 10, 10).Return([]*entity.Product{
		{ID: validID, Name: "a", SKU: "S", Quantity: 3, Price: decimal.RequireFromString("9.9")},
	}, nil)

	out, err := usecase.NewProductUseCase(repo).List(ctx, dto.PageRequest{Page: 2, Size: 10})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "9.90", out[0].Price)
	assert.Equal(t, 3, out[0].Quantity)
}

func TestList_PaginaFueraDeRangoEsVacia(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	repo.On("List", ctx, 10, 990).Return([]*entity.Product{}, nil)

	out, err := usecase.NewProductUseCase(repo).List(ctx, dto.PageRequest{Page: 100, Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestList_PaginaEnormeNoDesborda(t *testing.T) {
	repo := new(MockProductRepo)

	out, err := usecase.NewProductUseCase(repo).List(context.Background(), dto.PageRequest{Page: math.MaxInt, Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_ParametrosInvalidos(t *testing.T) {
	for _, page := range []dto.PageRequest{{Page: 0, Size: 10}, {Page: 1, Size: 0}, {Page: 1, Size: 101}} {
		repo := new(MockProductRepo)
		_, err := usecase.NewProductUseCase(repo).List(context.Background(), page)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", page)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("identificador inválido no consulta la base", func(t *testing.T) {
		repo := new(MockProductRepo)
		_, err := usecase.NewProductUseCase(repo).Get(ctx, "no-es-uuid")
		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("inexistente", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("GetByID", ctx, validID).Return(nil, nil)
		_, err := usecase.NewProductUseCase(repo).Get(ctx, validID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("existente", func(t *testing.T) {
		repo := new(MockProductRepo)
		desc := "d"
		repo.On("GetByID", ctx, validID).Return(&entity.Product{ID: validID, Name: "a", Description: &desc, Price: decimal.RequireFromString("1")}, nil)
		out, err := usecase.NewProductUseCase(repo).Get(ctx, validID)
		require.NoError(t, err)
		assert.Equal(t, validID, out.ID)
		assert.Equal(t, "1.00", out.Price)
		assert.Nil(t, out.ImageURL)
		require.NotNil(t, out.Description)
		assert.Equal(t, "d", *out.Description)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("UpdateQuantity", ctx, validID, 5).Return(&entity.Product{ID: validID, Quantity: 5}, nil)
		out, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, validID, dto.UpdateQuantityRequest{Quantity: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, 5, out.Quantity)
	})

	t.Run("negativa se rechaza antes de la base", func(t *testing.T) {
		repo := new(MockProductRepo)
		_, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, validID, dto.UpdateQuantityRequest{Quantity: intPtr(-1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fuera de INTEGER se rechaza antes de la base", func(t *testing.T) {
		repo := new(MockProductRepo)
		_, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, validID, dto.UpdateQuantityRequest{Quantity: intPtr(math.MaxInt32 + 1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("máximo de INTEGER es válido", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("UpdateQuantity", ctx, validID, math.MaxInt32).Return(&entity.Product{ID: validID, Quantity: math.MaxInt32}, nil)
		out, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, validID, dto.UpdateQuantityRequest{Quantity: intPtr(math.MaxInt32)})
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt32, out.Quantity)
	})

	t.Run("ausente", func(t *testing.T) {
		repo := new(MockProductRepo)
		_, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, validID, dto.UpdateQuantityRequest{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		repo := new(MockProductRepo)
		repo.On("UpdateQuantity", ctx, validID, 5).Return(nil, domain.ErrNotFound)
		_, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, validID, dto.UpdateQuantityRequest{Quantity: intPtr(5)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("identificador inválido", func(t *testing.T) {
		repo := new(MockProductRepo)
		_, err := usecase.NewProductUseCase(repo).UpdateQuantity(ctx, "123", dto.UpdateQuantityRequest{Quantity: intPtr(5)})
		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepo)
	repo.On("Delete", ctx, validID).Return(nil).Once()
	repo.On("Delete", ctx, validID).Return(domain.ErrNotFound).Once()

	uc := usecase.NewProductUseCase(repo)
	assert.NoError(t, uc.Delete(ctx, validID))
	assert.ErrorIs(t, uc.Delete(ctx, validID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "x"), domain.ErrInvalidIdentifier)
}

func TestErroresDeAlmacenamientoSePropagan(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("conexión perdida")
	repo := new(MockProductRepo)
	repo.On("GetByID", ctx, validID).Return(nil, boom)

	_, err := usecase.NewProductUseCase(repo).Get(ctx, validID)
	assert.ErrorIs(t, err, boom)
}
