package repository

import (
	"context"
	"errors"
	"strings"

	"pharmapos/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ProductFilter параметры фильтрации списка товаров
type ProductFilter struct {
	NameSubstring string
	Category      *domain.ProductCategory
	LowStockOnly  bool
}

// ProductRepository интерфейс репозитория товаров каталога.
// Товары не удаляются: каталог мутируют только пополнение и списание при продаже.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// CartRepository интерфейс корзины: один набор позиций в порядке добавления
type CartRepository interface {
	Items(ctx context.Context) ([]domain.CartItem, error)
	Upsert(ctx context.Context, item domain.CartItem) error
	SetQuantity(ctx context.Context, productID, quantity int64) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// SaleRepository интерфейс журнала продаж: только добавление, новые записи впереди
type SaleRepository interface {
	Prepend(ctx context.Context, rec *domain.SaleRecord) error
	List(ctx context.Context) ([]domain.SaleRecord, error)
	Recent(ctx context.Context, n int) ([]domain.SaleRecord, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
