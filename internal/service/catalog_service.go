package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
)

// CatalogService инкапсулирует операции над каталогом: загрузка, список, пополнение
type CatalogService struct {
	products repository.ProductRepository
	tx       repository.TxManager
	notifier *Notifier
	logger   *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, tx repository.TxManager, notifier *Notifier, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{products: products, tx: tx, notifier: notifier, logger: logger}
}

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Load загружает стартовый каталог, отбрасывая некорректные записи.
// Данным загрузчика не доверяем: кривая запись пропускается с предупреждением,
// процесс не падает. Возвращает число принятых товаров.
func (s *CatalogService) Load(ctx context.Context, entries []domain.Product) (int, error) {
	loaded := 0
	for _, e := range entries {
		if err := validateSeed(e); err != nil {
			s.logger.Warn("skipping malformed seed entry",
				zap.String("sku", e.SKU),
				zap.String("name", e.Name),
				zap.Error(err))
			continue
		}
		cp := e
		cp.ID = 0 // id назначает хранилище
		if err := s.products.Create(ctx, &cp); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}

func validateSeed(p domain.Product) error {
	if p.Name == "" || p.SKU == "" {
		return ErrInvalidInput
	}
	if p.Price.IsNegative() || p.Stock < 0 || p.ReorderPoint < 0 {
		return ErrInvalidInput
	}
	if !domain.ValidCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	return nil
}

// List возвращает товары каталога в стабильном порядке
func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

// GetByID возвращает товар по id
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.products.GetByID(ctx, id)
}

// Restock добавляет количество к остатку товара.
// Количество валидируется до обращения к хранилищу; неизвестный id — тихий no-op.
func (s *CatalogService) Restock(ctx context.Context, productID, quantity int64) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", ErrInvalidQuantity)
	}
	var updated *domain.Product
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		p.Stock += quantity
		if err := s.products.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// неизвестный товар — тихий no-op
		return nil, nil
	}
	s.notifier.Info(fmt.Sprintf("Restocked %d units of %s.", quantity, updated.Name))
	return updated, nil
}
