package service

import (
	"context"
	"errors"
	"fmt"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
)

// CartService реализует сборку корзины: добавление, изменение количества,
// удаление и джойн позиций с актуальным каталогом
type CartService struct {
	products repository.ProductRepository
	cart     repository.CartRepository
	tx       repository.TxManager
	notifier *Notifier
}

func NewCartService(products repository.ProductRepository, cart repository.CartRepository, tx repository.TxManager, notifier *Notifier) *CartService {
	return &CartService{products: products, cart: cart, tx: tx, notifier: notifier}
}

var ErrInsufficientStock = errors.New("insufficient stock")

// AddItem добавляет товар в корзину. Если товар уже в корзине — количества
// складываются (не выше остатка), дозировка и заметки перезаписываются
// только непустыми новыми значениями.
func (s *CartService) AddItem(ctx context.Context, productID, quantity int64, dosage, notes string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidQuantity)
	}
	var productName string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		var existing *domain.CartItem
		for i := range items {
			if items[i].ProductID == productID {
				existing = &items[i]
				break
			}
		}
		inCart := int64(0)
		if existing != nil {
			inCart = existing.Quantity
		}
		if inCart+quantity > p.Stock {
			return fmt.Errorf("%w: only %d units available for %s", ErrInsufficientStock, p.Stock-inCart, p.Name)
		}
		item := domain.CartItem{ProductID: productID, Quantity: quantity, Dosage: dosage, Notes: notes}
		if existing != nil {
			item.Quantity = existing.Quantity + quantity
			if item.Quantity > p.Stock {
				item.Quantity = p.Stock
			}
			if dosage == "" {
				item.Dosage = existing.Dosage
			}
			if notes == "" {
				item.Notes = existing.Notes
			}
		}
		if err := s.cart.Upsert(ctx, item); err != nil {
			return err
		}
		productName = p.Name
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.Success(fmt.Sprintf("%s added to the cart.", productName))
	return nil
}

// UpdateQuantity приводит количество позиции к диапазону [1, остаток].
// Запрос выше остатка урезается до потолка с error-уведомлением.
// Неизвестный товар или позиция вне корзины — no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, productID, quantity int64) error {
	var ceiling int64
	clamped := false
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		if quantity < 1 {
			quantity = 1
		}
		if quantity > p.Stock {
			quantity = p.Stock
			ceiling = p.Stock
			clamped = true
		}
		if err := s.cart.SetQuantity(ctx, productID, quantity); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	if clamped {
		s.notifier.Error(fmt.Sprintf("Cannot exceed stock level of %d.", ceiling))
	}
	return nil
}

// RemoveItem убирает позицию из корзины; отсутствующая позиция — no-op
func (s *CartService) RemoveItem(ctx context.Context, productID int64) error {
	err := s.cart.Remove(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// Resolve джойнит корзину с текущим каталогом. Позиции, чей товар
// больше не находится, молча выпадают из биллингового представления,
// оставаясь в сыром состоянии корзины.
func (s *CartService) Resolve(ctx context.Context) ([]domain.ResolvedCartItem, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	return resolveCart(ctx, s.products, items)
}

// resolveCart общий шаг джойна; используется и корзиной, и коммитом продажи
func resolveCart(ctx context.Context, products repository.ProductRepository, items []domain.CartItem) ([]domain.ResolvedCartItem, error) {
	out := make([]domain.ResolvedCartItem, 0, len(items))
	for _, it := range items {
		p, err := products.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, domain.ResolvedCartItem{CartItem: it, Product: *p})
	}
	return out, nil
}
