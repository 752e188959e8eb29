package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
)

// TaxRate единая ставка налога на все категории
var TaxRate = decimal.NewFromFloat(0.07)

var ErrPrescriptionRequired = errors.New("prescription required")

// CheckoutInput данные покупателя и оплаты для коммита продажи
type CheckoutInput struct {
	CustomerName       string
	PrescriptionNumber string
	PaymentMethod      domain.PaymentMethod
	Notes              string
}

// CheckoutService атомарный коммит продажи: валидация корзины,
// чеканка чека, списание остатков, очистка корзины
type CheckoutService struct {
	products repository.ProductRepository
	cart     repository.CartRepository
	sales    repository.SaleRepository
	tx       repository.TxManager
	notifier *Notifier

	now   func() time.Time
	newID func() string
}

func NewCheckoutService(products repository.ProductRepository, cart repository.CartRepository, sales repository.SaleRepository, tx repository.TxManager, notifier *Notifier) *CheckoutService {
	return &CheckoutService{
		products: products,
		cart:     cart,
		sales:    sales,
		tx:       tx,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Commit проводит продажу. Все проверки выполняются до первой мутации:
// при любом отказе каталог, корзина и журнал остаются нетронутыми.
// Пустая (или целиком неразрешимая) корзина — безопасный no-op, не ошибка.
func (s *CheckoutService) Commit(ctx context.Context, in CheckoutInput) (*domain.SaleRecord, error) {
	if len(strings.TrimSpace(in.CustomerName)) < 2 {
		return nil, fmt.Errorf("%w: customer name must be at least 2 characters", ErrInvalidInput)
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, in.PaymentMethod)
	}

	var rec *domain.SaleRecord
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		resolved, err := resolveCart(ctx, s.products, items)
		if err != nil {
			return err
		}
		if len(resolved) == 0 {
			return nil
		}

		if err := checkPrescription(resolved, in.PrescriptionNumber); err != nil {
			return err
		}

		// повторная проверка остатков на момент коммита: остаток мог
		// уйти вниз после добавления позиции в корзину
		var short []string
		for _, it := range resolved {
			if it.Quantity > it.Product.Stock {
				short = append(short, it.Product.Name)
			}
		}
		if len(short) > 0 {
			return fmt.Errorf("%w for: %s", ErrInsufficientStock, strings.Join(short, ", "))
		}

		subtotal := decimal.Zero
		saleItems := make([]domain.SaleItem, 0, len(resolved))
		for _, it := range resolved {
			line := it.Product.Price.Mul(decimal.NewFromInt(it.Quantity))
			subtotal = subtotal.Add(line)
			saleItems = append(saleItems, domain.SaleItem{
				ProductID:   it.ProductID,
				ProductName: it.Product.Name,
				Quantity:    it.Quantity,
				UnitPrice:   it.Product.Price,
				Dosage:      it.Dosage,
				Notes:       it.Notes,
			})
		}
		tax := subtotal.Mul(TaxRate)
		total := subtotal.Add(tax)

		r := domain.SaleRecord{
			ID:                 s.newID(),
			SoldAt:             s.now().UTC(),
			CustomerName:       strings.TrimSpace(in.CustomerName),
			PrescriptionNumber: strings.TrimSpace(in.PrescriptionNumber),
			PaymentMethod:      in.PaymentMethod,
			Notes:              in.Notes,
			Items:              saleItems,
			Subtotal:           subtotal,
			Tax:                tax,
			Total:              total,
		}

		// дальше только мутации; все проверки уже пройдены
		if err := s.sales.Prepend(ctx, &r); err != nil {
			return err
		}
		for _, it := range resolved {
			p := it.Product
			p.Stock -= it.Quantity
			if err := s.products.Update(ctx, &p); err != nil {
				return err
			}
		}
		if err := s.cart.Clear(ctx); err != nil {
			return err
		}
		rec = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// пустая корзина
		return nil, nil
	}
	s.notifier.Success(fmt.Sprintf("Sale completed. Receipt #%s", rec.ID))
	return rec, nil
}

func checkPrescription(resolved []domain.ResolvedCartItem, prescriptionNumber string) error {
	if strings.TrimSpace(prescriptionNumber) != "" {
		return nil
	}
	for _, it := range resolved {
		if it.Product.RequiresPrescription {
			return fmt.Errorf("%w: prescription number required for controlled medications", ErrPrescriptionRequired)
		}
	}
	return nil
}
