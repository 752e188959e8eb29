package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory категория товара в каталоге аптеки
type ProductCategory string

const (
	CategoryPrescription    ProductCategory = "Prescription"
	CategoryOTC             ProductCategory = "OTC"
	CategoryWellness        ProductCategory = "Wellness"
	CategoryMedicalSupplies ProductCategory = "Medical Supplies"
)

// ValidCategory проверяет, входит ли категория в фиксированный набор
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryPrescription, CategoryOTC, CategoryWellness, CategoryMedicalSupplies:
		return true
	}
	return false
}

// Product представляет товар в аптеке
type Product struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	SKU                  string          `json:"sku"`
	Price                decimal.Decimal `json:"price"`
	Stock                int64           `json:"stock"`
	ReorderPoint         int64           `json:"reorder_point"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Category             ProductCategory `json:"category"`
}

// LowStock товар на пороге дозаказа или ниже
func (p Product) LowStock() bool {
	return p.Stock <= p.ReorderPoint
}

// CartItem позиция в корзине; хранит только id товара,
// актуальное состояние товара подтягивается при каждом чтении
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Dosage    string `json:"dosage,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ResolvedCartItem позиция корзины, сджойненная с текущим каталогом
type ResolvedCartItem struct {
	CartItem
	Product Product `json:"product"`
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "Cash"
	PaymentCard      PaymentMethod = "Card"
	PaymentInsurance PaymentMethod = "Insurance"
)

// ValidPaymentMethod проверяет способ оплаты
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentInsurance:
		return true
	}
	return false
}

// SaleItem замороженный снимок позиции на момент продажи:
// цена и название скопированы, правки каталога чек не меняют
type SaleItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Dosage      string          `json:"dosage,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// SaleRecord чек завершённой продажи; после создания не изменяется
type SaleRecord struct {
	ID                 string          `json:"id"`
	SoldAt             time.Time       `json:"sold_at"`
	CustomerName       string          `json:"customer_name"`
	PrescriptionNumber string          `json:"prescription_number,omitempty"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	Notes              string          `json:"notes,omitempty"`
	Items              []SaleItem      `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
}

// NotificationKind тип уведомления
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// Notification эфемерное уведомление для пользователя
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// Overview сводные показатели по каталогу и продажам
type Overview struct {
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodaySalesCount int             `json:"today_sales_count"`
	LowStockCount   int             `json:"low_stock_count"`
	ProductsTracked int             `json:"products_tracked"`
}
