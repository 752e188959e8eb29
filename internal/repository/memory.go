package repository

import (
	"context"
	"sort"
	"sync"

	"pharmapos/internal/domain"
)

// MemoryStore объединённое in-memory состояние точки продаж:
// каталог, корзина и журнал продаж в одном контейнере с общей блокировкой
type MemoryStore struct {
	mu           sync.RWMutex
	nextProdID   int64
	productsByID map[int64]domain.Product
	cart         []domain.CartItem
	sales        []domain.SaleRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProdID:   1,
		productsByID: make(map[int64]domain.Product),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.nextProdID
	m.nextProdID++
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	m.productsByID[p.ID] = *p
	return nil
}

// List отдаёт товары в стабильном порядке по id
func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0, len(m.productsByID))
	for _, p := range m.productsByID {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		if f.LowStockOnly && !p.LowStock() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CartRepository implementation on wrapper type
type MemoryCart struct{ store *MemoryStore }

func NewMemoryCart(store *MemoryStore) *MemoryCart { return &MemoryCart{store: store} }

var _ CartRepository = (*MemoryCart)(nil)

func (mc *MemoryCart) Items(ctx context.Context) ([]domain.CartItem, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.CartItem, len(mc.store.cart))
	copy(out, mc.store.cart)
	return out, nil
}

// Upsert заменяет позицию с тем же product_id или добавляет новую в конец
func (mc *MemoryCart) Upsert(ctx context.Context, item domain.CartItem) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i, it := range mc.store.cart {
		if it.ProductID == item.ProductID {
			mc.store.cart[i] = item
			return nil
		}
	}
	mc.store.cart = append(mc.store.cart, item)
	return nil
}

func (mc *MemoryCart) SetQuantity(ctx context.Context, productID, quantity int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i, it := range mc.store.cart {
		if it.ProductID == productID {
			mc.store.cart[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (mc *MemoryCart) Remove(ctx context.Context, productID int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i, it := range mc.store.cart {
		if it.ProductID == productID {
			mc.store.cart = append(mc.store.cart[:i], mc.store.cart[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (mc *MemoryCart) Clear(ctx context.Context) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	mc.store.cart = nil
	return nil
}

// SaleRepository implementation on wrapper type
type MemorySales struct{ store *MemoryStore }

func NewMemorySales(store *MemoryStore) *MemorySales { return &MemorySales{store: store} }

var _ SaleRepository = (*MemorySales)(nil)

// Prepend вставляет чек в начало журнала (порядок чтения — от новых к старым)
func (ms *MemorySales) Prepend(ctx context.Context, rec *domain.SaleRecord) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	cp := *rec
	cp.Items = make([]domain.SaleItem, len(rec.Items))
	copy(cp.Items, rec.Items)
	ms.store.sales = append([]domain.SaleRecord{cp}, ms.store.sales...)
	return nil
}

func (ms *MemorySales) List(ctx context.Context) ([]domain.SaleRecord, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	out := make([]domain.SaleRecord, len(ms.store.sales))
	copy(out, ms.store.sales)
	return out, nil
}

func (ms *MemorySales) Recent(ctx context.Context, n int) ([]domain.SaleRecord, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	if n < 0 {
		n = 0
	}
	if n > len(ms.store.sales) {
		n = len(ms.store.sales)
	}
	out := make([]domain.SaleRecord, n)
	copy(out, ms.store.sales[:n])
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
