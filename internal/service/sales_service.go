package service

import (
	"context"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
)

// SalesService читающий доступ к журналу продаж
type SalesService struct {
	sales repository.SaleRepository
}

func NewSalesService(sales repository.SaleRepository) *SalesService {
	return &SalesService{sales: sales}
}

// List возвращает все чеки, новые впереди
func (s *SalesService) List(ctx context.Context) ([]domain.SaleRecord, error) {
	return s.sales.List(ctx)
}

// Recent возвращает n последних чеков
func (s *SalesService) Recent(ctx context.Context, n int) ([]domain.SaleRecord, error) {
	return s.sales.Recent(ctx, n)
}
