package service

import (
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
)

// LowStockThreshold marks a product as running low.
const LowStockThreshold = 10

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

func NewDashboardService(saleRepo repository.SaleRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo, now: time.Now}
}

// GetStockMovement covers today and the days-1 days before it.
func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = 7
	}
	end := s.now()
	start := end.AddDate(0, 0, -(days - 1))

	r := model.DateRange{From: start.Format(model.DateLayout), To: end.Format(model.DateLayout)}
	lower, upper, err := r.Bounds()
	if err != nil {
		return nil, err
	}
	return s.saleRepo.GetStockMovement(lower, upper)
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.saleRepo.GetDashboardStats(LowStockThreshold)
}
