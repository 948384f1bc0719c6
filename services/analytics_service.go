package services

import (
	"fmt"
	"time"

	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/shopspring/decimal"
)

// AnalyticsService รายงานสรุปฝั่ง owner — query ตรง ๆ ไม่ได้อยู่ใน core flow
type AnalyticsService struct {
	Repo *repository.AnalyticsRepository
}

func NewAnalyticsService(repo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

type AnalyticsSummary struct {
	Period         string               `json:"period"`
	TotalOrders    int64                `json:"totalOrders"`
	TotalRevenue   decimal.Decimal      `json:"totalRevenue"`
	OrdersByStatus map[string]int64     `json:"ordersByStatus"`
	TopItems       []repository.TopItem `json:"topItems"`
}

func (s *AnalyticsService) Summary(period string) (*AnalyticsSummary, error) {
	since, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.CountOrdersSince(since)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Repo.RevenueSince(since)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repo.OrdersByStatusSince(since)
	if err != nil {
		return nil, err
	}
	topItems, err := s.Repo.TopItemsSince(since, 5)
	if err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		Period:         period,
		TotalOrders:    total,
		TotalRevenue:   revenue,
		OrdersByStatus: byStatus,
		TopItems:       topItems,
	}, nil
}

func periodStart(period string, now time.Time) (time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "", "today":
		return midnight, nil
	case "week":
		return midnight.AddDate(0, 0, -6), nil
	case "month":
		return midnight.AddDate(0, -1, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
}
