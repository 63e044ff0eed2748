package services

import (
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/cache"
	"github.com/aranya-labs/aranya/pkg/orm"
)

const dashboardCacheKey = "analytics:dashboard"

// Dashboard is the admin analytics summary.
type Dashboard struct {
	Revenue30d  float64                   `json:"revenue_30d"`
	Orders30d   int64                     `json:"orders_30d"`
	TotalUsers  int64                     `json:"total_users"`
	LowStock    []models.Product          `json:"low_stock"`
	SalesByDay  []repositories.DailySales `json:"sales_by_day"`
	TopProducts []repositories.TopProduct `json:"top_products"`
}

type AnalyticsService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Dashboard assembles the last-30-days view the admin home screen
// renders, cached for a minute so a busy dashboard does not hammer the
// aggregate queries.
func (s *AnalyticsService) Dashboard() (Dashboard, error) {
	var cached Dashboard
	if cache.Get(dashboardCacheKey, &cached) {
		return cached, nil
	}

	since := time.Now().AddDate(0, 0, -30)

	revenue, err := s.orders.RevenueSince(since)
	if err != nil {
		return Dashboard{}, err
	}
	orders, err := s.orders.CountSince(since)
	if err != nil {
		return Dashboard{}, err
	}
	users, err := orm.DB().Model(&models.User{}).Count()
	if err != nil {
		return Dashboard{}, err
	}
	lowStock, err := s.products.LowStock()
	if err != nil {
		return Dashboard{}, err
	}
	byDay, err := s.orders.SalesByDay(since)
	if err != nil {
		return Dashboard{}, err
	}
	top, err := s.orders.TopProducts(10)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Revenue30d:  revenue,
		Orders30d:   orders,
		TotalUsers:  users,
		LowStock:    lowStock,
		SalesByDay:  byDay,
		TopProducts: top,
	}
	_ = cache.Set(dashboardCacheKey, d, time.Minute)
	return d, nil
}
