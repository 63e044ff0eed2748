package repositories

import (
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	UserID        uint // 0 = all users (admin)
	Status        string
	PaymentStatus string
	Page          int
	PerPage       int
}

// OrderRepository handles order persistence and the read-side
// aggregations the admin dashboard needs.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// List returns orders matching the filter, newest first.
func (r *OrderRepository) List(f OrderFilter) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Items")
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}

	var orders []models.Order
	pagination, err := q.Order("created_at DESC").GetWithPagination(&orders, f.Page, f.PerPage)
	return orders, pagination, err
}

// FindByID loads one order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var o models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&o)
	return o, err
}

// FindByRazorpayOrderID resolves the order a gateway callback refers to.
func (r *OrderRepository) FindByRazorpayOrderID(rzpOrderID string) (models.Order, error) {
	var o models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Items").
		Where("razorpay_order_id = ?", rzpOrderID).First(&o)
	return o, err
}

// Create persists an order and its items inside tx.
func (r *OrderRepository) Create(tx *orm.Query, o *models.Order) error {
	return tx.Create(o)
}

// Update persists order changes.
func (r *OrderRepository) Update(o *models.Order) error {
	return orm.DB().Save(o)
}

// MarkPaid flips a pending payment to paid in one conditional UPDATE.
// Zero rows affected means the order was already past pending, so the
// caller can treat a webhook redelivery as a no-op.
func (r *OrderRepository) MarkPaid(orderID uint, paymentID, signature string, paidAt time.Time) (bool, error) {
	affected, err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentPending).
		UpdatesConditional(map[string]interface{}{
			"payment_status":      models.PaymentPaid,
			"status":              models.OrderConfirmed,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
			"paid_at":             paidAt,
		})
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// MarkFailed records a failed payment, only while still pending.
func (r *OrderRepository) MarkFailed(orderID uint, paymentID string) (bool, error) {
	affected, err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentPending).
		UpdatesConditional(map[string]interface{}{
			"payment_status":      models.PaymentFailed,
			"razorpay_payment_id": paymentID,
		})
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// CountSince counts orders created at or after t.
func (r *OrderRepository) CountSince(t time.Time) (int64, error) {
	return orm.DB().Model(&models.Order{}).Where("created_at >= ?", t).Count()
}

// RevenueSince sums paid order totals created at or after t.
func (r *OrderRepository) RevenueSince(t time.Time) (float64, error) {
	var revenue float64
	err := orm.DB().Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("payment_status = ? AND created_at >= ?", models.PaymentPaid, t).
		Scan(&revenue)
	return revenue, err
}

// DailySales is one day of paid revenue.
type DailySales struct {
	Day     string  `json:"day"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SalesByDay aggregates paid orders per calendar day since t.
func (r *OrderRepository) SalesByDay(t time.Time) ([]DailySales, error) {
	var rows []DailySales
	err := orm.DB().Model(&models.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, SUM(total) AS revenue").
		Where("payment_status = ? AND created_at >= ?", models.PaymentPaid, t).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows)
	return rows, err
}

// TopProduct is one row of the best-sellers aggregation.
type TopProduct struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Sold        int64   `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

// TopProducts ranks products by units sold across paid orders.
func (r *OrderRepository) TopProducts(limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := orm.DB().Model(&models.OrderItem{}).
		Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS sold, SUM(order_items.total_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.payment_status = ?", models.PaymentPaid).
		Group("order_items.product_id, order_items.product_name").
		Order("sold DESC").
		Limit(limit).
		Scan(&rows)
	return rows, err
}

// LatestOrderAt returns the creation time of the user's newest order, or
// the zero time when they have none.
func (r *OrderRepository) LatestOrderAt(userID uint) (time.Time, error) {
	var o models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("user_id = ?", userID).Order("created_at DESC").First(&o)
	if orm.IsNotFound(err) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return o.CreatedAt, nil
}
