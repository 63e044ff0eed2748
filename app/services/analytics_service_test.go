package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
)

func TestDashboardAggregates(t *testing.T) {
	db := setupDB(t)
	svc := NewAnalyticsService()

	buyer := createUser(t, db, "buyer@aranya.test")
	createUser(t, db, "browser@aranya.test")
	low := createProduct(t, db, "Nearly Gone Saree", 2000, 2)
	createProduct(t, db, "Well Stocked Kurta", 1500, 50)

	paid := models.Order{
		OrderNumber:   "ARN-20260815-000001",
		UserID:        buyer.ID,
		Subtotal:      3000,
		Total:         3000,
		Status:        models.OrderConfirmed,
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: "razorpay",
	}
	require.NoError(t, db.Create(&paid).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:     paid.ID,
		ProductID:   low.ID,
		ProductName: low.Name,
		UnitPrice:   1500,
		Quantity:    2,
		TotalPrice:  3000,
	}).Error)

	unpaid := models.Order{
		OrderNumber:   "ARN-20260815-000002",
		UserID:        buyer.ID,
		Subtotal:      1000,
		Total:         1000,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: "cod",
	}
	require.NoError(t, db.Create(&unpaid).Error)

	d, err := svc.Dashboard()
	require.NoError(t, err)

	// Only paid orders count toward revenue; every order counts.
	assert.InDelta(t, 3000.0, d.Revenue30d, 0.001)
	assert.EqualValues(t, 2, d.Orders30d)
	assert.EqualValues(t, 2, d.TotalUsers)

	require.Len(t, d.LowStock, 1)
	assert.Equal(t, low.ID, d.LowStock[0].ID)

	require.Len(t, d.SalesByDay, 1)
	assert.EqualValues(t, 1, d.SalesByDay[0].Orders)
	assert.InDelta(t, 3000.0, d.SalesByDay[0].Revenue, 0.001)

	require.Len(t, d.TopProducts, 1)
	assert.Equal(t, low.ID, d.TopProducts[0].ProductID)
	assert.EqualValues(t, 2, d.TopProducts[0].Sold)
}
