package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
)

func TestScanAbandonedCarts(t *testing.T) {
	db := setupDB(t)
	stale := createUser(t, db, "stale@cart.test")
	fresh := createUser(t, db, "fresh@cart.test")
	product := createProduct(t, db, "lonely-saree", 700, 5)

	old := time.Now().Add(-48 * time.Hour)
	staleItem := addToCart(t, db, stale.ID, product.ID, 1)
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("id = ?", staleItem.ID).
		UpdateColumn("created_at", old).Error)
	addToCart(t, db, fresh.ID, product.ID, 1)

	svc := NewMarketingService()
	require.NoError(t, svc.scanAbandonedCarts())

	var sent []models.AbandonedCartEmail
	require.NoError(t, db.Find(&sent).Error)
	require.Len(t, sent, 1)
	assert.Equal(t, stale.ID, sent[0].UserID)
	assert.Equal(t, 1, sent[0].Tier)

	// a second scan does not mail the same tier again
	require.NoError(t, svc.scanAbandonedCarts())
	require.NoError(t, db.Find(&sent).Error)
	assert.Len(t, sent, 1)
}

func TestScanSkipsUsersWhoOrdered(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ordered@cart.test")
	product := createProduct(t, db, "bought-saree", 700, 5)

	old := time.Now().Add(-48 * time.Hour)
	item := addToCart(t, db, user.ID, product.ID, 1)
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		UpdateColumn("created_at", old).Error)

	// an order placed after the cart went stale
	createOrderWithStatus(t, db, user.ID, models.OrderConfirmed, models.PaymentPaid)

	svc := NewMarketingService()
	require.NoError(t, svc.scanAbandonedCarts())

	var sent []models.AbandonedCartEmail
	require.NoError(t, db.Find(&sent).Error)
	assert.Empty(t, sent)
}
