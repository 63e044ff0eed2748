package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aranya-labs/aranya/app/models"
)

func TestAddMergesExistingLine(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "merge@cart.test")
	product := createProduct(t, db, "merge-saree", 1500, 10)

	svc := NewCartService()

	first, err := svc.Add(user.ID, AddInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := svc.Add(user.ID, AddInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Equal(t, int64(1), lines)
}

func TestAddKeepsVariantLinesSeparate(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "variant@cart.test")
	product := createProduct(t, db, "variant-kurta", 1200, 10)

	v := models.ProductVariant{ProductID: product.ID, SKU: "VK-M", Size: "M", Stock: 5}
	require.NoError(t, db.Create(&v).Error)

	svc := NewCartService()

	_, err := svc.Add(user.ID, AddInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(user.ID, AddInput{ProductID: product.ID, VariantID: &v.ID, Quantity: 1})
	require.NoError(t, err)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Equal(t, int64(2), lines)
}

func TestAddRejectsInactiveProduct(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "inactive@cart.test")
	product := createProduct(t, db, "retired-saree", 1500, 10)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		UpdateColumn("is_active", false).Error)

	svc := NewCartService()
	_, err := svc.Add(user.ID, AddInput{ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddRejectsUnknownVariant(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "novariant@cart.test")
	product := createProduct(t, db, "plain-kurta", 900, 10)

	bogus := uint(9999)
	svc := NewCartService()
	_, err := svc.Add(user.ID, AddInput{ProductID: product.ID, VariantID: &bogus, Quantity: 1})
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestViewTotals(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "totals@cart.test")
	product := createProduct(t, db, "priced-saree", 2000, 10)
	addToCart(t, db, user.ID, product.ID, 2)

	svc := NewCartService()
	view, err := svc.View(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.InDelta(t, 4000.0, view.Totals.Subtotal, 0.001)
	assert.InDelta(t, 500.0, view.Totals.Shipping, 0.001)
}

func TestClearEmptiesCart(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "clear@cart.test")
	product := createProduct(t, db, "cleared-saree", 800, 10)
	addToCart(t, db, user.ID, product.ID, 1)

	svc := NewCartService()
	require.NoError(t, svc.Clear(user.ID))

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Zero(t, lines)
}
