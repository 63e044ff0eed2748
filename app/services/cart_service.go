package services

import (
	"errors"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/collection"
	"github.com/aranya-labs/aranya/pkg/orm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartView is the cart with its running totals, priced as checkout
// would price it (before any coupon).
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals Totals            `json:"totals"`
}

type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// View returns the user's cart with totals.
func (s *CartService) View(userID uint) (CartView, error) {
	items, err := s.carts.ForUser(userID)
	if err != nil {
		return CartView{}, err
	}

	subtotal := collection.Sum(items, func(it models.CartItem) float64 {
		if it.Product == nil {
			return 0
		}
		return it.Product.EffectivePrice(it.Variant) * float64(it.Quantity)
	})

	return CartView{
		Items: items,
		Totals: ComputeTotals(subtotal, 0,
			config.FreeShippingThreshold(), config.ShippingFlatFee(), config.TaxRate()),
	}, nil
}

// AddInput is the add-to-cart request.
type AddInput struct {
	ProductID uint  `json:"product_id" validate:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" validate:"required,gte=1,lte=99"`
}

// Add puts a product in the cart. An existing product+variant line has
// its quantity merged instead of gaining a duplicate row.
func (s *CartService) Add(userID uint, in AddInput) (models.CartItem, error) {
	product, err := s.products.FindByID(in.ProductID)
	if err != nil || !product.IsActive {
		if err != nil && !orm.IsNotFound(err) {
			return models.CartItem{}, err
		}
		return models.CartItem{}, ErrProductNotFound
	}
	if in.VariantID != nil {
		if _, err := s.products.FindVariant(in.ProductID, *in.VariantID); err != nil {
			if orm.IsNotFound(err) {
				return models.CartItem{}, ErrVariantNotFound
			}
			return models.CartItem{}, err
		}
	}

	existing, err := s.carts.FindLine(userID, in.ProductID, in.VariantID)
	if err == nil {
		existing.Quantity += in.Quantity
		if err := s.carts.Update(&existing); err != nil {
			return models.CartItem{}, err
		}
		return existing, nil
	}
	if !orm.IsNotFound(err) {
		return models.CartItem{}, err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
	}
	if err := s.carts.Create(&item); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// UpdateQuantity replaces a line's quantity.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (models.CartItem, error) {
	item, err := s.carts.FindItem(userID, itemID)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.CartItem{}, ErrCartItemNotFound
		}
		return models.CartItem{}, err
	}
	item.Quantity = quantity
	if err := s.carts.Update(&item); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// Remove deletes one line.
func (s *CartService) Remove(userID, itemID uint) error {
	return s.carts.Delete(userID, itemID)
}

// Clear empties the cart.
func (s *CartService) Clear(userID uint) error {
	return orm.Transaction(func(tx *orm.Query) error {
		return s.carts.Clear(tx, userID)
	})
}
