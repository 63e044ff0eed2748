package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/metrics"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/razorpay"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAddressNotFound   = errors.New("address not found")
)

// Totals is the pricing breakdown of an order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ComputeTotals applies the pricing policy: free shipping at or above
// the threshold, tax as a rate on the subtotal, and a grand total
// clamped at zero however large the discount.
func ComputeTotals(subtotal, discount, freeShippingAt, flatFee, taxRate float64) Totals {
	shipping := flatFee
	if subtotal >= freeShippingAt {
		shipping = 0
	}
	tax := subtotal * taxRate
	total := subtotal + shipping + tax - discount
	if total < 0 {
		total = 0
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

// PlaceOrderInput is the checkout request.
type PlaceOrderInput struct {
	ShippingAddressID uint   `json:"shipping_address_id" validate:"required"`
	BillingAddressID  uint   `json:"billing_address_id"`
	PaymentMethod     string `json:"payment_method" validate:"required,in=razorpay,cod"`
	CouponCode        string `json:"coupon_code"`
	ReferralCode      string `json:"referral_code"`
	Notes             string `json:"notes" validate:"max=1000"`
}

// CheckoutService turns a cart into an order.
type CheckoutService struct {
	carts      *repositories.CartRepository
	orders     *repositories.OrderRepository
	products   *repositories.ProductRepository
	coupons    *repositories.CouponRepository
	addresses  *repositories.AddressRepository
	affiliates *repositories.AffiliateRepository
	couponSvc  *CouponService
	gateway    *razorpay.Client
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		carts:      repositories.NewCartRepository(),
		orders:     repositories.NewOrderRepository(),
		products:   repositories.NewProductRepository(),
		coupons:    repositories.NewCouponRepository(),
		addresses:  repositories.NewAddressRepository(),
		affiliates: repositories.NewAffiliateRepository(),
		couponSvc:  NewCouponService(),
		gateway:    razorpay.FromConfig(),
	}
}

// PlaceOrder assembles an order from the user's cart.
//
// Everything that mutates rows happens in one transaction: the order and
// its items, the coupon redemption, the per-line stock decrements and
// the cart clear all commit or roll back together. The coupon and stock
// writes are conditional UPDATEs, so two checkouts racing on the last
// use of a code or the last unit of stock cannot both win.
func (s *CheckoutService) PlaceOrder(userID uint, in PlaceOrderInput) (models.Order, error) {
	items, err := s.carts.ForUser(userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			return models.Order{}, fmt.Errorf("checkout: cart item %d has no product", it.ID)
		}
		unit := it.Product.EffectivePrice(it.Variant)
		line := unit * float64(it.Quantity)
		subtotal += line

		oi := models.OrderItem{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.Product.Name,
			UnitPrice:   unit,
			Quantity:    it.Quantity,
			TotalPrice:  line,
		}
		if it.Variant != nil {
			oi.VariantName = variantLabel(*it.Variant)
		}
		for _, img := range it.Product.Images {
			if img.IsPrimary {
				oi.ImageURL = img.URL
				break
			}
		}
		orderItems = append(orderItems, oi)
	}

	var (
		coupon   models.Coupon
		discount float64
	)
	if in.CouponCode != "" {
		coupon, discount, err = s.couponSvc.Validate(in.CouponCode, subtotal)
		if err != nil {
			return models.Order{}, err
		}
	}

	totals := ComputeTotals(subtotal, discount,
		config.FreeShippingThreshold(), config.ShippingFlatFee(), config.TaxRate())

	shipAddr, err := s.snapshotAddress(userID, in.ShippingAddressID)
	if err != nil {
		return models.Order{}, err
	}
	billAddr := shipAddr
	if in.BillingAddressID != 0 && in.BillingAddressID != in.ShippingAddressID {
		billAddr, err = s.snapshotAddress(userID, in.BillingAddressID)
		if err != nil {
			return models.Order{}, err
		}
	}

	order := models.Order{
		OrderNumber:     newOrderNumber(),
		UserID:          userID,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Discount:        totals.Discount,
		Total:           totals.Total,
		Status:          models.OrderPending,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		ShippingAddress: shipAddr,
		BillingAddress:  billAddr,
		Notes:           in.Notes,
		Items:           orderItems,
	}
	if coupon.ID != 0 {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}

	if in.ReferralCode != "" {
		if aff, err := s.affiliates.FindApprovedByCode(in.ReferralCode); err == nil {
			order.AffiliateID = &aff.ID
		} else if !orm.IsNotFound(err) {
			return models.Order{}, err
		}
	}

	err = orm.Transaction(func(tx *orm.Query) error {
		if coupon.ID != 0 {
			ok, err := s.coupons.Redeem(tx, coupon.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCouponExhausted
			}
			metrics.CouponsRedeemed.Inc()
		}

		for _, it := range items {
			ok, err := s.products.DecrementStock(tx, it.ProductID, it.VariantID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, it.Product.Name)
			}
		}

		if err := s.orders.Create(tx, &order); err != nil {
			return err
		}

		return s.carts.Clear(tx, userID)
	})
	if err != nil {
		return models.Order{}, err
	}

	if in.PaymentMethod == models.MethodRazorpay {
		gw, err := s.gateway.CreateOrder(toPaise(order.Total), "INR", order.OrderNumber,
			map[string]string{"order_number": order.OrderNumber})
		if err != nil {
			// The order stays pending; payment can be retried through
			// the create-order endpoint.
			logger.Error("checkout: gateway order failed", "order", order.OrderNumber, "error", err)
		} else {
			order.RazorpayOrderID = gw.ID
			if err := s.orders.Update(&order); err != nil {
				return models.Order{}, err
			}
		}
	}

	metrics.OrdersCreated.Inc()
	logger.Info("checkout: order placed",
		"order", order.OrderNumber, "user_id", userID, "total", order.Total)
	return order, nil
}

func (s *CheckoutService) snapshotAddress(userID, addressID uint) (string, error) {
	a, err := s.addresses.Find(userID, addressID)
	if err != nil {
		if orm.IsNotFound(err) {
			return "", ErrAddressNotFound
		}
		return "", err
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func variantLabel(v models.ProductVariant) string {
	switch {
	case v.Size != "" && v.Color != "":
		return v.Size + " / " + v.Color
	case v.Size != "":
		return v.Size
	default:
		return v.Color
	}
}

// toPaise converts a rupee amount to the integer paise the gateway wants.
func toPaise(rupees float64) int64 {
	return int64(rupees*100 + 0.5)
}

// newOrderNumber builds a unique human-readable order number like
// ARN-20260829-483920.
func newOrderNumber() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("ARN-%s-%06d", time.Now().Format("20060102"), n.Int64())
}
