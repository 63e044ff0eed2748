// Package routes maps the HTTP surface onto controllers.
package routes

import (
	"net/http"

	"github.com/aranya-labs/aranya/app/controllers"
	appgraphql "github.com/aranya-labs/aranya/app/graphql"
	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/graphql"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/metrics"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/rbac"
	"github.com/aranya-labs/aranya/pkg/response"
	"github.com/aranya-labs/aranya/pkg/router"
)

// RegisterAPI wires every route. Grouped as: public catalog and auth,
// authenticated storefront, and the admin dashboard behind rbac.
func RegisterAPI(r *router.Router) {
	feed := services.NewHubFeed()

	auth := controllers.NewAuthController()
	products := controllers.NewProductController()
	brands := controllers.NewBrandController()
	carts := controllers.NewCartController()
	wishlists := controllers.NewWishlistController()
	addresses := controllers.NewAddressController()
	orders := controllers.NewOrderController(feed)
	payments := controllers.NewPaymentController(feed)
	coupons := controllers.NewCouponController()
	affiliates := controllers.NewAffiliateController()
	blogs := controllers.NewBlogController()
	uploads := controllers.NewUploadController()
	admin := controllers.NewAdminController()

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "ok")
	})
	r.Handle("/metrics", metrics.Handler())

	// Affiliate referral redirect lives outside /api so short links stay short.
	r.Get("/r/{code}", "affiliates.redirect", affiliates.Redirect)

	api := r.Group("/api")

	// Public surface.
	api.Post("/auth/register", "auth.register", auth.Register)
	api.Post("/auth/login", "auth.login", auth.Login)
	api.Post("/auth/forgot-password", "auth.forgot", auth.ForgotPassword)
	api.Post("/auth/reset-password", "auth.reset", auth.ResetPassword)

	api.Get("/products", "products.index", products.Index)
	api.Get("/products/featured", "products.featured", products.Featured)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Get("/products/{id}/related", "products.related", products.Related)
	api.Get("/brands", "brands.index", brands.Index)

	api.Get("/blogs", "blogs.index", blogs.Index)
	api.Get("/blogs/{slug}", "blogs.show", blogs.Show)
	api.Get("/announcements", "announcements.index", blogs.Announcements)
	api.Get("/announcements/popups", "announcements.popups", blogs.Popups)

	api.Post("/coupons/validate", "coupons.validate", coupons.Validate, middleware.OptionalAuth)
	api.Post("/webhooks/razorpay", "payments.webhook", payments.Webhook)

	if schema, err := appgraphql.NewCatalogSchema(); err == nil {
		api.Post("/graphql", "graphql", graphql.Handler(schema))
	} else {
		logger.Error("graphql: schema build failed", "error", err)
	}

	// Authenticated storefront.
	authed := api.Group("", middleware.Auth)
	authed.Post("/auth/logout", "auth.logout", auth.Logout)
	authed.Get("/auth/user", "auth.user", auth.Me)

	authed.Get("/cart", "cart.index", carts.Index)
	authed.Post("/cart", "cart.store", carts.Store)
	authed.Patch("/cart/{itemId}", "cart.update", carts.Update)
	authed.Delete("/cart/{itemId}", "cart.destroy", carts.Destroy)
	authed.Delete("/cart", "cart.clear", carts.Clear)

	authed.Get("/wishlist", "wishlist.index", wishlists.Index)
	authed.Post("/wishlist", "wishlist.store", wishlists.Store)
	authed.Delete("/wishlist/{itemId}", "wishlist.destroy", wishlists.Destroy)

	authed.Get("/addresses", "addresses.index", addresses.Index)
	authed.Post("/addresses", "addresses.store", addresses.Store)
	authed.Patch("/addresses/{id}", "addresses.update", addresses.Update)
	authed.Delete("/addresses/{id}", "addresses.destroy", addresses.Destroy)
	authed.Post("/addresses/{id}/default", "addresses.default", addresses.SetDefault)

	authed.Get("/orders", "orders.index", orders.Index)
	authed.Post("/orders", "orders.store", orders.Store)
	authed.Get("/orders/{id}", "orders.show", orders.Show)

	authed.Post("/payments/create-order", "payments.create_order", payments.CreateOrder)
	authed.Post("/payments/verify", "payments.verify", payments.Verify)

	authed.Post("/affiliates/apply", "affiliates.apply", affiliates.Apply)
	authed.Get("/affiliates/me", "affiliates.me", affiliates.Me)
	authed.Get("/affiliates/stats", "affiliates.stats", affiliates.Stats)

	// Admin dashboard.
	adm := api.Group("/admin", middleware.Auth, rbac.HasRole(models.RoleAdmin))

	adm.Post("/products", "admin.products.store", products.Store)
	adm.Patch("/products/{id}", "admin.products.update", products.Update)
	adm.Delete("/products/{id}", "admin.products.destroy", products.Destroy)
	adm.Post("/products/{id}/variants", "admin.products.variants", products.StoreVariant)
	adm.Post("/products/{id}/images", "admin.products.images", products.StoreImage)

	adm.Post("/brands", "admin.brands.store", brands.Store)
	adm.Patch("/brands/{id}", "admin.brands.update", brands.Update)
	adm.Delete("/brands/{id}", "admin.brands.destroy", brands.Destroy)

	adm.Get("/coupons", "admin.coupons.index", coupons.Index)
	adm.Post("/coupons", "admin.coupons.store", coupons.Store)
	adm.Patch("/coupons/{id}", "admin.coupons.update", coupons.Update)
	adm.Delete("/coupons/{id}", "admin.coupons.destroy", coupons.Destroy)

	adm.Post("/blogs", "admin.blogs.store", blogs.Store)
	adm.Patch("/blogs/{id}", "admin.blogs.update", blogs.Update)
	adm.Delete("/blogs/{id}", "admin.blogs.destroy", blogs.Destroy)

	adm.Post("/announcements", "admin.announcements.store", blogs.StoreAnnouncement)
	adm.Patch("/announcements/{id}", "admin.announcements.update", blogs.UpdateAnnouncement)
	adm.Delete("/announcements/{id}", "admin.announcements.destroy", blogs.DestroyAnnouncement)

	adm.Patch("/orders/{id}/status", "admin.orders.status", orders.UpdateStatus)
	adm.Get("/orders/feed", "admin.orders.feed", admin.OrderFeed)

	adm.Get("/affiliates", "admin.affiliates.index", affiliates.Index)
	adm.Patch("/affiliates/{id}/approve", "admin.affiliates.approve", affiliates.Approve)
	adm.Patch("/affiliates/{id}/reject", "admin.affiliates.reject", affiliates.Reject)

	adm.Get("/analytics", "admin.analytics", admin.Analytics)
	adm.Post("/send-discount", "admin.send_discount", admin.SendDiscount)

	adm.Post("/uploads", "admin.uploads.store", uploads.Store)
	adm.Post("/uploads/presigned-url", "admin.uploads.presign", uploads.Presign)
}
