package transport

import (
	"net/http"

	"glamour-be/internal/cart"
	"glamour-be/internal/catalog"
	"glamour-be/internal/checkout"
	"glamour-be/internal/logger"
	"glamour-be/internal/middleware"
	"glamour-be/internal/order"
	"glamour-be/internal/payment"
	"glamour-be/internal/realtime"
	"glamour-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// Handler bundles the services the routes dispatch into.
type Handler struct {
	UserSvc     user.Service
	CatalogSvc  catalog.Service
	Carts       *cart.Manager
	CheckoutSvc checkout.Service
	OrderSvc    order.Service
	Functions   *payment.Functions
	Hub         *realtime.Hub

	// Local receipt files served to the admin console.
	ReceiptDir string
}

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/categories", h.ListCategories)
		r.Get("/delivery-locations", h.ListDeliveryLocations)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddCartItem)
		r.Patch("/cart/items/{id}", h.UpdateCartItem)
		r.Delete("/cart/items/{id}", h.RemoveCartItem)
		r.Delete("/cart", h.ClearCart)
		r.Post("/cart/drawer", h.SetCartDrawer)

		r.Get("/checkout", h.GetCheckout)
		r.Put("/checkout/shipping", h.SetShipping)
		r.Put("/checkout/payment-method", h.SelectPaymentMethod)
		r.Post("/checkout/next", h.NextStep)
		r.Post("/checkout/back", h.PrevStep)
		r.Post("/checkout/coupon", h.ApplyCoupon)
		r.Delete("/checkout/coupon", h.RemoveCoupon)
		r.Post("/checkout/submit", h.SubmitCheckout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			// The browser returns from the hosted payment page with
			// its auth cookie; the settle write behind this route must
			// never be reachable anonymously.
			r.Get("/checkout/callback", h.CheckoutCallback)
			r.Get("/me", h.Me)
			r.Get("/orders", h.ListMyOrders)
			r.Get("/orders/{id}", h.GetOrder)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/admin/orders", h.AdminListOrders)
			r.Get("/admin/orders/{id}", h.AdminGetOrder)
			r.Patch("/admin/orders/{id}", h.AdminUpdateOrder)
			r.Post("/admin/orders/{id}/confirm-payment", h.AdminConfirmPayment)
			r.Post("/admin/orders/{id}/reject", h.AdminRejectPayment)
			r.Get("/admin/stats", h.AdminStats)
		})
	})

	// The payment boundary keeps the original deployment's
	// function-style contract.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/functions/initialize-payment", h.InitializePayment)
		r.Post("/functions/verify-payment", h.VerifyPayment)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/ws/admin/orders", h.Hub.ServeWS)
		r.Handle("/receipts/*", http.StripPrefix("/receipts/",
			http.FileServer(http.Dir(h.ReceiptDir))))
	})

	return r
}
