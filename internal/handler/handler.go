// Package handler exposes the storefront over HTTP: catalog browsing with
// admin-gated CRUD, the session cart, the checkout flow, session login, and
// the stylist advisory endpoint.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/maison-storefront/internal/domain/cart"
	"github.com/xenking/maison-storefront/internal/domain/catalog"
	"github.com/xenking/maison-storefront/internal/domain/checkout"
	"github.com/xenking/maison-storefront/internal/domain/session"
	"github.com/xenking/maison-storefront/internal/payment"
	"github.com/xenking/maison-storefront/internal/stylist"
)

// Handler routes storefront requests to the domain services. All state
// behind it is process-wide: one catalog, one cart, one session, one
// checkout flow.
type Handler struct {
	catalog  catalog.Store
	cart     *cart.Engine
	pricing  cart.Pricing
	sessions *session.Manager
	flow     *checkout.Orchestrator
	orders   checkout.Repository
	stylist  *stylist.Client
	payment  payment.LinkConfig
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	store catalog.Store,
	engine *cart.Engine,
	pricing cart.Pricing,
	sessions *session.Manager,
	flow *checkout.Orchestrator,
	orders checkout.Repository,
	advisor *stylist.Client,
	pay payment.LinkConfig,
) *Handler {
	return &Handler{
		catalog:  store,
		cart:     engine,
		pricing:  pricing,
		sessions: sessions,
		flow:     flow,
		orders:   orders,
		stylist:  advisor,
		payment:  pay,
	}
}

// Routes mounts every storefront endpoint on a fresh router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Get("/{id}/advice", h.ProductAdvice)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/", h.AddProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.RemoveProduct)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddCartItem)
		r.Put("/items/{id}/{size}", h.SetCartQuantity)
		r.Delete("/items/{id}/{size}", h.RemoveCartItem)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", h.CheckoutState)
		r.Post("/start", h.StartCheckout)
		r.Post("/shipping", h.SubmitShipping)
		r.Post("/back", h.CheckoutBack)
		r.Post("/method", h.SelectMethod)
		r.Post("/complete", h.CompleteCheckout)
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	r.With(h.requireAdmin).Get("/orders", h.ListOrders)

	return r
}

// requireAdmin rejects the request unless a logged-in admin session is
// active. The session is process-wide, so no token is exchanged.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.IsAdmin() {
			writeError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
