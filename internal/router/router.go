package router

import (
	"net/http"

	"eliteshop/internal/handler"
	"eliteshop/internal/middleware"
	"eliteshop/internal/service"
	"eliteshop/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Auth    *handler.AuthHandler
	Upload  *handler.UploadHandler
	Static  *handler.StaticHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	sessions session.Store,
	authService service.AuthService,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status": "healthy"}`))
		})

		// Storefront catalogue. The fixed paths must register before the
		// {id} pattern.
		r.Get("/products", h.Product.List)
		r.Get("/products/categories", h.Product.Categories)
		r.Get("/products/{id}", h.Product.GetByID)

		// Session cart.
		r.Get("/cart", h.Cart.Get)
		r.Post("/cart/add", h.Cart.Add)
		r.Put("/cart/update/{itemID}", h.Cart.Update)
		r.Delete("/cart/remove/{itemID}", h.Cart.Remove)
		r.Delete("/cart/clear", h.Cart.Clear)
		r.Get("/cart/count", h.Cart.Count)

		// Checkout and customer order lookups.
		r.Post("/orders/checkout", h.Order.Checkout)
		r.Get("/orders/email/{email}", h.Order.ListByEmail)
		r.Get("/orders/{orderNumber}", h.Order.GetByNumber)

		// Admin authentication.
		r.Post("/admin/login", h.Auth.Login)
		r.Get("/admin/check-auth", h.Auth.CheckAuth)
		r.Post("/admin/create-default", h.Auth.CreateDefault)

		// Admin surface, gated on a live admin session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminRequired(sessions, authService, logger))

			r.Post("/admin/logout", h.Auth.Logout)

			r.Get("/admin/products", h.Product.AdminList)
			r.Post("/admin/products", h.Product.Create)
			r.Get("/admin/products/search", h.Product.Search)
			r.Get("/admin/products/categories", h.Product.AdminCategories)
			r.Get("/admin/products/analytics", h.Product.Analytics)
			r.Put("/admin/products/bulk-update", h.Product.BulkUpdate)
			r.Delete("/admin/products/bulk-delete", h.Product.BulkDelete)
			r.Put("/admin/products/{id}", h.Product.Update)
			r.Delete("/admin/products/{id}", h.Product.Delete)

			r.Get("/admin/inventory/low-stock", h.Product.LowStock)
			r.Put("/admin/inventory/update-stock", h.Product.UpdateStock)

			r.Get("/admin/orders", h.Order.AdminList)
			r.Get("/admin/orders/stats", h.Order.Stats)
			r.Put("/admin/orders/{id}/status", h.Order.UpdateStatus)

			// The frontend posts uploads to /upload, not /admin/upload; the
			// gate is the session, not the path.
			r.Post("/upload/product-image", h.Upload.Upload)
			r.Delete("/upload/delete-image", h.Upload.DeleteImage)
		})

		// Stored product images are public; the storefront embeds them.
		r.Get("/uploads/products/{filename}", h.Upload.ServeImage)
	})

	// Everything else is the frontend.
	r.NotFound(h.Static.Serve)

	return r
}
