package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"frame-storefront/app/controller"
)

// UploadsPath is the URL prefix locally stored images are served from
const UploadsPath = "/static/uploads"

type Controllers struct {
	Auth         *controller.AuthController
	FrameType    *controller.FrameTypeController
	SubFrameType *controller.SubFrameTypeController
	FrameSize    *controller.FrameSizeController
	Product      *controller.ProductController
	Cart         *controller.CartController
	Wishlist     *controller.WishlistController
	Coupon       *controller.CouponController
	Order        *controller.OrderController
	Upload       *controller.UploadController
	Report       *controller.ReportController
}

// Options configures the router
type Options struct {
	Tokens controller.TokenParser
	// StaticDir is served under UploadsPath when images are stored locally
	StaticDir string
	// RequestTimeout bounds every request; PDF rendering needs the longest
	RequestTimeout time.Duration
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers, opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Get("/ping", pingHandler)

	if opts.StaticDir != "" {
		fs := http.StripPrefix(UploadsPath, http.FileServer(http.Dir(opts.StaticDir)))
		r.Get(UploadsPath+"/*", fs.ServeHTTP)
	}

	// Auth
	r.Post("/auth/register", controllers.Auth.Register)
	r.Post("/auth/login", controllers.Auth.Login)

	// Public catalog
	r.Get("/products", controllers.Product.List)
	r.Get("/products/{id}", controllers.Product.Get)
	r.Get("/products/{id}/sizes", controllers.Product.Sizes)
	r.Get("/frame-types", controllers.FrameType.List)
	r.Get("/frame-types/{id}", controllers.FrameType.Get)
	r.Get("/sub-frame-types", controllers.SubFrameType.List)
	r.Get("/sub-frame-types/{id}", controllers.SubFrameType.Get)
	r.Get("/frame-sizes", controllers.FrameSize.List)
	r.Get("/frame-sizes/{id}", controllers.FrameSize.Get)

	// Signed-in users
	r.Group(func(r chi.Router) {
		r.Use(controller.Authenticate(opts.Tokens))

		r.Get("/me", controllers.Auth.Me)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.Cart.Get)
			r.Delete("/", controllers.Cart.Clear)
			r.Post("/items", controllers.Cart.AddItem)
			r.Patch("/items/{itemId}", controllers.Cart.UpdateItem)
			r.Delete("/items/{itemId}", controllers.Cart.RemoveItem)
			r.Post("/coupon", controllers.Cart.PreviewCoupon)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.Wishlist.List)
			r.Post("/", controllers.Wishlist.Add)
			r.Delete("/{productId}", controllers.Wishlist.Remove)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.Order.ListMine)
			r.Post("/", controllers.Order.Checkout)
			r.Get("/{id}", controllers.Order.Get)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", controllers.Upload.Start)
			r.Get("/images", controllers.Upload.ListImages)
			r.Put("/{id}/chunks/{index}", controllers.Upload.PutChunk)
			r.Post("/{id}/complete", controllers.Upload.Complete)
			r.Delete("/{id}", controllers.Upload.Abort)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(controller.RequireAdmin)

			r.Route("/frame-types", func(r chi.Router) {
				r.Post("/", controllers.FrameType.Create)
				r.Patch("/{id}", controllers.FrameType.Update)
				r.Delete("/{id}", controllers.FrameType.Delete)
			})

			r.Route("/sub-frame-types", func(r chi.Router) {
				r.Post("/", controllers.SubFrameType.Create)
				r.Patch("/{id}", controllers.SubFrameType.Update)
				r.Delete("/{id}", controllers.SubFrameType.Delete)
				r.Post("/{id}/images", controllers.SubFrameType.AttachImage)
			})

			r.Route("/frame-sizes", func(r chi.Router) {
				r.Post("/", controllers.FrameSize.Create)
				r.Patch("/{id}", controllers.FrameSize.Update)
				r.Delete("/{id}", controllers.FrameSize.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.Product.Create)
				r.Post("/import", controllers.Product.Import)
				r.Put("/{id}", controllers.Product.Update)
				r.Delete("/{id}", controllers.Product.Delete)
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", controllers.Coupon.List)
				r.Post("/", controllers.Coupon.Create)
				r.Post("/{id}/deactivate", controllers.Coupon.Deactivate)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.Order.ListAll)
				r.Patch("/{id}/status", controllers.Order.UpdateStatus)
			})

			r.Get("/reports/frame-catalog", controllers.Report.FrameCatalog)
		})
	})

	return r
}
