package router

import (
	"net/http"

	"dinelt/internal/handler"
	"dinelt/internal/media"
	"dinelt/internal/metrics"
	"dinelt/internal/middleware"
	"dinelt/internal/ratelimit"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Profile       *handler.ProfileHandler
	Post          *handler.PostHandler
	Story         *handler.StoryHandler
	Restaurant    *handler.RestaurantHandler
	Food          *handler.FoodHandler
	Order         *handler.OrderHandler
	Cart          *handler.CartHandler
	Reservation   *handler.ReservationHandler
	Accommodation *handler.AccommodationHandler
	Media         *handler.MediaHandler
}

// Options configures cross-cutting behaviour of the router.
type Options struct {
	Tokens middleware.TokenVerifier
	// Limiter is optional; a nil limiter disables rate limiting.
	Limiter ratelimit.Limiter
	// MediaRoot, when set, is served under /media/.
	MediaRoot string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS)
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter, logger))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	if opts.MediaRoot != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(media.PublicFS(opts.MediaRoot))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Tokens, logger))

		// Public
		r.Get("/", h.Auth.ListRoutes)
		r.Post("/register/", h.Auth.Register)
		r.Post("/token/", h.Auth.Token)
		r.Post("/token/refresh/", h.Auth.Refresh)

		r.Get("/profiles/{username}/", h.Profile.GetByUsername)
		r.Get("/posts/", h.Post.List)
		r.Get("/posts/{id}/comments/", h.Post.ListComments)
		r.Get("/stories/", h.Story.List)
		r.Get("/restaurants/", h.Restaurant.List)
		r.Get("/restaurants/{id}/", h.Restaurant.Get)
		r.Get("/restaurants/{id}/reviews/", h.Restaurant.ListReviews)
		r.Get("/restaurants/{id}/reservation-categories/", h.Reservation.ListCategories)
		r.Get("/foods/", h.Food.List)
		r.Get("/foods/{id}/", h.Food.Get)
		r.Get("/accommodations/", h.Accommodation.List)
		r.Get("/accommodations/{id}/", h.Accommodation.Get)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/test/", h.Auth.Echo)
			r.Post("/test/", h.Auth.Echo)

			r.Get("/profile/", h.Profile.Me)
			r.Put("/profile/", h.Profile.Update)
			r.Patch("/profile/", h.Profile.Update)
			r.Delete("/profile/", h.Profile.Delete)
			r.Put("/profile/update/", h.Profile.Update)
			r.Post("/profiles/{username}/follow/", h.Profile.Follow)
			r.Delete("/profiles/{username}/follow/", h.Profile.Unfollow)

			r.Post("/posts/", h.Post.Create)
			r.Get("/posts/{id}/", h.Post.Get)
			r.Put("/posts/{id}/", h.Post.Update)
			r.Patch("/posts/{id}/", h.Post.Update)
			r.Delete("/posts/{id}/", h.Post.Delete)
			r.Post("/posts/{id}/like/", h.Post.Like)
			r.Post("/posts/{id}/comments/", h.Post.AddComment)

			r.Post("/stories/", h.Story.Create)
			r.Get("/stories/{id}/", h.Story.Get)
			r.Put("/stories/{id}/", h.Story.Update)
			r.Patch("/stories/{id}/", h.Story.Update)
			r.Delete("/stories/{id}/", h.Story.Delete)

			r.Post("/restaurants/", h.Restaurant.Create)
			r.Post("/restaurants/create/", h.Restaurant.Create)
			r.Put("/restaurants/{id}/", h.Restaurant.Update)
			r.Patch("/restaurants/{id}/", h.Restaurant.Update)
			r.Delete("/restaurants/{id}/", h.Restaurant.Delete)
			r.Get("/restaurants/{id}/managers/", h.Restaurant.ListManagers)
			r.Post("/restaurants/{id}/managers/", h.Restaurant.AddManager)
			r.Delete("/restaurants/{id}/managers/{managerID}/", h.Restaurant.RemoveManager)
			r.Post("/restaurants/{id}/reviews/", h.Restaurant.AddReview)
			r.Post("/restaurants/{id}/reservation-categories/", h.Reservation.CreateCategory)

			r.Post("/foods/", h.Food.Create)
			r.Put("/foods/{id}/", h.Food.Update)
			r.Patch("/foods/{id}/", h.Food.Update)
			r.Delete("/foods/{id}/", h.Food.Delete)

			r.Get("/orders/", h.Order.List)
			r.Post("/orders/", h.Order.Create)
			r.Get("/orders/{id}/", h.Order.GetByID)
			r.Post("/orders/{id}/items/", h.Order.AddItems)
			r.Patch("/orders/{id}/status/", h.Order.UpdateStatus)

			r.Get("/cart/", h.Cart.Get)
			r.Delete("/cart/", h.Cart.Clear)
			r.Post("/cart/items/", h.Cart.AddItem)
			r.Patch("/cart/items/{id}/", h.Cart.UpdateItem)
			r.Delete("/cart/items/{id}/", h.Cart.RemoveItem)
			r.Post("/cart/checkout/", h.Cart.Checkout)

			r.Get("/reservations/", h.Reservation.List)
			r.Post("/reservations/", h.Reservation.Create)
			r.Get("/reservations/{id}/", h.Reservation.Get)
			r.Put("/reservations/{id}/", h.Reservation.Update)
			r.Patch("/reservations/{id}/", h.Reservation.Update)
			r.Delete("/reservations/{id}/", h.Reservation.Delete)

			r.Post("/accommodations/", h.Accommodation.Create)
			r.Put("/accommodations/{id}/", h.Accommodation.Update)
			r.Patch("/accommodations/{id}/", h.Accommodation.Update)
			r.Delete("/accommodations/{id}/", h.Accommodation.Delete)

			r.Get("/bookings/", h.Accommodation.ListBookings)
			r.Post("/bookings/", h.Accommodation.CreateBooking)
			r.Get("/bookings/{id}/", h.Accommodation.GetBooking)
			r.Delete("/bookings/{id}/", h.Accommodation.CancelBooking)

			r.Post("/uploads/{kind}/", h.Media.Upload)
		})
	})

	return r
}
