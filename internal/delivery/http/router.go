package http

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"

	"holidayplanner/internal/delivery/http/controllers"
	"holidayplanner/internal/delivery/http/helpers"
)

// Controllers groups the route handlers mounted by NewRouter.
type Controllers struct {
	Experiences *controllers.ExperienceController
	Trips       *controllers.TripController
	Users       *controllers.UserController
	Health      *controllers.HealthController
}

// RouterConfig holds the non-handler settings of the router.
type RouterConfig struct {
	// RequireAuth wraps every route except /users/*, /healthz, /metrics and /swagger/.
	RequireAuth func(http.HandlerFunc) http.HandlerFunc
	// AuthRateLimit is the number of /users/* requests allowed per client IP and window.
	AuthRateLimit  int
	AuthRateWindow time.Duration
	Metrics        http.Handler
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	auth := cfg.RequireAuth

	// Users
	limit := authLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	mux.Handle("POST /users/login", limit(http.HandlerFunc(c.Users.Login)))
	mux.Handle("POST /users/signup", limit(http.HandlerFunc(c.Users.SignUp)))

	// Experiences
	mux.HandleFunc("GET /events", auth(c.Experiences.ListExperiences))
	mux.HandleFunc("GET /events/{id}", auth(c.Experiences.GetExperienceByID))
	mux.HandleFunc("GET /events/organiser/{organiserId}", auth(c.Experiences.ListOrganiserExperiences))
	mux.HandleFunc("POST /events", auth(c.Experiences.CreateExperience))

	// Trips
	mux.HandleFunc("GET /trips", auth(c.Trips.ListTrips))
	mux.HandleFunc("GET /trips/{id}", auth(c.Trips.GetTripByID))

	// Ops
	mux.HandleFunc("GET /healthz", c.Health.Health)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func authLimiter(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeTooManyReqs, "too many requests, try again later")
		}),
	)
}
