package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"mvgen/internal/http/handlers"
	"mvgen/internal/middleware"
)

// Options carries the cross-cutting settings the router needs.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	Clock           clockwork.Clock
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Get("/styles", app.StylesList)
		r.Get("/styles/{name}", app.StyleGet)

		r.Group(func(r chi.Router) {
			if opts.RateLimitPerMin > 0 {
				r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute, opts.Clock))
			}
			r.Post("/sessions", app.SessionsCreate)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", app.SessionGet)
				r.Delete("/", app.SessionDelete)
				r.Post("/audio", app.SessionAudio)
				r.Put("/style", app.SessionStyle)
				r.Put("/hover", app.SessionHover)
				r.Delete("/hover", app.SessionUnhover)
				r.Post("/generate", app.SessionGenerate)
			})
		})
	})

	return r
}
