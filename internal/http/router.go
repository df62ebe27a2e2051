package http

import (
	"net/http"

	"github.com/Complexlity/paywithglide/internal/http/handlers"
	"github.com/Complexlity/paywithglide/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const noStore = "no-store, no-cache, must-revalidate, proxy-revalidate, max-age=0, s-maxage=0"

// RouterDeps bundles what NewRouter mounts
type RouterDeps struct {
	BasePath string
	Frames   *handlers.FrameHandler
	Images   *handlers.ImageHandler
	Verifier middleware.MessageVerifier // nil disables frame message verification
	Limiter  *middleware.RateLimiter
	Gatherer prometheus.Gatherer // nil disables /metrics
	Logger   *zap.Logger
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)

	healthHandler := handlers.NewHealthHandler()
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	basePath := deps.BasePath
	if basePath == "" {
		basePath = "/"
	}

	r.Route(basePath, func(r chi.Router) {
		r.Use(chimw.SetHeader("Cache-Control", noStore))

		r.Get("/", deps.Frames.HandleInitial)

		// Images
		r.Get("/initial-image", deps.Images.HandleInitial)
		r.Get("/review-image/{toId}", deps.Images.HandleReview)
		r.Get("/send-image/{toId}/{amount}/{received}/{chain}/{currency}", deps.Images.HandleSend)
		r.Get("/tx-processing/{fromId}/{toId}/{received}", deps.Images.HandleProcessing)
		r.Get("/tx-success/{fromId}/{toId}/{received}", deps.Images.HandleSuccess)
		r.Get("/tx-failed/{fromId}/{toId}/{received}", deps.Images.HandleFailed)

		// Frame actions (require a decodable, optionally verified, frame message)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Interactor(deps.Verifier, deps.Logger))

			r.Post("/", deps.Frames.HandleInitial)
			r.With(searchLimit(deps.Limiter)).Post("/review", deps.Frames.HandleReview)
			r.Post("/send/{toId}", deps.Frames.HandleSend)
			r.With(middleware.DisableAttribution).Post("/send-tx/{sessionId}", deps.Frames.HandleSendTx)
			r.Post("/tx-status/{sessionId}/{fromId}/{toId}/{received}", deps.Frames.HandleStatus)
		})
	})

	return r
}

func searchLimit(limiter *middleware.RateLimiter) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimitMiddleware(limiter, middleware.GetInteractorKey)
}
