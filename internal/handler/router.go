package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/maskpaint/inpaint-api/internal/logging"
	"github.com/maskpaint/inpaint-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Content-Type"}

	allowedMethods = strings.Join(corsMethods, ",")
	allowedHeaders = strings.Join(corsHeaders, ",")
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// allowPolicy advertises the fixed method and header policy on every response.
// It runs after cors.Handler so a preflight's echoed request method is replaced.
func allowPolicy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		next.ServeHTTP(w, r)
	})
}

func NewRouter(cfg RouterConfig, inpaint *InpaintHandler) http.Handler {
	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		logging.RequestID,
		middleware.RealIP,
		logging.AccessLog(cfg.Logger),
		middleware.Recoverer,
		metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:     cfg.AllowedOrigins,
			AllowedMethods:     corsMethods,
			AllowedHeaders:     corsHeaders,
			OptionsPassthrough: true,
		}),
		allowPolicy,
	}...)

	r.Options("/", Preflight)
	r.Options("/*", Preflight)

	r.Get("/", Index)
	r.Post("/api/inpaint", inpaint.Inpaint)
	r.Get("/healthz", Healthz)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	return r
}
