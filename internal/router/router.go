package router

import (
	"context"
	"fmt"
	"net/http"

	mem "health-insights/internal/adapters/storage/memory"
	_ "health-insights/internal/docs"
	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/insights"
	"health-insights/internal/domain/records"
	"health-insights/internal/middleware"
	"health-insights/internal/platform/logger"
	"health-insights/internal/platform/metrics"
	"health-insights/internal/platform/telemetry"
	"health-insights/internal/ports/auth"
	"health-insights/internal/ports/completion"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Verifier  auth.TokenVerifier   // nil => todas las rutas protegidas responden 401
	Generator completion.Generator // nil => las consultas fallan con 500

	// Opcionales: si no vienen, stores in-memory vacíos (dev/tests).
	Identities identities.Repository
	Records    records.Repository

	Logger         logger.Logger
	ServiceName    string
	CookieName     string
	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if opts.Verifier == nil {
		opts.Verifier = denyAll{}
	}
	if opts.Generator == nil {
		opts.Generator = unavailable{}
	}
	if opts.Identities == nil {
		opts.Identities = mem.NewIdentityRepo()
	}
	if opts.Records == nil {
		opts.Records = mem.NewRecordsRepo()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "health-insights"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(metrics.Middleware)
	r.Use(telemetry.HTTPMiddleware(opts.ServiceName))
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	authn := middleware.Authenticate(opts.Verifier, opts.CookieName, log)

	// Services por módulo
	identsSvc := identities.NewService(opts.Identities)
	insightsSvc := insights.NewService(opts.Records, identsSvc, opts.Generator, log.With(map[string]any{"module": "insights"}))

	// Rutas por módulo
	r.Group(func(ar chi.Router) {
		ar.Use(authn, middleware.RequireRole())
		identities.RegisterRoutes(ar)
	})
	insights.RegisterRoutes(r, insightsSvc, authn)

	return r
}

// corsOptions: con credenciales el browser no acepta "Access-Control-Allow-Origin: *",
// así que "*" (o lista vacía) se traduce a reflejar el Origin del request.
func corsOptions(allowed []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	anyOrigin := len(allowed) == 0
	for _, o := range allowed {
		if o == "*" {
			anyOrigin = true
		}
	}
	if anyOrigin {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
		return opts
	}
	opts.AllowedOrigins = allowed
	return opts
}

type denyAll struct{}

func (denyAll) Verify(context.Context, string) (auth.Claims, error) {
	return auth.Claims{}, auth.ErrUnauthorized
}

type unavailable struct{}

func (unavailable) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: generator not configured", completion.ErrUpstream)
}
