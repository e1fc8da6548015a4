package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtadapter "health-insights/internal/adapters/auth/jwt"
	"health-insights/internal/adapters/completion/gemini"
	"health-insights/internal/adapters/storage/mongodb"
	pg "health-insights/internal/adapters/storage/postgres"
	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/records"
	"health-insights/internal/platform/config"
	"health-insights/internal/platform/httpclient"
	"health-insights/internal/platform/logger"
	"health-insights/internal/platform/telemetry"
	"health-insights/internal/router"

	"github.com/joho/godotenv"
)

// @title health-insights API
// @version 1.0
// @description Consultas en lenguaje natural sobre historias clínicas, vacunas y agenda de doctores.
// @BasePath /
func main() {
	// .env es opcional; en prod todo viene del entorno
	_ = godotenv.Load()

	boot := logger.NewFromEnv()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		boot.Error("config error", map[string]any{"error": err.Error()})
		_ = boot.Sync()
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log, openStores)
	stop()

	if err != nil {
		log.Error("fatal", map[string]any{"error": err.Error()})
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

type storeOpener func(ctx context.Context, cfg *config.Config, log logger.Logger) (stores, error)

// run arma todo y sirve hasta que ctx se cancela.
// Verifier y generador se construyen antes de abrir stores: un error ahí no deja conexiones colgadas.
func run(ctx context.Context, cfg *config.Config, log logger.Logger, open storeOpener) error {
	verifier, err := jwtadapter.NewVerifier(cfg.JWT.Secret)
	if err != nil {
		return fmt.Errorf("jwt verifier: %w", err)
	}

	gen, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		Timeout:    cfg.Gemini.Timeout,
		HTTPClient: httpclient.New(cfg.Gemini.Timeout),
	})
	if err != nil {
		return fmt.Errorf("gemini client: %w", err)
	}

	shutdownTracing, err := telemetry.Init(ctx, cfg.App.Name)
	if err != nil {
		return fmt.Errorf("telemetry init: %w", err)
	}

	st, err := open(ctx, cfg, log)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return fmt.Errorf("open stores: %w", err)
	}

	r := router.NewRouter(router.Options{
		Verifier:       verifier,
		Generator:      gen,
		Identities:     st.identities,
		Records:        st.records,
		Logger:         log,
		ServiceName:    cfg.App.Name,
		CookieName:     cfg.Auth.CookieName,
		AllowedOrigins: cfg.CORS.Origins(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// el generador puede tardar hasta gemini.timeout
		WriteTimeout: cfg.Gemini.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "store": st.kind, "model": cfg.Gemini.Model})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down", nil)
	case serveErr = <-errCh:
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error("http shutdown", map[string]any{"error": err.Error()})
	}
	if err := st.close(drainCtx); err != nil {
		log.Error("store close", map[string]any{"error": err.Error()})
	}
	if err := shutdownTracing(drainCtx); err != nil {
		log.Warn("tracing shutdown", map[string]any{"error": err.Error()})
	}
	return serveErr
}

type stores struct {
	kind       string
	identities identities.Repository
	records    records.Repository
	close      func(context.Context) error
}

// openStores: Mongo si hay MONGO_URI, si no Postgres si hay DB_DSN, si no in-memory (vacío, solo dev).
func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (stores, error) {
	switch {
	case cfg.Mongo.URI != "":
		client, db, err := mongodb.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return stores{}, err
		}
		return stores{
			kind:       "mongo",
			identities: mongodb.NewIdentitiesRepo(db),
			records:    mongodb.NewRecordsRepo(db),
			close:      client.Disconnect,
		}, nil

	case cfg.DB.DSN != "":
		db, err := pg.Open(ctx, cfg.DB.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			kind:       "postgres",
			identities: pg.NewIdentitiesRepo(db),
			records:    pg.NewRecordsRepo(db),
			close:      func(context.Context) error { return db.Close() },
		}, nil

	default:
		log.Warn("no MONGO_URI or DB_DSN; using empty in-memory store", nil)
		return stores{
			kind:  "memory",
			close: func(context.Context) error { return nil },
		}, nil
	}
}
