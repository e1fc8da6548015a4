package main

import (
	"context"
	"testing"
	"time"

	jwtadapter "health-insights/internal/adapters/auth/jwt"
	"health-insights/internal/adapters/completion/gemini"
	"health-insights/internal/platform/config"
	"health-insights/internal/platform/logger"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Gemini.APIKey = "key"
	cfg.Gemini.Timeout = time.Second
	cfg.JWT.Secret = "secret"
	cfg.App.Name = "health-insights-test"
	return cfg
}

// opener que registra si se llegó a abrir algún store.
func trackingOpener(opened *bool) storeOpener {
	return func(context.Context, *config.Config, logger.Logger) (stores, error) {
		*opened = true
		return stores{kind: "memory", close: func(context.Context) error { return nil }}, nil
	}
}

func TestRun_VerifierErrorBeforeStores(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""

	opened := false
	err := run(context.Background(), cfg, logger.Nop(), trackingOpener(&opened))

	assert.ErrorIs(t, err, jwtadapter.ErrSecretRequired)
	assert.False(t, opened)
}

func TestRun_GeneratorErrorBeforeStores(t *testing.T) {
	cfg := testConfig()
	cfg.Gemini.APIKey = "  "

	opened := false
	err := run(context.Background(), cfg, logger.Nop(), trackingOpener(&opened))

	assert.ErrorIs(t, err, gemini.ErrGeminiNotConfigured)
	assert.False(t, opened)
}

func TestRun_ClosesStoresOnShutdown(t *testing.T) {
	cfg := testConfig()

	ctx, cancel := context.WithCancel(context.Background())
	closed := make(chan struct{})
	open := func(context.Context, *config.Config, logger.Logger) (stores, error) {
		return stores{kind: "memory", close: func(context.Context) error {
			close(closed)
			return nil
		}}, nil
	}

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, logger.Nop(), open) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	select {
	case <-closed:
	default:
		t.Fatal("stores were not closed")
	}
}
