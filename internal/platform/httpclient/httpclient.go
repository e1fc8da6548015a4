package httpclient

import (
	"net/http"
	"time"

	"health-insights/internal/platform/telemetry"
)

const (
	DefaultTimeout = 60 * time.Second
)

// New crea el *http.Client saliente que comparten los adapters (SDK de Gemini).
// El transport va instrumentado con OTel; timeout <= 0 usa DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	return NewWithTransport(timeout, nil)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: telemetry.InstrumentTransport(tr),
	}
}
