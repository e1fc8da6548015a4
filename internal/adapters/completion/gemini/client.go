package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"health-insights/internal/ports/completion"

	"google.golang.org/genai"
)

var (
	ErrGeminiNotConfigured = errors.New("gemini client not configured")
)

const DefaultModel = "gemini-1.5-pro"

// Config del cliente Gemini.
// APIKey viene de GEMINI_API_KEY; el resto tiene defaults.
type Config struct {
	APIKey string
	Model  string

	// Timeout por llamada. Si es 0 se usa el del HTTPClient.
	Timeout time.Duration

	// HTTPClient opcional (instrumentado desde platform/httpclient).
	HTTPClient *http.Client
}

// contentGenerator es la parte del SDK que usamos; permite testear sin red.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implementa completion.Generator sobre google.golang.org/genai.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrGeminiNotConfigured
	}

	g, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	return newClient(g.Models, cfg), nil
}

func newClient(models contentGenerator, cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		models:  models,
		model:   model,
		timeout: cfg.Timeout,
	}
}

// Generate hace una sola llamada (sin reintentos ni streaming).
// Respuesta sin texto => "" sin error; el caller aplica su fallback.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", fmt.Errorf("%w: %v", completion.ErrUpstream, ErrGeminiNotConfigured)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", completion.ErrUpstream, err)
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}
