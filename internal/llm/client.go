// Package llm wraps the chat-completion providers behind one lazily
// initialized client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"recruitbot/internal/worker"

	"github.com/rs/zerolog"
)

var ErrNotInitialized = errors.New("llm client is not initialized")

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Backend is a single provider implementation.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type backendFactory func(ctx context.Context, cfg Config) (Backend, error)

// Client is the process-wide generation handle. The provider is built on
// first use (or by Init) and reused until Shutdown.
type Client struct {
	cfg     Config
	factory backendFactory
	logger  *zerolog.Logger

	mu      sync.Mutex
	backend Backend
	closed  bool
}

func New(cfg Config, logger *zerolog.Logger) *Client {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &Client{cfg: cfg, factory: newBackend, logger: logger}
}

func newBackend(ctx context.Context, cfg Config) (Backend, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		return NewOpenAIBackend(cfg)
	case ProviderGemini:
		return NewGeminiBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Init builds the provider once. Repeated calls are no-ops.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.get(ctx)
	return err
}

func (c *Client) get(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// не инициализирован: повтор не поможет
	if c.closed {
		return nil, worker.Permanent(ErrNotInitialized)
	}
	if c.backend != nil {
		return c.backend, nil
	}
	if c.cfg.APIKey == "" {
		return nil, worker.Permanent(fmt.Errorf("%w: api key is empty", ErrNotInitialized))
	}

	b, err := c.factory(ctx, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("init %s backend: %w", c.cfg.Provider, err)
	}
	c.backend = b
	c.logger.Info().Str("provider", c.cfg.Provider).Str("model", c.cfg.Model).Msg("llm client initialized")
	return b, nil
}

// Complete implements domain.GenerationBackend.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	b, err := c.get(ctx)
	if err != nil {
		return "", err
	}
	return b.Complete(ctx, system, user)
}

// Shutdown releases the provider. The client cannot be used afterwards.
func (c *Client) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend = nil
	c.closed = true
}
