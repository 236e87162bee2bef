// Package completion talks to the language model that writes quiz content.
// Clients never retry; callers own timeouts and retry policy.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

var (
	ErrMissingCredential = errors.New("completion API key not configured")
	ErrUnknownProvider   = errors.New("unknown completion provider")
)

type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type Kind string

const (
	KindConfig    Kind = "config"
	KindTransport Kind = "transport"
	KindQuota     Kind = "quota"
	KindEmpty     Kind = "empty_response"
)

type UpstreamError struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s upstream %s error", e.Provider, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsConfig reports whether err is an upstream failure caused by local
// configuration rather than the remote service.
func IsConfig(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindConfig
}

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Referer  string
}

// New builds the client for cfg.Provider. A missing credential is returned
// as a KindConfig UpstreamError so callers can decide whether to start
// without one.
func New(ctx context.Context, cfg Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenRouter
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &UpstreamError{Provider: provider, Kind: KindConfig, Err: ErrMissingCredential}
	}

	switch provider {
	case ProviderOpenRouter:
		return NewOpenRouterClient(cfg), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, &UpstreamError{Provider: provider, Kind: KindConfig, Err: fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)}
	}
}

type unconfigured struct {
	err error
}

// Unconfigured returns a client whose every call fails with err. It lets the
// service start without a credential and report the problem per request.
func Unconfigured(err error) Client {
	return &unconfigured{err: err}
}

func (u *unconfigured) Complete(ctx context.Context, req Request) (string, error) {
	return "", u.err
}
