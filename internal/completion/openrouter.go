package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "mistralai/mistral-7b-instruct"
)

type openRouterClient struct {
	client *openai.Client
	model  string
}

// refererTransport adds the attribution header OpenRouter uses to identify
// the calling application.
type refererTransport struct {
	referer string
	base    http.RoundTripper
}

func (t *refererTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", t.referer)
	return t.base.RoundTrip(r)
}

func NewOpenRouterClient(cfg Config) Client {
	oc := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	oc.BaseURL = defaultOpenRouterURL
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Referer != "" {
		oc.HTTPClient = &http.Client{Transport: &refererTransport{referer: cfg.Referer, base: http.DefaultTransport}}
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	return &openRouterClient{client: openai.NewClientWithConfig(oc), model: model}
}

func (c *openRouterClient) Complete(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Provider: ProviderOpenRouter, Kind: KindEmpty, Err: errors.New("no choices returned")}
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &UpstreamError{Provider: ProviderOpenRouter, Kind: KindEmpty, Err: errors.New("empty message content")}
	}
	return content, nil
}

func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	return &UpstreamError{Provider: ProviderOpenRouter, Kind: kindForStatus(status), Status: status, Err: err}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindConfig
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return KindQuota
	default:
		return KindTransport
	}
}
