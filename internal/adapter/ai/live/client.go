// Package live implements the response source backed by an Azure
// OpenAI-compatible chat completions endpoint.
package live

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/learnovatex/platform/internal/adapter/ai/tokencount"
	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/domain"
)

// Client calls the configured model deployment. A single Generate call is a
// single attempt; retry and fallback policy live in the orchestrator.
type Client struct {
	cfg     config.Config
	hc      *http.Client
	counter *tokencount.Counter
}

// New constructs a live client with a bounded request timeout. Outbound
// calls are traced so model latency shows up as client spans.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   60 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		counter: tokencount.NewCounter(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate performs one chat completion call.
func (c *Client) Generate(ctx domain.Context, req domain.GenerationRequest) (domain.RawResponse, error) {
	msgs := make([]chatMessage, 0, 2)
	if req.SystemInstruction != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Messages:    msgs,
		MaxTokens:   c.cfg.AIMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("op=live.marshal: %w", err)
	}

	promptTokens := c.counter.Count(c.cfg.OpenAIDeployment, req.Prompt)
	slog.Debug("calling live model",
		slog.String("deployment", c.cfg.OpenAIDeployment),
		slog.String("domain", string(req.Domain)),
		slog.Int("prompt_tokens", promptTokens))

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.cfg.OpenAIEndpoint, c.cfg.OpenAIDeployment, c.cfg.AIAPIVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("op=live.request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.cfg.OpenAIAPIKey)

	start := time.Now()
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("op=live.call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("live model returned non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)))
		return domain.RawResponse{}, fmt.Errorf("op=live.call: status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.RawResponse{}, fmt.Errorf("op=live.decode: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return domain.RawResponse{}, fmt.Errorf("op=live.decode: empty completion")
	}

	slog.Info("live model responded",
		slog.String("domain", string(req.Domain)),
		slog.Duration("duration", time.Since(start)))
	return domain.RawResponse{
		Text:      out.Choices[0].Message.Content,
		Source:    domain.OriginLive,
		Succeeded: true,
	}, nil
}
