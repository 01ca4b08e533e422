package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"resty.dev/v3"

	"studybuddy/internal/config"
	"studybuddy/internal/logger"
)

const tracerName = "studybuddy/internal/ai"

// Gemini calls the generateContent endpoint of the Google generative-language API.
type Gemini struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	log              *zap.Logger
}

// NewGemini builds a client from configuration. MaxRetries extra attempts are made
// for transport errors, 429 and 5xx responses.
func NewGemini(cfg config.GeminiConfig, log *zap.Logger) *Gemini {
	client := resty.NewWithClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("x-goog-api-key", cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &Gemini{
		httpClient:       client,
		model:            cfg.Model,
		maxRetryAttempts: cfg.MaxRetries,
		log:              logger.Component(log, "gemini"),
	}
}

var _ Generator = (*Gemini)(nil)

// Close releases idle connections.
func (g *Gemini) Close() error {
	return g.httpClient.Close()
}

func (g *Gemini) Available() bool { return true }

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini response error %d: %s", e.StatusCode, e.Body)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
	}
	return true
}

// GenerateText sends the prompt as a single user turn and returns the concatenated text parts.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "gemini.generate_content",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("gemini.model", g.model), attribute.Int("gemini.prompt_chars", len(prompt))),
	)
	defer span.End()

	var text string
	err := retry.Do(
		func() error {
			out, err := g.generate(ctx, prompt)
			if err != nil {
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			text = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(g.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			g.log.Debug("gemini_retry", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", err
	}
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	response, err := g.httpClient.R().
		SetContext(ctx).
		SetPathParam("model", g.model).
		SetBody(body).
		SetResult(&generateResponse{}).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if response.IsError() {
		return "", &StatusError{StatusCode: response.StatusCode(), Body: response.String()}
	}

	result, _ := response.Result().(*generateResponse)
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates: %s", response.String())
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("gemini returned empty text (finish reason %q)", result.Candidates[0].FinishReason)
	}
	return sb.String(), nil
}
