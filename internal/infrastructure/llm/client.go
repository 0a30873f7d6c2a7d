// Package llm generates unverified competitor candidates with an OpenAI-compatible chat API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/logger"
)

const (
	DefaultModel   = "gpt-4o-mini"
	defaultTimeout = 20 * time.Second
	maxRetries     = 2
	maxCandidates  = 10
)

const systemPrompt = `You are a market research assistant for e-commerce founders.
You only answer with a JSON array. Never add commentary.`

const userPromptTemplate = `List up to %d real, currently operating, independent online stores that sell high-ticket products (typically $500 or more) in the "%s" niche and that appear to use a dropshipping or authorized-dealer model.
Exclude general marketplaces and big-box retailers such as Amazon, Walmart, Target, Home Depot, Lowe's, Best Buy, Costco, Wayfair, eBay and Etsy.
Respond with a JSON array of objects with the keys "name", "url", "domain" and "description".`

// Config holds the generator settings
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Client asks a chat model for competitor candidates
type Client struct {
	client      *openai.Client
	model       string
	enabled     bool
	timeout     time.Duration
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	logger      logger.Logger
}

// NewClient creates a generator. Without an API key every call returns ErrGeneratorUnavailable.
func NewClient(cfg Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// requests per minute -> tokens per second, with a burst of one wave of variation queries
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 7)

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm-generator",
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		enabled:     cfg.APIKey != "",
		timeout:     timeout,
		rateLimiter: limiter,
		breaker:     breaker,
		logger:      log,
	}
}

// Enabled reports whether an API key was configured
func (c *Client) Enabled() bool {
	return c.enabled
}

// GenerateCompetitors asks the model for candidate stores in a niche.
// Transport failures are retried; an unparseable answer is ErrGeneratorFailure.
func (c *Client) GenerateCompetitors(ctx context.Context, niche string) ([]domain.StoreRecord, error) {
	if !c.enabled {
		return nil, domain.ErrGeneratorUnavailable
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.completeWithRetry(ctx, fmt.Sprintf(userPromptTemplate, maxCandidates, niche))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
		}
		return nil, err
	}

	stores, err := ParseStoreArray(out.(string))
	if err != nil {
		c.logger.Warn("unparseable generator response", logger.String("niche", niche), logger.Error(err))
		return nil, err
	}

	c.logger.Debug("generated candidates", logger.String("niche", niche), logger.Int("count", len(stores)))
	return stores, nil
}

// completeWithRetry runs one chat completion, retrying transient failures
func (c *Client) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(exponentialBackoff(attempt)):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", domain.ErrGeneratorFailure, ctx.Err())
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limiter: %v", domain.ErrGeneratorFailure, err)
		}

		content, err := c.complete(ctx, prompt)
		if err == nil {
			return content, nil
		}

		lastErr = err
		c.logger.Debug("generator request failed", logger.Int("attempt", attempt+1), logger.Error(err))
		if !isRetryable(err) {
			break
		}
	}

	return "", fmt.Errorf("%w: %v", domain.ErrGeneratorFailure, lastErr)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

// exponentialBackoff returns 500ms, 1s, 2s... for attempts 1, 2, 3...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// isRetryable treats rate limiting, server errors and transport failures as transient
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return !errors.Is(err, context.Canceled)
}
