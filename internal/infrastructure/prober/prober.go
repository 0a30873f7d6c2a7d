// Package prober checks candidate stores over HTTP.
// Every call is bounded by its own timeout; transport failures become tagged results, never errors.
package prober

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/logger"
)

const (
	defaultUserAgent    = "Mozilla/5.0 (compatible; NicheScout/1.0)"
	defaultMaxBodyBytes = 2 << 20
)

// Prober issues HEAD/GET probes against URL variants of a store
type Prober struct {
	settings     map[domain.ProbeMode]domain.ProbeSettings
	clients      map[domain.ProbeMode]*http.Client
	transport    http.RoundTripper
	userAgent    string
	maxBodyBytes int64
	logger       logger.Logger
}

// Option configures a Prober
type Option func(*Prober)

// WithTransport replaces the HTTP transport used by every mode
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Prober) {
		p.transport = rt
	}
}

// WithSettings overrides the timeouts and redirect limit of one mode
func WithSettings(mode domain.ProbeMode, s domain.ProbeSettings) Option {
	return func(p *Prober) {
		p.settings[mode] = s
	}
}

// WithUserAgent sets the User-Agent header sent with every probe
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithMaxBodyBytes caps how much of a homepage is read
func WithMaxBodyBytes(n int64) Option {
	return func(p *Prober) {
		p.maxBodyBytes = n
	}
}

// WithLogger attaches a logger for per-variant debug output
func WithLogger(l logger.Logger) Option {
	return func(p *Prober) {
		p.logger = l
	}
}

// New creates a prober with the default fast and thorough settings
func New(opts ...Option) *Prober {
	p := &Prober{
		settings: map[domain.ProbeMode]domain.ProbeSettings{
			domain.ProbeFast:     domain.DefaultProbeSettings(domain.ProbeFast),
			domain.ProbeThorough: domain.DefaultProbeSettings(domain.ProbeThorough),
		},
		transport:    http.DefaultTransport,
		userAgent:    defaultUserAgent,
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.clients = make(map[domain.ProbeMode]*http.Client, len(p.settings))
	for mode, s := range p.settings {
		p.clients[mode] = newClient(p.transport, s.MaxRedirects)
	}
	return p
}

// newClient returns a client that stops after maxRedirects hops and hands back the
// last response instead of failing, so any status code is a successful fetch.
func newClient(rt http.RoundTripper, maxRedirects int) *http.Client {
	return &http.Client{
		Transport: rt,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

func (p *Prober) forMode(mode domain.ProbeMode) (domain.ProbeSettings, *http.Client) {
	if c, ok := p.clients[mode]; ok {
		return p.settings[mode], c
	}
	return p.settings[domain.ProbeThorough], p.clients[domain.ProbeThorough]
}

// Variants returns the four URLs tried for a store, in order: the stored URL (or
// https + domain), its http downgrade, then https and http with a www. prefix.
func Variants(store domain.StoreRecord) []string {
	host := store.Key()

	primary := strings.TrimSpace(store.URL)
	if !strings.HasPrefix(primary, "http://") && !strings.HasPrefix(primary, "https://") {
		primary = "https://" + host
	}
	downgrade := "http://" + strings.TrimPrefix(strings.TrimPrefix(primary, "https://"), "http://")

	return []string{
		primary,
		downgrade,
		"https://www." + host,
		"http://www." + host,
	}
}

// Exists reports whether any variant answers HEAD or GET with a 2xx/3xx status.
// GET is tried on a variant only when HEAD did not confirm it.
func (p *Prober) Exists(ctx context.Context, store domain.StoreRecord, mode domain.ProbeMode) domain.LivenessResult {
	settings, client := p.forMode(mode)
	result := domain.LivenessResult{Status: domain.LivenessDead}

	attempts := []struct {
		method  string
		timeout time.Duration
	}{
		{http.MethodHead, settings.HeadTimeout},
		{http.MethodGet, settings.GetTimeout},
	}

	for _, variant := range Variants(store) {
		for _, a := range attempts {
			if ctx.Err() != nil {
				return domain.LivenessResult{Status: domain.LivenessUnknown, Err: ctx.Err()}
			}

			status, err := p.status(ctx, client, a.method, variant, a.timeout)
			if err != nil {
				p.logger.Debug("probe failed",
					logger.String("url", variant),
					logger.String("method", a.method),
					logger.Error(err),
				)
				result.Err = err
				continue
			}
			if isLiveStatus(status) {
				return domain.LivenessResult{
					Status:     domain.LivenessLive,
					URL:        variant,
					Method:     a.method,
					StatusCode: status,
				}
			}
			result.StatusCode = status
		}
	}

	return result
}

// status performs one request and returns its status code; the body is discarded
func (p *Prober) status(ctx context.Context, client *http.Client, method, target string, timeout time.Duration) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.do(reqCtx, client, method, target)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}

// FetchHTML returns the first variant whose GET answers in [200,400) with a text body
func (p *Prober) FetchHTML(ctx context.Context, store domain.StoreRecord, mode domain.ProbeMode) domain.PageResult {
	settings, client := p.forMode(mode)
	var lastErr error

	for _, variant := range Variants(store) {
		if ctx.Err() != nil {
			return domain.PageResult{Err: ctx.Err()}
		}

		html, finalURL, err := p.fetch(ctx, client, variant, settings.GetTimeout)
		if err != nil {
			p.logger.Debug("fetch failed", logger.String("url", variant), logger.Error(err))
			lastErr = err
			continue
		}
		return domain.PageResult{HTML: html, FinalURL: finalURL}
	}

	return domain.PageResult{Err: lastErr}
}

// fetch returns the body and the URL that answered after redirects
func (p *Prober) fetch(ctx context.Context, client *http.Client, target string, timeout time.Duration) (string, string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.do(reqCtx, client, http.MethodGet, target)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if !isLiveStatus(resp.StatusCode) {
		return "", "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}

	if !isTextContent(resp.Header.Get("Content-Type"), body) {
		return "", "", fmt.Errorf("non-text content type %q", resp.Header.Get("Content-Type"))
	}

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return string(body), finalURL, nil
}

func (p *Prober) do(ctx context.Context, client *http.Client, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	return client.Do(req)
}

func isLiveStatus(code int) bool {
	return code >= 200 && code < 400
}

// isTextContent accepts text/* and XHTML; a missing header falls back to sniffing the body
func isTextContent(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}
