package prober

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

type route struct {
	status      int
	body        string
	contentType string
	location    string
	err         error
	delay       time.Duration
}

// fakeTransport serves canned responses keyed by "METHOD url"; unknown keys fail like a DNS error
type fakeTransport struct {
	mu       sync.Mutex
	routes   map[string]route
	requests []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{routes: make(map[string]route)}
}

func (f *fakeTransport) on(method, url string, r route) *fakeTransport {
	f.routes[method+" "+url] = r
	return f
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := req.Method + " " + req.URL.String()

	f.mu.Lock()
	f.requests = append(f.requests, key)
	r, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		return nil, errors.New("no such host")
	}
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	header := make(http.Header)
	if r.contentType != "" {
		header.Set("Content-Type", r.contentType)
	}
	if r.location != "" {
		header.Set("Location", r.location)
	}
	return &http.Response{
		StatusCode: r.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(r.body)),
		Request:    req,
	}, nil
}

func (f *fakeTransport) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

var shop = domain.StoreRecord{Name: "Shop", URL: "https://shop.com", Domain: "shop.com"}

func TestVariants(t *testing.T) {
	tests := []struct {
		name     string
		store    domain.StoreRecord
		expected []string
	}{
		{
			name:     "https url",
			store:    shop,
			expected: []string{"https://shop.com", "http://shop.com", "https://www.shop.com", "http://www.shop.com"},
		},
		{
			name:     "url without scheme uses domain",
			store:    domain.StoreRecord{URL: "shop.com/home", Domain: "shop.com"},
			expected: []string{"https://shop.com", "http://shop.com", "https://www.shop.com", "http://www.shop.com"},
		},
		{
			name:     "http url keeps path",
			store:    domain.StoreRecord{URL: "http://www.shop.com/store", Domain: "www.shop.com"},
			expected: []string{"http://www.shop.com/store", "http://www.shop.com/store", "https://www.shop.com", "http://www.shop.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Variants(tt.store))
			assert.Len(t, Variants(tt.store), domain.URLVariants)
		})
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()

	t.Run("head success stops immediately", func(t *testing.T) {
		rt := newFakeTransport().on("HEAD", "https://shop.com", route{status: 200})
		p := New(WithTransport(rt))

		res := p.Exists(ctx, shop, domain.ProbeFast)

		assert.Equal(t, domain.LivenessLive, res.Status)
		assert.Equal(t, "HEAD", res.Method)
		assert.Equal(t, []string{"HEAD https://shop.com"}, rt.seen())
	})

	t.Run("falls back to get on same variant", func(t *testing.T) {
		rt := newFakeTransport().
			on("HEAD", "https://shop.com", route{status: 405}).
			on("GET", "https://shop.com", route{status: 200, body: "ok"})
		p := New(WithTransport(rt))

		res := p.Exists(ctx, shop, domain.ProbeFast)

		assert.True(t, res.Live())
		assert.Equal(t, "GET", res.Method)
		assert.Equal(t, []string{"HEAD https://shop.com", "GET https://shop.com"}, rt.seen())
	})

	t.Run("tries next variant after both methods fail", func(t *testing.T) {
		rt := newFakeTransport().on("HEAD", "http://shop.com", route{status: 301, location: "https://elsewhere.com"})
		p := New(WithTransport(rt), WithSettings(domain.ProbeFast, domain.ProbeSettings{
			HeadTimeout: time.Second, GetTimeout: time.Second, MaxRedirects: 0,
		}))

		res := p.Exists(ctx, shop, domain.ProbeFast)

		assert.True(t, res.Live())
		assert.Equal(t, "http://shop.com", res.URL)
		assert.Equal(t, 301, res.StatusCode)
	})

	t.Run("server errors are not live", func(t *testing.T) {
		rt := newFakeTransport()
		for _, v := range Variants(shop) {
			rt.on("HEAD", v, route{status: 503}).on("GET", v, route{status: 500})
		}
		p := New(WithTransport(rt))

		res := p.Exists(ctx, shop, domain.ProbeThorough)

		assert.Equal(t, domain.LivenessDead, res.Status)
		assert.Equal(t, 500, res.StatusCode)
		assert.Len(t, rt.seen(), 8)
	})

	t.Run("network failures everywhere are dead", func(t *testing.T) {
		rt := newFakeTransport()
		p := New(WithTransport(rt))

		res := p.Exists(ctx, shop, domain.ProbeFast)

		assert.Equal(t, domain.LivenessDead, res.Status)
		assert.Error(t, res.Err)
		assert.Len(t, rt.seen(), 8)
	})

	t.Run("per request timeout bounds a hung socket", func(t *testing.T) {
		rt := newFakeTransport().
			on("HEAD", "https://shop.com", route{status: 200, delay: time.Minute}).
			on("GET", "https://shop.com", route{status: 200})
		p := New(WithTransport(rt), WithSettings(domain.ProbeFast, domain.ProbeSettings{
			HeadTimeout: 20 * time.Millisecond, GetTimeout: time.Second, MaxRedirects: 1,
		}))

		start := time.Now()
		res := p.Exists(ctx, shop, domain.ProbeFast)

		assert.Less(t, time.Since(start), 5*time.Second)
		assert.True(t, res.Live())
		assert.Equal(t, "GET", res.Method)
	})

	t.Run("cancelled context is unknown", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		rt := newFakeTransport()
		p := New(WithTransport(rt))

		res := p.Exists(cctx, shop, domain.ProbeFast)

		assert.Equal(t, domain.LivenessUnknown, res.Status)
		assert.Empty(t, rt.seen())
	})
}

func TestRedirectLimit(t *testing.T) {
	rt := newFakeTransport().
		on("GET", "https://shop.com", route{status: 302, location: "https://shop.com/a"}).
		on("GET", "https://shop.com/a", route{status: 302, location: "https://shop.com/b"}).
		on("GET", "https://shop.com/b", route{status: 200, body: "<html>final</html>", contentType: "text/html"})

	t.Run("fast mode follows one hop", func(t *testing.T) {
		p := New(WithTransport(rt))
		_, client := p.forMode(domain.ProbeFast)

		resp, err := p.do(context.Background(), client, http.MethodGet, "https://shop.com")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/a", resp.Request.URL.Path)
	})

	t.Run("thorough mode follows two hops", func(t *testing.T) {
		p := New(WithTransport(rt))
		_, client := p.forMode(domain.ProbeThorough)

		resp, err := p.do(context.Background(), client, http.MethodGet, "https://shop.com")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestFetchHTML(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first text page with its url", func(t *testing.T) {
		rt := newFakeTransport().
			on("GET", "https://shop.com", route{status: 404, body: "missing", contentType: "text/html"}).
			on("GET", "http://shop.com", route{status: 200, body: "<html>hello</html>", contentType: "text/html; charset=utf-8"})
		p := New(WithTransport(rt))

		page := p.FetchHTML(ctx, shop, domain.ProbeFast)

		assert.True(t, page.Found())
		assert.Equal(t, "<html>hello</html>", page.HTML)
		assert.Equal(t, "http://shop.com", page.FinalURL)
		for _, r := range rt.seen() {
			assert.True(t, strings.HasPrefix(r, "GET "), "unexpected request %s", r)
		}
	})

	t.Run("skips binary bodies", func(t *testing.T) {
		rt := newFakeTransport().
			on("GET", "https://shop.com", route{status: 200, body: "%PDF-1.4", contentType: "application/pdf"}).
			on("GET", "http://shop.com", route{status: 200, body: "<html>ok</html>"})
		p := New(WithTransport(rt))

		page := p.FetchHTML(ctx, shop, domain.ProbeFast)

		assert.Equal(t, "http://shop.com", page.FinalURL)
	})

	t.Run("reports the url reached after redirects", func(t *testing.T) {
		rt := newFakeTransport().
			on("GET", "https://shop.com", route{status: 301, location: "https://www.shop.com/home"}).
			on("GET", "https://www.shop.com/home", route{status: 200, body: "<html>home</html>", contentType: "text/html"})
		p := New(WithTransport(rt))

		page := p.FetchHTML(ctx, shop, domain.ProbeThorough)

		require.True(t, page.Found())
		assert.Equal(t, "https://www.shop.com/home", page.FinalURL)
	})

	t.Run("nothing found", func(t *testing.T) {
		p := New(WithTransport(newFakeTransport()))

		page := p.FetchHTML(ctx, shop, domain.ProbeThorough)

		assert.False(t, page.Found())
		assert.Empty(t, page.HTML)
		assert.Error(t, page.Err)
	})

	t.Run("body is capped", func(t *testing.T) {
		rt := newFakeTransport().on("GET", "https://shop.com", route{
			status: 200, body: strings.Repeat("a", 100), contentType: "text/html",
		})
		p := New(WithTransport(rt), WithMaxBodyBytes(10))

		page := p.FetchHTML(ctx, shop, domain.ProbeFast)

		assert.Len(t, page.HTML, 10)
	})
}
