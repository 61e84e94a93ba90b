// Package stylist fetches short advisory copy for a product from an
// external text-generation API. Calls are decorative: any failure is
// recovered locally with a fixed fallback string and is never surfaced to
// the viewer as an error.
package stylist

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"golang.org/x/sync/singleflight"
)

// Fixed fallback strings. The item-level fallback covers transport and
// decode failures; the pairing-advice fallback covers a successful call
// that produced no usable text.
const (
	FallbackItem    = "A versatile piece that elevates any curated wardrobe."
	FallbackPairing = "Pairs beautifully with minimalist accessories for a timeless aesthetic."
)

// Config holds the upstream endpoint settings.
type Config struct {
	// BaseURL is the text-generation endpoint. Empty disables remote calls
	// and every request resolves to the item-level fallback.
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// Model names the generation model requested from the upstream.
	Model string
}

// Client requests styling advice per product. Concurrent requests for the
// same product are collapsed into one upstream call, and the latest real
// result per product is cached. Fallback strings are never cached, so a
// product that hit a transient failure gets a fresh attempt on its next
// view.
type Client struct {
	cfg  Config
	http *http.Client

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]string
}

// New creates a Client using the given HTTP client. Pass a client with an
// instrumented transport in production.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		cfg:   cfg,
		http:  httpClient,
		cache: make(map[string]string),
	}
}

// Advice returns a short styling tip for the product. It never fails:
// unreachable or misbehaving upstreams yield one of the fixed fallbacks.
func (c *Client) Advice(ctx context.Context, productName, category string) string {
	key := productName + "|" + category

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		text, ok := c.generate(ctx, productName, category)
		if ok {
			c.mu.Lock()
			c.cache[key] = text
			c.mu.Unlock()
		}
		return text, nil
	})
	return v.(string)
}

// generate performs one upstream call and maps every failure to a
// fallback. ok reports a real result worth caching; fallbacks return
// false so the next request retries the upstream.
func (c *Client) generate(ctx context.Context, productName, category string) (text string, ok bool) {
	if c.cfg.BaseURL == "" {
		return FallbackItem, false
	}

	text, err := c.call(ctx, prompt(productName, category))
	if err != nil {
		return FallbackItem, false
	}
	if text = strings.TrimSpace(text); text == "" {
		return FallbackPairing, false
	}
	return text, true
}

// prompt renders the stylist persona prompt for the given product.
func prompt(productName, category string) string {
	var b strings.Builder
	b.WriteString(`You are a world-class fashion stylist for a high-end luxury brand called "ShopVibe Maison". `)
	b.WriteString(`Provide a brief, poetic, and practical styling tip for the following item: "`)
	b.WriteString(productName)
	b.WriteString(`" (Category: `)
	b.WriteString(category)
	b.WriteString(`). Focus on what other items or vibes it pairs with. Keep the advice under 25 words.`)
	return b.String()
}

func (c *Client) call(ctx context.Context, p string) (string, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("model", func(e *jx.Encoder) { e.Str(c.cfg.Model) })
		e.Field("prompt", func(e *jx.Encoder) { e.Str(p) })
		e.Field("temperature", func(e *jx.Encoder) { e.Float64(0.7) })
		e.Field("top_p", func(e *jx.Encoder) { e.Float64(0.9) })
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(e.Bytes()))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read body")
	}

	var text string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "text" {
			return d.Skip()
		}
		v, err := d.Str()
		text = v
		return err
	}); err != nil {
		return "", errors.Wrap(err, "decode body")
	}

	return text, nil
}
