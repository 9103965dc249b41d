package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

// RetryPolicy decides whether a failed rate fetch is worth repeating. It is
// injected into the client instead of being baked into each call site, so the
// policy can be tuned from configuration in one place.
type RetryPolicy struct {
	MaxRetries  int
	Delay       time.Duration
	ShouldRetry func(status int, err error) bool
}

// DefaultRetryPolicy retries once on transport errors and 5xx responses and
// never on client errors: a rejected API key will not become valid by asking
// again.
func DefaultRetryPolicy(maxRetries int, delay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxRetries: maxRetries,
		Delay:      delay,
		ShouldRetry: func(status int, err error) bool {
			if err != nil {
				return true
			}
			return status >= 500
		},
	}
}

// Client fetches exchange rates from the configured FX provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	policy     RetryPolicy
}

func NewClient(baseURL, apiKey string, timeout time.Duration, policy RetryPolicy) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		policy:     policy,
	}
}

type providerResponse struct {
	Base  string             `json:"base"`
	AsOf  time.Time          `json:"asOf"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates asks the provider for the base currency's rates against the
// given quotes and returns them scaled to micro-units.
func (c *Client) FetchRates(ctx context.Context, base string, quotes []string) ([]*domain.CurrencyRate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("base", base)
	q.Set("symbols", strings.Join(quotes, ","))
	u.RawQuery = q.Encode()

	body, err := c.do(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var resp providerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	if resp.Base == "" {
		resp.Base = base
	}
	if resp.AsOf.IsZero() {
		resp.AsOf = time.Now()
	}

	rates := make([]*domain.CurrencyRate, 0, len(resp.Rates))
	for quote, value := range resp.Rates {
		rates = append(rates, &domain.CurrencyRate{
			Base:  resp.Base,
			Quote: quote,
			Rate:  int64(math.Round(value * domain.RateScale)),
			AsOf:  resp.AsOf,
		})
	}
	return rates, nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.policy.Delay):
			}
		}

		body, status, err := c.request(ctx, url)
		if err == nil && status == http.StatusOK {
			return body, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("fx provider returned status %d", status)
		}

		if c.policy.ShouldRetry != nil && !c.policy.ShouldRetry(status, err) {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

func (c *Client) request(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
