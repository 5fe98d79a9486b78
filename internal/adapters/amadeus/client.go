// internal/adapters/amadeus/client.go
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/domain"
)

const minBatchDelay = 300 * time.Millisecond

// Client wraps the Amadeus self-service hotel APIs: the OAuth2 token
// endpoint, the by-city hotel listing, and the batched hotel-offers search.
//
// Failures propagate immediately; nothing is retried. The only pacing is the
// limiter that spaces consecutive offer-batch calls.
type Client struct {
	base   string
	hc     *http.Client
	key    string
	secret string
	rl     *rate.Limiter
	tokens domain.TokenCache // optional; nil disables token reuse
}

func New(base, key, secret string, batchDelay time.Duration, tokens domain.TokenCache) (*Client, error) {
	if key == "" || secret == "" {
		return nil, fmt.Errorf("amadeus: API key and secret are required")
	}
	if batchDelay < minBatchDelay {
		batchDelay = minBatchDelay
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{Timeout: 20 * time.Second},
		key:    key,
		secret: secret,
		rl:     rate.NewLimiter(rate.Every(batchDelay), 1),
		tokens: tokens,
	}, nil
}

// Authenticate returns a bearer token, reusing a cached one when available.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(ctx); ok {
			return tok, nil
		}
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.key},
		"client_secret": {c.secret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.WrapError(domain.KindUpstreamAuth, "build token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveUpstream("token", 0, time.Since(start))
		return "", domain.WrapError(domain.KindUpstreamAuth, "token exchange failed", err)
	}
	defer resp.Body.Close()
	observability.ObserveUpstream("token", resp.StatusCode, time.Since(start))

	if resp.StatusCode/100 != 2 {
		return "", domain.NewError(domain.KindUpstreamAuth,
			fmt.Sprintf("token exchange: status %d: %s", resp.StatusCode, snippet(resp.Body)))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", domain.WrapError(domain.KindUpstreamAuth, "decode token response", err)
	}
	tok := strings.TrimSpace(body.AccessToken)
	if tok == "" {
		return "", domain.NewError(domain.KindUpstreamAuth, "token response missing access_token")
	}

	if c.tokens != nil && body.ExpiresIn > 60 {
		// keep a safety margin so a cached token never expires mid-pipeline
		ttl := time.Duration(body.ExpiresIn-60) * time.Second
		if err := c.tokens.Store(ctx, tok, ttl); err != nil {
			log.Warn().Err(err).Msg("token cache store failed")
		}
	}
	return tok, nil
}

// ListHotels fetches all hotels for a city code. Empty data is a valid result.
func (c *Client) ListHotels(ctx context.Context, token, cityCode string) ([]domain.RawHotelListing, error) {
	u := c.base + "/v1/reference-data/locations/hotels/by-city?cityCode=" + url.QueryEscape(cityCode)
	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := c.getJSON(ctx, "hotels_by_city", token, u, &body); err != nil {
		return nil, err
	}
	out := make([]domain.RawHotelListing, 0, len(body.Data))
	for _, h := range body.Data {
		out = append(out, domain.RawHotelListing(h))
	}
	log.Debug().Str("city_code", cityCode).Int("hotels", len(out)).Msg("hotel list fetched")
	return out, nil
}

// FetchOffers fetches priced offers for one batch of hotel ids. The limiter
// blocks until the configured inter-batch delay has elapsed since the
// previous call.
func (c *Client) FetchOffers(ctx context.Context, token string, hotelIDs []string, checkIn, checkOut string, adults int) ([]domain.RawOfferRecord, error) {
	if len(hotelIDs) == 0 {
		return nil, nil
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{
		"hotelIds":     {strings.Join(hotelIDs, ",")},
		"adults":       {strconv.Itoa(adults)},
		"checkInDate":  {checkIn},
		"checkOutDate": {checkOut},
	}
	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := c.getJSON(ctx, "hotel_offers", token, c.base+"/v3/shopping/hotel-offers?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	out := make([]domain.RawOfferRecord, 0, len(body.Data))
	for _, o := range body.Data {
		out = append(out, domain.RawOfferRecord(o))
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, token, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WrapError(domain.KindUpstreamRequest, "build "+endpoint+" request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-recommender/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveUpstream(endpoint, 0, time.Since(start))
		return domain.WrapError(domain.KindUpstreamRequest, endpoint+" failed", err)
	}
	defer resp.Body.Close()
	observability.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode/100 != 2 {
		return domain.NewError(domain.KindUpstreamRequest,
			fmt.Sprintf("%s: status %d: %s", endpoint, resp.StatusCode, snippet(resp.Body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.WrapError(domain.KindUpstreamRequest, "decode "+endpoint+" response", err)
	}
	return nil
}

// snippet reads a small error body for diagnostics.
func snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(b))
}
