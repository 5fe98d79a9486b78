package amadeus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hotel_recommender/internal/adapters/amadeus"
	"hotel_recommender/internal/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func mustClient(t *testing.T, base string, tokens domain.TokenCache) *amadeus.Client {
	t.Helper()
	cl, err := amadeus.New(base, "key", "secret", 300*time.Millisecond, tokens)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return cl
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := amadeus.New("http://x", "", "secret", time.Second, nil); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, err := amadeus.New("http://x", "key", "", time.Second, nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestAuthenticate_TokenExchange(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/security/oauth2/token" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") != "key" ||
			r.PostForm.Get("client_secret") != "secret" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": " tok-abc ", "expires_in": 1799})
	})

	tok, err := mustClient(t, ts.URL, nil).Authenticate(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tok != "tok-abc" {
		t.Fatalf("token = %q", tok)
	}
}

func TestAuthenticate_NonSuccessStatus(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := mustClient(t, ts.URL, nil).Authenticate(context.Background())
	if domain.KindOf(err) != domain.KindUpstreamAuth {
		t.Fatalf("kind = %s, want upstream_auth", domain.KindOf(err))
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"expires_in": 1799})
	})
	_, err := mustClient(t, ts.URL, nil).Authenticate(context.Background())
	if domain.KindOf(err) != domain.KindUpstreamAuth {
		t.Fatalf("kind = %s, want upstream_auth", domain.KindOf(err))
	}
}

type memTokens struct {
	mu  sync.Mutex
	tok string
	ttl time.Duration
}

func (m *memTokens) Token(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, m.tok != ""
}

func (m *memTokens) Store(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok, m.ttl = token, ttl
	return nil
}

func TestAuthenticate_UsesTokenCache(t *testing.T) {
	exchanges := 0
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		exchanges++
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "fresh", "expires_in": 1799})
	})
	tokens := &memTokens{}
	cl := mustClient(t, ts.URL, tokens)

	if _, err := cl.Authenticate(context.Background()); err != nil {
		t.Fatalf("first auth: %v", err)
	}
	if _, err := cl.Authenticate(context.Background()); err != nil {
		t.Fatalf("second auth: %v", err)
	}
	if exchanges != 1 {
		t.Fatalf("token exchanges = %d, want 1 (second served from cache)", exchanges)
	}
	// safety margin subtracted from expires_in
	if tokens.ttl != time.Duration(1799-60)*time.Second {
		t.Fatalf("stored ttl = %v", tokens.ttl)
	}
}

func TestListHotels(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reference-data/locations/hotels/by-city" {
			t.Errorf("path %s", r.URL.Path)
		}
		if r.URL.Query().Get("cityCode") != "BOM" {
			t.Errorf("cityCode %q", r.URL.Query().Get("cityCode"))
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("auth header %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"hotelId": "H1", "name": "One"},
			{"hotelId": "H2", "name": "Two"},
		}})
	})

	got, err := mustClient(t, ts.URL, nil).ListHotels(context.Background(), "tok", "BOM")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 2 || got[0].HotelID() != "H1" {
		t.Fatalf("unexpected listings: %+v", got)
	}
}

func TestListHotels_EmptyIsValid(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	})
	got, err := mustClient(t, ts.URL, nil).ListHotels(context.Background(), "tok", "XXX")
	if err != nil {
		t.Fatalf("empty listing must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d listings", len(got))
	}
}

func TestListHotels_NonSuccessStatus(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := mustClient(t, ts.URL, nil).ListHotels(context.Background(), "tok", "BOM")
	if domain.KindOf(err) != domain.KindUpstreamRequest {
		t.Fatalf("kind = %s, want upstream_request", domain.KindOf(err))
	}
}

func TestFetchOffers_RequestShape(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("hotelIds") != "H1,H2" || q.Get("adults") != "2" ||
			q.Get("checkInDate") != "2024-03-10" || q.Get("checkOutDate") != "2024-03-12" {
			t.Errorf("unexpected query: %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"hotel": map[string]any{"hotelId": "H1"}, "offers": []any{map[string]any{}}},
		}})
	})

	got, err := mustClient(t, ts.URL, nil).FetchOffers(context.Background(), "tok",
		[]string{"H1", "H2"}, "2024-03-10", "2024-03-12", 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0].HotelID() != "H1" {
		t.Fatalf("unexpected offers: %+v", got)
	}
}

func TestFetchOffers_SpacesConsecutiveBatches(t *testing.T) {
	var calls []time.Time
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, time.Now())
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	})
	cl := mustClient(t, ts.URL, nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := cl.FetchOffers(ctx, "tok", []string{"H1"}, "a", "b", 1); err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}
	}
	for i := 1; i < len(calls); i++ {
		if gap := calls[i].Sub(calls[i-1]); gap < 250*time.Millisecond {
			t.Fatalf("batches %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestFetchOffers_EmptyBatchSkipsCall(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected for an empty batch")
	})
	got, err := mustClient(t, ts.URL, nil).FetchOffers(context.Background(), "tok", nil, "a", "b", 1)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
}
