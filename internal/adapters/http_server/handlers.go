// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

type Handlers struct {
	Rec    *app.RecommendationService
	Static *app.StaticService
}

type searchRequest struct {
	City         string `json:"city"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Adults       int    `json:"adults"`
}

type apiError struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/live_recommend", h.liveRecommend)
	s.mux.Post("/refresh", h.refresh)
	s.mux.Post("/oyo_hotels", h.staticHotels)
}

func (h *Handlers) liveRecommend(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearch(w, r)
	if !ok {
		return
	}
	res, err := h.Rec.GetOrFetch(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	msg := fmt.Sprintf("Found %d hotels with offers.", len(res.Hotels))
	if res.FromCache {
		msg = "Loaded cached data"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     msg,
		"hotel_count": len(res.Hotels),
		"hotels":      res.Hotels,
		"from_cache":  res.FromCache,
	})
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearch(w, r)
	if !ok {
		return
	}
	res, err := h.Rec.ForceRefresh(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("Refreshed data with %d hotels.", len(res.Hotels)),
		"hotel_count": len(res.Hotels),
		"hotels":      res.Hotels,
		"refreshed":   true,
	})
}

func (h *Handlers) staticHotels(w http.ResponseWriter, r *http.Request) {
	var body struct {
		City string `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	hotels, err := h.Static.Lookup(r.Context(), body.City)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]any{
		"hotel_count": len(hotels),
		"hotels":      hotels,
	}
	if len(hotels) == 0 {
		resp["message"] = fmt.Sprintf("No hotels found for city '%s'", body.City)
		resp["hotels"] = []domain.HotelRecord{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeSearch(w http.ResponseWriter, r *http.Request) (app.Request, bool) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return app.Request{}, false
	}
	return app.Request{
		City:     body.City,
		CheckIn:  body.CheckinDate,
		CheckOut: body.CheckoutDate,
		Adults:   body.Adults,
	}, true
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnsupportedCity, domain.KindMissingDateRange:
		return http.StatusBadRequest
	case domain.KindNoInventory:
		return http.StatusNotFound
	case domain.KindUpstreamAuth, domain.KindUpstreamRequest:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	writeJSON(w, statusFor(kind), apiError{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}
