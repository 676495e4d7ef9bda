// Package geo resolves coordinates to human place labels.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// nominatimResponse is the subset of the reverse-geocode payload the
// resolver uses.
type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
}

// NominatimResolver reverse-geocodes coordinates through the OpenStreetMap
// Nominatim API.
type NominatimResolver struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

// NewNominatimResolver builds a resolver. userAgent identifies this
// service to Nominatim, which rejects anonymous clients.
func NewNominatimResolver(userAgent string, timeout time.Duration, logger *slog.Logger) *NominatimResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &NominatimResolver{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultNominatimBaseURL,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Resolve returns "City, State" for the coordinates, falling back to the
// raw "{lat}, {lon}" string when geocoding fails or finds no city-level
// place. It never fails.
func (r *NominatimResolver) Resolve(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("%v, %v", lat, lon)

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "jsonv2")

	endpoint := fmt.Sprintf("%s/reverse?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("reverse geocode failed, using coordinates", "error", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("reverse geocode failed, using coordinates", "status", resp.StatusCode)
		return fallback
	}

	var parsed nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		r.logger.Warn("reverse geocode decode failed, using coordinates", "error", err)
		return fallback
	}

	city := parsed.Address.City
	if city == "" {
		city = parsed.Address.Town
	}
	if city == "" {
		city = parsed.Address.Village
	}
	if city == "" {
		return fallback
	}
	return fmt.Sprintf("%s, %s", city, parsed.Address.State)
}
