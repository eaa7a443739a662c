package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"frostcast/internal/models"
	"frostcast/pkg/observe"
)

const (
	PostcodesBaseURL        = "https://api.postcodes.io"
	OpenMeteoGeocodeBaseURL = "https://geocoding-api.open-meteo.com/v1/search"
)

// SearchRepository resolves a location query the way drivers type them: a UK
// postcode lookup first, then a city-name search.
type SearchRepository struct {
	PostcodesURL string
	GeocodeURL   string
	httpClient   HTTPClient
	l            *observe.Logger
}

func NewSearchRepository(postcodesURL, geocodeURL string, l *observe.Logger, httpClient HTTPClient) *SearchRepository {
	if postcodesURL == "" {
		postcodesURL = PostcodesBaseURL
	}
	if geocodeURL == "" {
		geocodeURL = OpenMeteoGeocodeBaseURL
	}
	return &SearchRepository{
		PostcodesURL: postcodesURL,
		GeocodeURL:   geocodeURL,
		httpClient:   httpClient,
		l:            l,
	}
}

func (s *SearchRepository) Resolve(ctx context.Context, query string) (models.Location, error) {
	if loc, err := s.resolvePostcode(ctx, query); err == nil {
		return loc, nil
	}
	s.l.Debug("postcode lookup missed, trying city search", map[string]any{"query": query})

	loc, err := s.resolveCity(ctx, query)
	if err != nil {
		return models.Location{}, fmt.Errorf("location %q not found: %w", query, err)
	}
	return loc, nil
}

func (s *SearchRepository) resolvePostcode(ctx context.Context, query string) (models.Location, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(query), " ", "")
	reqURL := fmt.Sprintf("%s/postcodes/%s", s.PostcodesURL, url.PathEscape(clean))

	var response struct {
		Result struct {
			Postcode      string  `json:"postcode"`
			AdminDistrict string  `json:"admin_district"`
			Latitude      float64 `json:"latitude"`
			Longitude     float64 `json:"longitude"`
		} `json:"result"`
	}
	if err := s.getJSON(ctx, reqURL, &response); err != nil {
		return models.Location{}, err
	}

	district := response.Result.AdminDistrict
	if district == "" {
		district = "UK"
	}

	return models.Location{
		Name: fmt.Sprintf("%s, %s", response.Result.Postcode, district),
		Lat:  response.Result.Latitude,
		Lon:  response.Result.Longitude,
	}, nil
}

func (s *SearchRepository) resolveCity(ctx context.Context, query string) (models.Location, error) {
	reqURL := fmt.Sprintf("%s?name=%s&count=1&language=en&format=json", s.GeocodeURL, url.QueryEscape(query))

	var response struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := s.getJSON(ctx, reqURL, &response); err != nil {
		return models.Location{}, err
	}

	if len(response.Results) == 0 {
		return models.Location{}, fmt.Errorf("no geocoding results")
	}

	res := response.Results[0]
	return models.Location{
		Name: fmt.Sprintf("%s, %s", res.Name, res.Country),
		Lat:  res.Latitude,
		Lon:  res.Longitude,
	}, nil
}

func (s *SearchRepository) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}
