// Package transitweb implements the HTTP client for the route-planning
// website: the JSON suggest endpoint and the HTML search page.
package transitweb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/config"
	"github.com/Keita-tri/my-transit-mcp/internal/domain"
	"github.com/Keita-tri/my-transit-mcp/internal/domain/repository"
)

type client struct {
	httpClient     *http.Client
	suggestBaseURL string
	searchBaseURL  string
	userAgent      string
	logger         *zap.Logger
}

// NewClient builds the transit-site fetcher. Timeouts come from config;
// there is deliberately no retry layer here.
func NewClient(cfg *config.TransitConfig, logger *zap.Logger) repository.TransitFetcher {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		suggestBaseURL: cfg.SuggestBaseURL,
		searchBaseURL:  cfg.SearchBaseURL,
		userAgent:      cfg.UserAgent,
		logger:         logger,
	}
}

// suggestPayload mirrors the suggest endpoint's JSON: three ranked lists
// keyed R (railway), B (bus), S (spot). Missing keys are fine.
type suggestPayload struct {
	R []suggestEntry `json:"R"`
	B []suggestEntry `json:"B"`
	S []suggestEntry `json:"S"`
}

type suggestEntry struct {
	Name     string  `json:"Name"`
	Yomi     string  `json:"Yomi"`
	Pref     string  `json:"Pref"`
	City     string  `json:"City"`
	CityCode string  `json:"CityCode"`
	Address  string  `json:"Address"`
	Lat      float64 `json:"Lat"`
	Lon      float64 `json:"Lon"`
}

func (c *client) FetchSuggest(ctx context.Context, query string) (*domain.SuggestResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("suggest query cannot be empty")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	requestURL := c.suggestBaseURL + "?" + params.Encode()

	c.logger.Debug("Calling suggest endpoint", zap.String("url", requestURL))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var payload suggestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("Failed to decode suggest response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode suggest response: %w", err)
	}

	result := &domain.SuggestResult{
		Railway: convertEntries(payload.R, domain.CategoryRailway),
		Bus:     convertEntries(payload.B, domain.CategoryBus),
		Spot:    convertEntries(payload.S, domain.CategorySpot),
	}

	c.logger.Debug("Suggest call successful",
		zap.Int("railway_count", len(result.Railway)),
		zap.Int("bus_count", len(result.Bus)),
		zap.Int("spot_count", len(result.Spot)))

	return result, nil
}

func (c *client) FetchRouteSearch(ctx context.Context, query repository.RouteSearchQuery) (*repository.RouteSearchPage, error) {
	if query.From == "" || query.To == "" {
		return nil, fmt.Errorf("from and to cannot be empty")
	}

	params := url.Values{}
	params.Set("from", query.From)
	params.Set("to", query.To)
	params.Set("fromType", kindFlag(query.FromKind))
	params.Set("toType", kindFlag(query.ToKind))
	params.Set("y", fmt.Sprintf("%04d", query.Year))
	params.Set("m", fmt.Sprintf("%02d", query.Month))
	params.Set("d", fmt.Sprintf("%02d", query.Day))
	params.Set("hh", fmt.Sprintf("%02d", query.Hour))
	// The site takes the minute as two single-digit fields.
	params.Set("m1", fmt.Sprintf("%d", query.Minute/10))
	params.Set("m2", fmt.Sprintf("%d", query.Minute%10))
	params.Set("type", fmt.Sprintf("%d", query.WayType))

	// Fixed site flags: IC fare, include express, shinkansen and buses.
	params.Set("ticket", "ic")
	params.Set("expkind", "1")
	params.Set("ws", "3")
	params.Set("al", "1")
	params.Set("shin", "1")
	params.Set("ex", "1")
	params.Set("hb", "1")
	params.Set("lb", "1")
	params.Set("sr", "1")

	requestURL := c.searchBaseURL + "?" + params.Encode()

	c.logger.Debug("Calling route search page", zap.String("url", requestURL))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	return &repository.RouteSearchPage{
		URL:      requestURL,
		Document: string(body),
	}, nil
}

func (c *client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Transit site returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("url", requestURL))
		return nil, fmt.Errorf("transit site error: status %d", resp.StatusCode)
	}

	c.logger.Debug("Transit site call successful",
		zap.Int("body_bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return body, nil
}

func kindFlag(kind repository.LookupKind) string {
	if kind == repository.LookupBus {
		return "B"
	}
	return "R"
}

func convertEntries(entries []suggestEntry, category domain.PlaceCategory) []domain.Place {
	if len(entries) == 0 {
		return nil
	}
	places := make([]domain.Place, 0, len(entries))
	for _, e := range entries {
		places = append(places, domain.Place{
			Name:       e.Name,
			Category:   category,
			Prefecture: e.Pref,
			City:       e.City,
			CityCode:   e.CityCode,
			Address:    e.Address,
			Latitude:   e.Lat,
			Longitude:  e.Lon,
			Reading:    e.Yomi,
		})
	}
	return places
}
