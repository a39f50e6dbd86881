package transitweb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/config"
	"github.com/Keita-tri/my-transit-mcp/internal/domain"
	"github.com/Keita-tri/my-transit-mcp/internal/domain/repository"
)

func testConfig(baseURL string) *config.TransitConfig {
	return &config.TransitConfig{
		SuggestBaseURL: baseURL,
		SearchBaseURL:  baseURL,
		RequestTimeout: 5 * time.Second,
		UserAgent:      "test-agent",
	}
}

func TestClient_FetchSuggest(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		var gotQuery url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"R": [{"Name":"東京","Yomi":"とうきょう","Pref":"東京都","City":"千代田区","CityCode":"13101","Lat":35.681,"Lon":139.767}],
				"B": [{"Name":"東京駅前〔都営バス〕","Yomi":"とうきょうえきまえ","Pref":"東京都"}]
			}`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		result, err := c.FetchSuggest(context.Background(), "東京")
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "東京", gotQuery.Get("q"))
		assert.Equal(t, "json", gotQuery.Get("format"))

		require.Len(t, result.Railway, 1)
		assert.Equal(t, domain.CategoryRailway, result.Railway[0].Category)
		assert.Equal(t, "とうきょう", result.Railway[0].Reading)
		assert.Equal(t, "13101", result.Railway[0].CityCode)

		require.Len(t, result.Bus, 1)
		assert.Equal(t, domain.CategoryBus, result.Bus[0].Category)
		assert.Empty(t, result.Bus[0].CityCode)

		assert.Empty(t, result.Spot)
	})

	t.Run("empty query", func(t *testing.T) {
		c := NewClient(testConfig("http://localhost:0"), logger)
		result, err := c.FetchSuggest(context.Background(), "  ")
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)
		result, err := c.FetchSuggest(context.Background(), "東京")
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)
		result, err := c.FetchSuggest(context.Background(), "東京")
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestClient_FetchRouteSearch(t *testing.T) {
	logger := zap.NewNop()

	query := repository.RouteSearchQuery{
		From:     "東京",
		FromKind: repository.LookupRail,
		To:       "新宿駅西口〔京王バス〕",
		ToKind:   repository.LookupBus,
		Year:     2025,
		Month:    4,
		Day:      1,
		Hour:     8,
		Minute:   5,
		WayType:  1,
	}

	t.Run("successful request", func(t *testing.T) {
		var gotQuery url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			w.Write([]byte(`<html><div class="routeDetail"></div></html>`))
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)

		page, err := c.FetchRouteSearch(context.Background(), query)
		require.NoError(t, err)
		require.NotNil(t, page)

		assert.Equal(t, "東京", gotQuery.Get("from"))
		assert.Equal(t, "R", gotQuery.Get("fromType"))
		assert.Equal(t, "B", gotQuery.Get("toType"))
		assert.Equal(t, "2025", gotQuery.Get("y"))
		assert.Equal(t, "04", gotQuery.Get("m"))
		assert.Equal(t, "01", gotQuery.Get("d"))
		assert.Equal(t, "08", gotQuery.Get("hh"))
		assert.Equal(t, "0", gotQuery.Get("m1"))
		assert.Equal(t, "5", gotQuery.Get("m2"))
		assert.Equal(t, "1", gotQuery.Get("type"))
		assert.Equal(t, "ic", gotQuery.Get("ticket"))

		assert.Contains(t, page.Document, "routeDetail")
		assert.Contains(t, page.URL, server.URL)
	})

	t.Run("missing endpoints", func(t *testing.T) {
		c := NewClient(testConfig("http://localhost:0"), logger)
		empty := repository.RouteSearchQuery{From: "", To: "大阪"}
		page, err := c.FetchRouteSearch(context.Background(), empty)
		assert.Error(t, err)
		assert.Nil(t, page)
	})

	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)
		page, err := c.FetchRouteSearch(context.Background(), query)
		assert.Error(t, err)
		assert.Nil(t, page)
	})
}
