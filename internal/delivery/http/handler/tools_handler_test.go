package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/tools"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	registry := tools.NewRegistry()
	registry.Register(tools.Tool{
		Name:        "echo",
		Description: "echoes its input back",
		InputSchema: map[string]interface{}{"type": "object"},
		Handler: func(_ context.Context, args json.RawMessage) tools.Result {
			var req struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(args, &req); err != nil || req.Text == "" {
				return tools.ErrorResult("echo error: empty text")
			}
			return tools.TextResult(req.Text)
		},
	})

	h := NewToolsHandler(registry, zap.NewNop())

	app := fiber.New()
	app.Get("/api/v1/tools", h.List)
	app.Post("/api/v1/tools/:name", h.Call)
	return app
}

func TestToolsHandler_List(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/tools", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Tools []struct {
			Name        string                 `json:"name"`
			Description string                 `json:"description"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Tools, 1)
	assert.Equal(t, "echo", payload.Tools[0].Name)
	assert.NotEmpty(t, payload.Tools[0].InputSchema)
}

func TestToolsHandler_Call(t *testing.T) {
	app := testApp(t)

	t.Run("successful call", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/tools/echo", strings.NewReader(`{"text":"hello"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var result tools.Result
		require.NoError(t, json.Unmarshal(body, &result))
		assert.False(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.Equal(t, "hello", result.Content[0].Text)
	})

	t.Run("domain failure keeps 200 with error flag", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/tools/echo", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var result tools.Result
		require.NoError(t, json.Unmarshal(body, &result))
		assert.True(t, result.IsError)
	})

	t.Run("unknown tool is a transport-level 404", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/tools/nope", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("malformed envelope is a transport-level 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/tools/echo", strings.NewReader(`{broken`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("empty body defaults to empty object", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/tools/echo", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
