package tools

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/domain/repository"
	apperrors "github.com/Keita-tri/my-transit-mcp/internal/pkg/errors"
	"github.com/Keita-tri/my-transit-mcp/internal/pkg/validator"
	"github.com/Keita-tri/my-transit-mcp/internal/suggest"
	"github.com/Keita-tri/my-transit-mcp/internal/token"
)

// StationToolName is the registered name of the place-name lookup tool.
const StationToolName = "search_station_by_name"

// StationRequest is the input envelope of search_station_by_name.
type StationRequest struct {
	Query     string `json:"query" validate:"required"`
	MaxTokens *int   `json:"maxTokens" validate:"omitempty,gte=0"`
	OnlyName  bool   `json:"onlyName"`
}

// StationTool resolves Japanese place names through the site's
// autocomplete and renders a token-bounded descriptor list.
type StationTool struct {
	fetcher repository.TransitFetcher
	counter token.Counter
	logger  *zap.Logger
}

func NewStationTool(fetcher repository.TransitFetcher, counter token.Counter, logger *zap.Logger) *StationTool {
	return &StationTool{
		fetcher: fetcher,
		counter: counter,
		logger:  logger,
	}
}

// Definition returns the registry entry for this tool.
func (t *StationTool) Definition() Tool {
	return Tool{
		Name:        StationToolName,
		Description: "Search Japanese railway stations, bus stops and spots by name. Returns matching place candidates with location details, comma-separated. Use onlyName to get bare names, maxTokens to bound the output size.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Place name to look up, in Japanese",
				},
				"maxTokens": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Upper bound on response size in model tokens",
				},
				"onlyName": map[string]interface{}{
					"type":        "boolean",
					"description": "Return bare place names without location details",
				},
			},
			"required": []string{"query"},
		},
		Handler: t.Handle,
	}
}

// Handle runs one lookup. Every failure is converted into an error-flagged
// text result; nothing propagates to the transport layer.
func (t *StationTool) Handle(ctx context.Context, args json.RawMessage) Result {
	var req StationRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return stationError(apperrors.Wrap(apperrors.ErrInvalidRequest, err))
	}
	if strings.TrimSpace(req.Query) == "" {
		return stationError(apperrors.ErrEmptyQuery)
	}
	if err := validator.Validate(&req); err != nil {
		return stationError(apperrors.Wrap(apperrors.ErrInvalidRequest, err))
	}

	result, err := t.fetcher.FetchSuggest(ctx, req.Query)
	if err != nil {
		t.logger.Warn("Suggest fetch failed",
			zap.String("query", req.Query),
			zap.Error(err))
		return stationError(apperrors.Wrap(apperrors.ErrSuggestFetch, err))
	}

	text := suggest.Render(*result, req.OnlyName, t.counter, req.MaxTokens)
	return TextResult(text)
}

func stationError(err *apperrors.AppError) Result {
	return ErrorResult("Contact retrieval error: " + err.Message)
}
