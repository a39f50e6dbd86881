package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/domain/repository"
	apperrors "github.com/Keita-tri/my-transit-mcp/internal/pkg/errors"
	"github.com/Keita-tri/my-transit-mcp/internal/pkg/validator"
	"github.com/Keita-tri/my-transit-mcp/internal/route"
)

// RouteToolName is the registered name of the itinerary search tool.
const RouteToolName = "search_route_by_station_name"

const datetimeLayout = "2006-01-02 15:04:05"

// jst is the site's timezone; the default query datetime is "now" there.
var jst = time.FixedZone("JST", 9*60*60)

// wayTypeCodes maps the tool's datetimeType to the site's search-mode code.
var wayTypeCodes = map[string]int{
	"departure": 1,
	"last":      2,
	"first":     3,
	"arrival":   4,
}

// RouteRequest is the input envelope of search_route_by_station_name.
// From and To take names exactly as returned by the station tool.
type RouteRequest struct {
	From         string `json:"from" validate:"required"`
	To           string `json:"to" validate:"required"`
	DatetimeType string `json:"datetimeType" validate:"required"`
	Datetime     string `json:"datetime"`
	MaxTokens    *int   `json:"maxTokens" validate:"omitempty,gte=0"`
}

// RouteTool fetches, parses, renders and truncates one itinerary search.
type RouteTool struct {
	fetcher   repository.TransitFetcher
	parser    *route.Parser
	truncator *route.Truncator
	logger    *zap.Logger
	now       func() time.Time
}

func NewRouteTool(fetcher repository.TransitFetcher, parser *route.Parser, truncator *route.Truncator, logger *zap.Logger) *RouteTool {
	return &RouteTool{
		fetcher:   fetcher,
		parser:    parser,
		truncator: truncator,
		logger:    logger,
		now:       func() time.Time { return time.Now().In(jst) },
	}
}

// Definition returns the registry entry for this tool.
func (t *RouteTool) Definition() Tool {
	return Tool{
		Name:        RouteToolName,
		Description: "Search train and bus routes between two Japanese stations or bus stops. Station names should come from search_station_by_name. Returns candidate itineraries as a narrative report; maxTokens bounds the report size (best effort).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"from": map[string]interface{}{
					"type":        "string",
					"description": "Departure station or bus stop name",
				},
				"to": map[string]interface{}{
					"type":        "string",
					"description": "Arrival station or bus stop name",
				},
				"datetimeType": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"departure", "arrival", "first", "last"},
					"description": "How to interpret the datetime",
				},
				"datetime": map[string]interface{}{
					"type":        "string",
					"description": "YYYY-MM-DD HH:MM:SS, Japan local time; defaults to now",
				},
				"maxTokens": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "Upper bound on report size in model tokens (best effort)",
				},
			},
			"required": []string{"from", "to", "datetimeType"},
		},
		Handler: t.Handle,
	}
}

// Handle runs one route search. Every failure is converted into an
// error-flagged text result; nothing propagates to the transport layer.
func (t *RouteTool) Handle(ctx context.Context, args json.RawMessage) Result {
	var req RouteRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return routeError(apperrors.Wrap(apperrors.ErrInvalidRequest, err))
	}
	if err := validator.Validate(&req); err != nil {
		return routeError(apperrors.Wrap(apperrors.ErrInvalidRequest, err))
	}

	wayType, ok := wayTypeCodes[req.DatetimeType]
	if !ok {
		return routeError(apperrors.ErrInvalidDatetimeType)
	}

	when, appErr := t.resolveDatetime(req.Datetime)
	if appErr != nil {
		return routeError(appErr)
	}

	query := repository.RouteSearchQuery{
		From:     req.From,
		FromKind: classifyName(req.From),
		To:       req.To,
		ToKind:   classifyName(req.To),
		Year:     when.Year(),
		Month:    int(when.Month()),
		Day:      when.Day(),
		Hour:     when.Hour(),
		Minute:   when.Minute(),
		WayType:  wayType,
	}

	page, err := t.fetcher.FetchRouteSearch(ctx, query)
	if err != nil {
		t.logger.Warn("Route search fetch failed",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err))
		return routeError(apperrors.Wrap(apperrors.ErrRouteFetch, err))
	}

	result, err := t.parser.Parse(page.Document, t.now())
	if err != nil {
		return routeError(apperrors.Wrap(apperrors.ErrInternalServer, err))
	}

	text := t.truncator.Render(*result, route.RenderContext{
		SearchURL: page.URL,
		From:      req.From,
		To:        req.To,
		Datetime:  when.Format(datetimeLayout),
	}, req.MaxTokens)

	return TextResult(text)
}

// resolveDatetime parses the request datetime in Japan local time, or
// falls back to the current JST time when none was given. A malformed
// string is rejected rather than split into garbage components.
func (t *RouteTool) resolveDatetime(datetime string) (time.Time, *apperrors.AppError) {
	if datetime == "" {
		return t.now(), nil
	}
	when, err := time.ParseInLocation(datetimeLayout, datetime, jst)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInvalidDatetime, fmt.Errorf("got %q", datetime))
	}
	return when, nil
}

func routeError(err *apperrors.AppError) Result {
	return ErrorResult("Route search error: " + err.Message)
}

// classifyName tells bus stops from rail stations: the site renders bus
// stop names with a full-width bracket, e.g. 新宿駅西口〔京王バス〕.
func classifyName(name string) repository.LookupKind {
	if strings.ContainsAny(name, "〔［") {
		return repository.LookupBus
	}
	return repository.LookupRail
}
