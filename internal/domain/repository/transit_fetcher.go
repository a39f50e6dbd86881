package repository

import (
	"context"

	"github.com/Keita-tri/my-transit-mcp/internal/domain"
)

// LookupKind tells the site whether a name refers to a rail station or a
// bus stop. Forwarded verbatim from the tool-boundary classification.
type LookupKind string

const (
	LookupRail LookupKind = "rail"
	LookupBus  LookupKind = "bus"
)

// RouteSearchQuery is the structured form of one route search request,
// with the datetime already decomposed into site query components.
type RouteSearchQuery struct {
	From     string
	FromKind LookupKind
	To       string
	ToKind   LookupKind

	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int

	// WayType is the site's search-mode code:
	// 1 departure, 2 last, 3 first, 4 arrival.
	WayType int
}

// RouteSearchPage is the raw scraped document plus the resolved search URL,
// echoed back to the caller for transparency.
type RouteSearchPage struct {
	URL      string
	Document string
}

// TransitFetcher is the single external collaborator of the pipeline: it
// talks to the route-planning site. One call per tool invocation, no retry
// or backoff here.
type TransitFetcher interface {
	// FetchSuggest returns the site's category-partitioned autocomplete
	// candidates for a place-name query.
	FetchSuggest(ctx context.Context, query string) (*domain.SuggestResult, error)

	// FetchRouteSearch runs a route search and returns the raw result page.
	FetchRouteSearch(ctx context.Context, query RouteSearchQuery) (*RouteSearchPage, error)
}
