package errors

import "net/http"

var (
	ErrEmptyQuery = New(
		"EMPTY_QUERY",
		"Query text must not be empty",
		http.StatusBadRequest,
	)

	ErrInvalidDatetime = New(
		"INVALID_DATETIME",
		"Datetime must be formatted as YYYY-MM-DD HH:MM:SS",
		http.StatusBadRequest,
	)

	ErrInvalidDatetimeType = New(
		"INVALID_DATETIME_TYPE",
		"Datetime type must be one of departure, arrival, first, last",
		http.StatusBadRequest,
	)

	ErrSuggestFetch = New(
		"SUGGEST_FETCH_FAILED",
		"Failed to fetch place suggestions from the transit site",
		http.StatusBadGateway,
	)

	ErrRouteFetch = New(
		"ROUTE_FETCH_FAILED",
		"Failed to fetch route search results from the transit site",
		http.StatusBadGateway,
	)

	ErrUnknownTool = New(
		"UNKNOWN_TOOL",
		"No tool is registered under that name",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
