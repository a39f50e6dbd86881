package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Keita-tri/my-transit-mcp/internal/domain"
)

// RenderContext carries the request-scoped values the report header needs.
// All time-dependent values are resolved by the caller; rendering itself
// reads no clocks.
type RenderContext struct {
	SearchURL string
	From      string
	To        string
	Datetime  string
}

const noRoutesSentence = "No routes were found for this search."

var stationMarkers = map[domain.StationRole]string{
	domain.RoleStart:    "📍",
	domain.RoleEnd:      "🏁",
	domain.RoleTransfer: "🔄",
	domain.RoleOther:    "🚉",
}

var weatherMarkers = map[string]string{
	"sunny":  "☀️",
	"cloudy": "☁️",
	"rainy":  "🌧️",
	"snowy":  "⛄",
}

const defaultWeatherMarker = "🌤️"

var transportMarkers = map[domain.TransportMode]string{
	domain.ModeTrain:  "🚆",
	domain.ModeSubway: "🚇",
	domain.ModeBus:    "🚌",
	domain.ModeCar:    "🚗",
	domain.ModeTaxi:   "🚕",
	domain.ModeWalk:   "🚶",
}

var tagLabels = map[domain.TagKind]string{
	domain.TagFast:        "Fastest",
	domain.TagComfortable: "Most comfortable",
	domain.TagCheap:       "Cheapest",
	domain.TagCar:         "Car route",
}

// Render formats a parsed search result as the report text returned to the
// calling agent. Pure and deterministic: identical inputs yield identical
// bytes.
func Render(result domain.RouteSearchResult, rc RenderContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Route search: %s → %s\n", rc.From, rc.To)
	fmt.Fprintf(&b, "Query datetime: %s\n", rc.Datetime)
	fmt.Fprintf(&b, "Search URL: %s\n", rc.SearchURL)
	fmt.Fprintf(&b, "Captured at: %s\n", result.CapturedAt.Format("2006-01-02 15:04:05"))

	if len(result.Routes) == 0 {
		b.WriteString("\n" + noRoutesSentence + "\n")
		return b.String()
	}

	for _, route := range result.Routes {
		b.WriteString("\n")
		renderRoute(&b, route)
	}

	return b.String()
}

func renderRoute(b *strings.Builder, route domain.Route) {
	fmt.Fprintf(b, "## Route %d: %s → %s\n", route.RouteNumber, route.DepartureTime, route.ArrivalTime)

	if summary := summaryLine(route); summary != "" {
		fmt.Fprintf(b, "Summary: %s\n", summary)
	}

	if len(route.Tags) > 0 {
		labels := make([]string, 0, len(route.Tags))
		for _, tag := range route.Tags {
			labels = append(labels, tagLabel(tag))
		}
		fmt.Fprintf(b, "Tags: %s\n", strings.Join(labels, ", "))
	}

	if route.CO2 != nil {
		line := fmt.Sprintf("CO2: %s", route.CO2.Amount)
		if route.CO2.Comparison != "" {
			line += fmt.Sprintf(" (%s", route.CO2.Comparison)
			if route.CO2.ReductionRate != "" {
				line += fmt.Sprintf(", %s", route.CO2.ReductionRate)
			}
			line += ")"
		} else if route.CO2.ReductionRate != "" {
			line += fmt.Sprintf(" (%s)", route.CO2.ReductionRate)
		}
		b.WriteString(line + "\n")
	}

	if len(route.Segments) > 0 {
		b.WriteString("Itinerary:\n")
		for _, segment := range route.Segments {
			renderSegment(b, segment)
		}
	}

	if len(route.Notices) > 0 {
		b.WriteString("Notices:\n")
		for _, notice := range route.Notices {
			if notice.Description != "" && notice.Description != notice.Title {
				fmt.Fprintf(b, "  - %s: %s\n", notice.Title, notice.Description)
			} else {
				fmt.Fprintf(b, "  - %s\n", notice.Title)
			}
		}
	}
}

func summaryLine(route domain.Route) string {
	var parts []string
	if route.TotalMinutes != nil {
		parts = append(parts, formatDuration(*route.TotalMinutes))
	}
	if route.TransferCount != nil {
		parts = append(parts, fmt.Sprintf("%d transfer(s)", *route.TransferCount))
	}
	if route.TotalFare != nil {
		parts = append(parts, "¥"+formatThousands(*route.TotalFare))
	}
	if route.TotalDistanceKm != nil {
		parts = append(parts, fmt.Sprintf("%gkm", *route.TotalDistanceKm))
	}
	return strings.Join(parts, " / ")
}

func renderSegment(b *strings.Builder, segment domain.Segment) {
	switch seg := segment.(type) {
	case domain.StationSegment:
		marker, ok := stationMarkers[seg.Role]
		if !ok {
			marker = stationMarkers[domain.RoleOther]
		}
		line := fmt.Sprintf("  %s %s", marker, seg.Name)
		if seg.Platform != "" {
			line += fmt.Sprintf(" [%s]", seg.Platform)
		}
		if seg.Weather != "" {
			line += " " + weatherMarker(seg.Weather)
		}
		b.WriteString(line + "\n")
	case domain.TransportSegment:
		marker, ok := transportMarkers[seg.Mode]
		if !ok {
			marker = transportMarkers[domain.ModeTrain]
		}
		line := fmt.Sprintf("  %s %s", marker, seg.LineName)
		var details []string
		if seg.DepartureTime != "" && seg.ArrivalTime != "" {
			details = append(details, seg.DepartureTime+"-"+seg.ArrivalTime)
		} else if seg.DepartureTime != "" {
			details = append(details, seg.DepartureTime)
		}
		if seg.DurationMinutes != nil {
			details = append(details, fmt.Sprintf("%d min", *seg.DurationMinutes))
		}
		if seg.Fare != nil {
			details = append(details, "¥"+formatThousands(*seg.Fare))
		}
		if seg.Distance != "" {
			details = append(details, seg.Distance)
		}
		if len(details) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(details, ", "))
		}
		b.WriteString(line + "\n")
	}
}

func weatherMarker(condition string) string {
	if marker, ok := weatherMarkers[condition]; ok {
		return marker
	}
	return defaultWeatherMarker
}

func tagLabel(tag domain.Tag) string {
	if tag.Kind == domain.TagOther {
		return tag.Label
	}
	if label, ok := tagLabels[tag.Kind]; ok {
		return label
	}
	return tag.Label
}

// formatDuration renders total minutes as "1 hour 35 minutes", omitting the
// hour component entirely under 60 minutes.
func formatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if hours == 0 {
		return fmt.Sprintf("%d %s", minutes, pluralize("minute", minutes))
	}
	if minutes == 0 {
		return fmt.Sprintf("%d %s", hours, pluralize("hour", hours))
	}
	return fmt.Sprintf("%d %s %d %s",
		hours, pluralize("hour", hours),
		minutes, pluralize("minute", minutes))
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// formatThousands groups digits in threes: 1340 → "1,340".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	out := strings.Join(groups, ",")
	if n < 0 {
		out = "-" + out
	}
	return out
}
