// Package route contains the scraped-result pipeline: structural parsing of
// the search page, narrative rendering, and token-budget truncation.
package route

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Keita-tri/my-transit-mcp/internal/domain"
)

// Parser extracts typed routes from the search-result HTML. Extraction is
// defensive field by field: optional fields may be absent, and a block
// missing its route number or both times is dropped instead of failing the
// whole parse.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

var (
	durationPattern = regexp.MustCompile(`(?:(\d+)時間)?(?:(\d+)分)?`)
	intPattern      = regexp.MustCompile(`\d+`)
	farePattern     = regexp.MustCompile(`([\d,]+)円`)
	distancePattern = regexp.MustCompile(`([\d.]+)\s*km`)
)

// Parse turns the raw document into a RouteSearchResult. Routes are
// emitted in source document order with their source-assigned numbers.
func (p *Parser) Parse(html string, capturedAt time.Time) (*domain.RouteSearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	result := &domain.RouteSearchResult{CapturedAt: capturedAt}

	doc.Find("div.routeDetail").Each(func(i int, block *goquery.Selection) {
		route, ok := p.parseBlock(block)
		if !ok {
			p.logger.Debug("Dropping route block missing mandatory fields",
				zap.Int("block_index", i))
			return
		}
		result.Routes = append(result.Routes, route)
	})

	return result, nil
}

func (p *Parser) parseBlock(block *goquery.Selection) (domain.Route, bool) {
	var route domain.Route

	numText, ok := block.Attr("data-route-number")
	if !ok {
		return route, false
	}
	num, err := strconv.Atoi(strings.TrimSpace(numText))
	if err != nil {
		return route, false
	}
	route.RouteNumber = num

	summary := block.Find(".routeSummary").First()
	route.DepartureTime = text(summary.Find(".departure"))
	route.ArrivalTime = text(summary.Find(".arrival"))
	if route.DepartureTime == "" && route.ArrivalTime == "" {
		return route, false
	}

	if minutes, ok := parseDuration(text(summary.Find(".duration"))); ok {
		route.TotalMinutes = &minutes
	}
	if transfers, ok := parseInt(text(summary.Find(".transfer"))); ok {
		route.TransferCount = &transfers
	}
	if fare, ok := parseFare(text(summary.Find(".fare"))); ok {
		route.TotalFare = &fare
	}
	if km, ok := parseDistance(text(summary.Find(".distance"))); ok {
		route.TotalDistanceKm = &km
	}

	block.Find(".routeTags li").Each(func(_ int, li *goquery.Selection) {
		route.Tags = append(route.Tags, parseTag(li))
	})

	co2 := block.Find(".co2").First()
	if co2.Length() > 0 {
		report := domain.CO2Report{
			Amount:        text(co2.Find(".amount")),
			Comparison:    text(co2.Find(".comparison")),
			ReductionRate: text(co2.Find(".rate")),
		}
		if report.Amount != "" {
			route.CO2 = &report
		}
	}

	// Stations and transports come back in document order. The site
	// mostly alternates them but nothing depends on that.
	block.Find(".station, .transport").Each(func(_ int, seg *goquery.Selection) {
		if seg.HasClass("station") {
			route.Segments = append(route.Segments, parseStation(seg))
		} else {
			route.Segments = append(route.Segments, parseTransport(seg))
		}
	})

	block.Find(".routeNotice li").Each(func(_ int, li *goquery.Selection) {
		notice := domain.Notice{
			Title:       text(li.Find(".title")),
			Description: text(li.Find(".description")),
		}
		if notice.Title == "" {
			// A bare <li> without sub-elements carries the title as text.
			notice.Title = strings.TrimSpace(li.Text())
		}
		if notice.Title != "" {
			route.Notices = append(route.Notices, notice)
		}
	})

	return route, true
}

func parseStation(seg *goquery.Selection) domain.StationSegment {
	station := domain.StationSegment{
		Role:     domain.RoleOther,
		Name:     text(seg.Find(".name")),
		Platform: text(seg.Find(".platform")),
		Weather:  text(seg.Find(".weather")),
	}

	switch {
	case seg.HasClass("start"):
		station.Role = domain.RoleStart
	case seg.HasClass("end"):
		station.Role = domain.RoleEnd
	case seg.HasClass("transfer"):
		station.Role = domain.RoleTransfer
	}

	if station.Name == "" {
		station.Name = strings.TrimSpace(seg.Text())
	}

	return station
}

func parseTransport(seg *goquery.Selection) domain.TransportSegment {
	transport := domain.TransportSegment{
		LineName: text(seg.Find(".line")),
		Distance: text(seg.Find(".distance")),
	}

	for _, mode := range []domain.TransportMode{
		domain.ModeTrain, domain.ModeSubway, domain.ModeBus,
		domain.ModeCar, domain.ModeTaxi, domain.ModeWalk,
	} {
		if seg.HasClass(string(mode)) {
			transport.Mode = mode
			break
		}
	}

	if timeRange := text(seg.Find(".time")); timeRange != "" {
		if dep, arr, ok := splitTimeRange(timeRange); ok {
			transport.DepartureTime = dep
			transport.ArrivalTime = arr
		}
	}
	if minutes, ok := parseDuration(text(seg.Find(".duration"))); ok {
		transport.DurationMinutes = &minutes
	}
	if fare, ok := parseFare(text(seg.Find(".fare"))); ok {
		transport.Fare = &fare
	}

	return transport
}

func parseTag(li *goquery.Selection) domain.Tag {
	switch {
	case li.HasClass("tagFast"):
		return domain.Tag{Kind: domain.TagFast}
	case li.HasClass("tagComfortable"):
		return domain.Tag{Kind: domain.TagComfortable}
	case li.HasClass("tagCheap"):
		return domain.Tag{Kind: domain.TagCheap}
	case li.HasClass("tagCar"):
		return domain.Tag{Kind: domain.TagCar}
	default:
		return domain.Tag{Kind: domain.TagOther, Label: strings.TrimSpace(li.Text())}
	}
}

func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

// parseDuration reads "1時間35分", "95分" or "2時間" into total minutes.
func parseDuration(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, false
	}
	minutes := 0
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		minutes += h * 60
	}
	if m[2] != "" {
		mm, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
		minutes += mm
	}
	return minutes, true
}

func parseInt(s string) (int, bool) {
	match := intPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFare(s string) (int, bool) {
	m := farePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDistance(s string) (float64, bool) {
	m := distancePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	km, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return km, true
}

// splitTimeRange reads "08:00-08:10" (or the site's "08:00～08:10").
// Text without a range separator is rejected rather than passed through
// as a bogus departure time.
func splitTimeRange(s string) (string, string, bool) {
	for _, sep := range []string{"-", "～", "→"} {
		if parts := strings.SplitN(s, sep, 2); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
		}
	}
	return "", "", false
}
