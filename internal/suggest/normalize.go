// Package suggest turns the site's category-partitioned autocomplete
// payload into one token-bounded descriptor string.
package suggest

import (
	"fmt"

	"github.com/Keita-tri/my-transit-mcp/internal/domain"
	"github.com/Keita-tri/my-transit-mcp/internal/token"
)

// Merge interleaves the three ranked lists round-robin in the fixed order
// railway, bus, spot: rank 0 of each present category, then rank 1, and so
// on, skipping a category once exhausted. This keeps each category's best
// matches near the head, so a token cut never silently drops a whole
// category just because another one returned more rows.
func Merge(res domain.SuggestResult) []domain.Place {
	lists := [][]domain.Place{res.Railway, res.Bus, res.Spot}

	total := 0
	longest := 0
	for _, l := range lists {
		total += len(l)
		if len(l) > longest {
			longest = len(l)
		}
	}

	merged := make([]domain.Place, 0, total)
	for rank := 0; rank < longest; rank++ {
		for _, l := range lists {
			if rank < len(l) {
				merged = append(merged, l[rank])
			}
		}
	}
	return merged
}

// Describe renders one place as a descriptor line. The city code falls back
// to an explicit "unknown" so downstream agents can tell absence from an
// empty string.
func Describe(p domain.Place) string {
	cityCode := p.CityCode
	if cityCode == "" {
		cityCode = "unknown"
	}

	location := p.Prefecture
	if p.City != "" {
		location += " " + p.City
	}

	return fmt.Sprintf("%s (%s / cityCode: %s / lat: %g / lon: %g / reading: %s)",
		p.Name, location, cityCode, p.Latitude, p.Longitude, p.Reading)
}

// Render merges the suggest payload, renders each place (bare name when
// nameOnly), and joins with commas under the token budget.
func Render(res domain.SuggestResult, nameOnly bool, counter token.Counter, maxTokens *int) string {
	merged := Merge(res)

	fragments := make([]string, 0, len(merged))
	for _, p := range merged {
		if nameOnly {
			fragments = append(fragments, p.Name)
		} else {
			fragments = append(fragments, Describe(p))
		}
	}

	return token.JoinWithinBudget(fragments, ",", counter, maxTokens)
}
