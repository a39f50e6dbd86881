package route

import (
	"github.com/Keita-tri/my-transit-mcp/internal/domain"
	"github.com/Keita-tri/my-transit-mcp/internal/token"
)

// Truncator keeps rendered reports within a caller-declared token budget by
// dropping whole routes from the tail.
type Truncator struct {
	counter token.Counter
}

func NewTruncator(counter token.Counter) *Truncator {
	return &Truncator{counter: counter}
}

// Render produces the final report. Without a budget it renders once and
// returns. With a budget it renders, counts, and — only when over — keeps
// max(1, floor(n × budget / measured)) routes from the front and renders
// exactly once more.
//
// The estimate assumes per-route cost dominates the fixed header, so a
// tight budget can still be exceeded after the single trim; this is a
// best-effort contract, not a hard ceiling. Route numbers are the source's
// and survive truncation untouched.
func (t *Truncator) Render(result domain.RouteSearchResult, rc RenderContext, maxTokens *int) string {
	full := Render(result, rc)
	if maxTokens == nil {
		return full
	}

	measured := t.counter.Count(full)
	if measured <= *maxTokens {
		return full
	}

	n := len(result.Routes)
	if n == 0 {
		return full
	}

	retained := n * *maxTokens / measured
	if retained < 1 {
		retained = 1
	}
	if retained > n {
		retained = n
	}

	trimmed := domain.RouteSearchResult{
		CapturedAt: result.CapturedAt,
		Routes:     result.Routes[:retained],
	}
	return Render(trimmed, rc)
}
