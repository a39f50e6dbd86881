package token

import "strings"

// JoinWithinBudget joins fragments with sep, keeping the longest prefix of
// fragments whose joined string stays within maxTokens. A nil maxTokens
// means no limit. If the first fragment alone exceeds the budget, the
// result is the empty string.
//
// Selection is strictly greedy: accumulation stops permanently at the
// first fragment that would push the joined string over the budget; later
// shorter fragments are never considered. Each step recounts the full
// accumulated string rather than tracking counts incrementally. Fragment
// lists here are tens of entries at most, so the O(n) recounts are cheaper
// than getting incremental separator accounting right.
func JoinWithinBudget(fragments []string, sep string, counter Counter, maxTokens *int) string {
	if maxTokens == nil {
		return strings.Join(fragments, sep)
	}

	accepted := ""
	for i, frag := range fragments {
		candidate := frag
		if i > 0 {
			candidate = accepted + sep + frag
		}
		if counter.Count(candidate) > *maxTokens {
			break
		}
		accepted = candidate
	}

	return accepted
}
