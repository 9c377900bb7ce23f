package discovery

import (
	"math"
	"slices"

	"github.com/umputun/civicfeed/pkg/config"
	"github.com/umputun/civicfeed/pkg/domain"
)

// scored is a feed URL with all signals pointing at it
type scored struct {
	url        string
	format     domain.FeedFormat
	kinds      []SignalKind
	confidence float64
}

// baseScore returns the configured weight of a signal kind
func baseScore(s config.ScoreConfig, kind SignalKind) float64 {
	switch kind {
	case SignalAlternate, SignalDirectLink:
		return s.ExplicitFeed
	case SignalJSONAPI:
		return s.JSONAPI
	case SignalAffordance:
		return s.Affordance
	default:
		return s.Heuristic
	}
}

// scoreSignals merges signals by feed URL. Confidence is the strongest signal weight plus
// a bonus per additional distinct signal kind and a bonus for government sites, capped at 1.
// The format of the strongest signal wins. Results keep first-seen order.
func scoreSignals(s config.ScoreConfig, signals []signal, government bool) []scored {
	var res []scored
	index := map[string]int{}
	for _, sig := range signals {
		i, ok := index[sig.url]
		if !ok {
			index[sig.url] = len(res)
			res = append(res, scored{url: sig.url, format: sig.format, kinds: []SignalKind{sig.kind}})
			continue
		}
		if slices.Contains(res[i].kinds, sig.kind) {
			continue
		}
		if baseScore(s, sig.kind) > baseScore(s, res[i].kinds[0]) {
			res[i].format = sig.format
			res[i].kinds = append([]SignalKind{sig.kind}, res[i].kinds...)
			continue
		}
		res[i].kinds = append(res[i].kinds, sig.kind)
	}

	for i := range res {
		c := baseScore(s, res[i].kinds[0]) + s.Corroboration*float64(len(res[i].kinds)-1)
		if government {
			c += s.Government
		}
		res[i].confidence = math.Round(math.Min(c, 1.0)*100) / 100
	}
	return res
}
