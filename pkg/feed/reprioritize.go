package feed

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/net/publicsuffix"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// FeedGroup is a set of sources served from one website, in preference order
type FeedGroup struct {
	Domain  string                  `json:"domain"`
	Sources []domain.CalendarSource `json:"sources"`
}

// ReprioritizeAllFeeds groups sources by website domain and ranks them inside each group:
// active first, then by configured format priority, then most recently synced.
// Priority 0 is the preferred source of a group.
func (c *Collector) ReprioritizeAllFeeds(ctx context.Context) ([]FeedGroup, error) {
	sources, err := c.sources.List(ctx, domain.SourceFilter{})
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	byDomain := map[string][]domain.CalendarSource{}
	for _, src := range sources {
		d := siteDomain(src)
		byDomain[d] = append(byDomain[d], src)
	}

	groups := make([]FeedGroup, 0, len(byDomain))
	updated := 0
	for d, members := range byDomain {
		slices.SortStableFunc(members, c.compareSources)
		for i := range members {
			if members[i].Priority == i {
				continue
			}
			if err := c.sources.SetPriority(ctx, members[i].ID, i); err != nil {
				log.Printf("[WARN] failed to set priority of %s: %v", members[i].Name, err)
				continue
			}
			members[i].Priority = i
			updated++
		}
		groups = append(groups, FeedGroup{Domain: d, Sources: members})
	}
	slices.SortFunc(groups, func(a, b FeedGroup) int { return strings.Compare(a.Domain, b.Domain) })

	log.Printf("[INFO] reprioritized %d sources in %d domain groups, %d changed", len(sources), len(groups), updated)
	return groups, nil
}

func (c *Collector) compareSources(a, b domain.CalendarSource) int {
	if a.Active != b.Active {
		if a.Active {
			return -1
		}
		return 1
	}
	if ra, rb := c.formatRank(a.FeedFormat), c.formatRank(b.FeedFormat); ra != rb {
		return ra - rb
	}
	switch {
	case a.LastSync != nil && b.LastSync == nil:
		return -1
	case a.LastSync == nil && b.LastSync != nil:
		return 1
	case a.LastSync != nil && b.LastSync != nil && !a.LastSync.Equal(*b.LastSync):
		return b.LastSync.Compare(*a.LastSync)
	}
	return strings.Compare(a.Name, b.Name)
}

func (c *Collector) formatRank(f domain.FeedFormat) int {
	if i := slices.Index(c.opts.FormatPriority, f); i >= 0 {
		return i
	}
	return len(c.opts.FormatPriority)
}

// siteDomain is the registrable domain of the website, or of the feed when no website is known
func siteDomain(src domain.CalendarSource) string {
	raw := src.WebsiteURL
	if raw == "" {
		raw = src.FeedURL
	}
	host := strings.TrimPrefix(content.Hostname(raw), "www.")
	if host == "" {
		return "unknown"
	}
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}
