// Package normalize turns raw search hits into deduplicated candidates
// keyed by root domain.
package normalize

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/datavex/leadforge/internal/model"
)

// MaxHits caps how many raw hits are considered per run, bounding
// downstream filtering and synthesis cost.
const MaxHits = 20

// ccSecondLevels are second-level labels under which the registrable domain
// spans three labels (e.g. acme.co.uk).
var ccSecondLevels = map[string]bool{
	"co": true, "com": true, "org": true, "net": true, "ac": true, "gov": true,
}

var titleCaser = cases.Title(language.English)

// Candidates normalizes hits into candidates: root domain extracted, first
// occurrence of each domain wins, input order preserved. Malformed URLs are
// skipped.
func Candidates(hits []model.SearchHit) []model.Candidate {
	if len(hits) > MaxHits {
		hits = hits[:MaxHits]
	}

	seen := make(map[string]bool, len(hits))
	var out []model.Candidate

	for _, hit := range hits {
		domain := RootDomain(hit.URL)
		if domain == "" {
			zap.L().Debug("normalize: skipping malformed url", zap.String("url", hit.URL))
			continue
		}
		if seen[domain] {
			continue
		}
		seen[domain] = true

		name := strings.TrimSpace(hit.Title)
		if name == "" {
			name = titleCaser.String(leftmostLabel(domain))
		}

		out = append(out, model.Candidate{
			Name:    name,
			Domain:  domain,
			Snippet: hit.Snippet,
		})
	}

	return out
}

// RootDomain extracts the lowercase registrable domain from a raw URL:
// scheme, www prefix, port and path are stripped, subdomains collapsed.
// Returns "" for unparseable input.
func RootDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}

	host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return ""
	}

	// acme.co.uk → keep three labels; blog.acme.com → keep two.
	keep := 2
	if len(labels) >= 3 && ccSecondLevels[labels[len(labels)-2]] && len(labels[len(labels)-1]) == 2 {
		keep = 3
	}

	root := strings.Join(labels[len(labels)-keep:], ".")
	if !strings.Contains(root, ".") {
		return ""
	}
	return root
}

// leftmostLabel returns the first label of a domain, the provisional
// company name when a hit has no title.
func leftmostLabel(domain string) string {
	if idx := strings.Index(domain, "."); idx > 0 {
		return domain[:idx]
	}
	return domain
}
