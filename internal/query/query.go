// Package query builds provider-specific boolean search expressions for
// campaign scouting and single-domain deep analysis.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/datavex/leadforge/internal/model"
)

// negativeTerms are appended to every campaign query to exclude job boards
// and hiring content, which dominate results for "we need X" phrasing.
var negativeTerms = []string{
	"-site:indeed.com",
	"-site:glassdoor.com",
	"-site:linkedin.com",
	"-site:ziprecruiter.com",
	"-jobs",
	"-job",
	"-hiring",
	"-careers",
}

// needPhrases holds the positive need-signal clauses per service category.
// Phrases are quoted verbatim in the final expression.
var needPhrases = map[model.ServiceCategory][]string{
	model.CategoryAppDev: {
		"looking for software development partner",
		"need a custom application",
		"outsource app development",
		"small team legacy software",
	},
	model.CategoryAIData: {
		"looking for machine learning consultant",
		"we need machine learning",
		"data analytics for small business",
		"drowning in spreadsheets",
	},
	model.CategoryCloudDevOps: {
		"looking for devops consultant",
		"cloud costs too high",
		"need help with kubernetes",
		"small team cloud migration",
	},
	model.CategoryTransform: {
		"digital transformation small business",
		"still using paper processes",
		"modernize our operations",
		"need to automate workflows",
	},
}

// domainPattern accepts bare domains like example.com or sub.example.co.uk.
var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

// ValidDomain reports whether raw looks like a bare registrable domain.
// A dot and a minimum length are required; schemes and paths are rejected.
func ValidDomain(raw string) bool {
	if !strings.Contains(raw, ".") || len(raw) < 4 {
		return false
	}
	return domainPattern.MatchString(raw)
}

// Campaign builds the dork expression for a campaign run: OR-joined quoted
// need phrases plus the mandatory negative exclusions.
func Campaign(cat model.ServiceCategory) (string, error) {
	phrases, ok := needPhrases[cat]
	if !ok {
		return "", eris.Errorf("query: unknown service category %q", cat)
	}

	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = `"` + p + `"`
	}

	return "(" + strings.Join(quoted, " OR ") + ") " + strings.Join(negativeTerms, " "), nil
}

// Domain builds a site-scoped query requesting company, about and
// engineering page content for a single target domain.
func Domain(domain string) (string, error) {
	if !ValidDomain(domain) {
		return "", eris.Errorf("query: invalid domain %q", domain)
	}
	return fmt.Sprintf("site:%s (about OR company OR team OR engineering)", domain), nil
}

// Fiscal builds the fiscal/news research query for deep analysis.
func Fiscal(domain string) string {
	return fmt.Sprintf("%s funding OR layoffs OR revenue OR acquisition", domain)
}

// Tech builds the tech-stack research query for deep analysis.
func Tech(domain string) string {
	return fmt.Sprintf("%s tech stack OR engineering blog OR architecture", domain)
}
