// Package guard filters candidates against a static known-enterprise
// blocklist and heuristic size signals. Rejects are dropped silently: the
// blocklist stays confidential and downstream synthesis cost is saved.
package guard

import (
	_ "embed"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/datavex/leadforge/internal/model"
)

//go:embed blocklist.yaml
var defaultBlocklist []byte

// Blocklist is the on-disk blocklist format, immutable once loaded.
type Blocklist struct {
	Domains    []string        `yaml:"domains"`
	Patterns   []string        `yaml:"patterns"`
	Heuristics HeuristicConfig `yaml:"heuristics"`
}

// HeuristicConfig tunes the optional snippet-based size heuristics.
type HeuristicConfig struct {
	Enabled           bool `yaml:"enabled"`
	EmployeeThreshold int  `yaml:"employee_threshold"`
}

// enterpriseMarkers are snippet phrases that strongly signal a large
// public enterprise.
var enterpriseMarkers = []string{"nyse:", "nasdaq:", "fortune 500", "fortune 100"}

// employeePattern captures headcount claims like "12,000 employees" or
// "5000+ employees".
var employeePattern = regexp.MustCompile(`(?i)([\d,]+)\s*\+?\s*employees`)

// Guard holds the compiled blocklist. Safe for concurrent use; it is
// read-only after construction.
type Guard struct {
	exact      map[string]bool
	patterns   []*regexp.Regexp
	heuristics HeuristicConfig
}

// Load reads a blocklist from path, or the embedded default when path is
// empty, and compiles it into a Guard.
func Load(path string) (*Guard, error) {
	raw := defaultBlocklist
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "guard: read blocklist file")
		}
		raw = data
	}

	var bl Blocklist
	if err := yaml.Unmarshal(raw, &bl); err != nil {
		return nil, eris.Wrap(err, "guard: parse blocklist")
	}

	return New(bl)
}

// New compiles a Blocklist into a Guard.
func New(bl Blocklist) (*Guard, error) {
	g := &Guard{
		exact:      make(map[string]bool, len(bl.Domains)),
		heuristics: bl.Heuristics,
	}
	for _, d := range bl.Domains {
		g.exact[strings.ToLower(strings.TrimSpace(d))] = true
	}
	for _, p := range bl.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, eris.Wrapf(err, "guard: compile pattern %q", p)
		}
		g.patterns = append(g.patterns, re)
	}
	if g.heuristics.EmployeeThreshold <= 0 {
		g.heuristics.EmployeeThreshold = 1000
	}
	return g, nil
}

// Filter returns the candidates that survive the blocklist, order
// preserved. Candidates are never mutated.
func (g *Guard) Filter(cands []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, 0, len(cands))
	for _, c := range cands {
		if reason := g.reject(c); reason != "" {
			zap.L().Debug("guard: dropped candidate",
				zap.String("domain", c.Domain),
				zap.String("reason", reason),
			)
			continue
		}
		out = append(out, c)
	}
	return out
}

// reject returns a non-empty reason when the candidate matches a blocklist
// rule. Rules short-circuit: exact domain, then brand pattern, then
// snippet heuristics.
func (g *Guard) reject(c model.Candidate) string {
	if g.exact[c.Domain] {
		return "exact domain"
	}

	for _, re := range g.patterns {
		if re.MatchString(c.Domain) || re.MatchString(c.Name) {
			return "brand pattern"
		}
	}

	if g.heuristics.Enabled && g.snippetSignal(c.Snippet) {
		return "size heuristic"
	}

	return ""
}

// snippetSignal reports whether the snippet contains a strong
// large-enterprise signal.
func (g *Guard) snippetSignal(snippet string) bool {
	lower := strings.ToLower(snippet)
	for _, m := range enterpriseMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}

	if m := employeePattern.FindStringSubmatch(snippet); m != nil {
		count, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && count >= g.heuristics.EmployeeThreshold {
			return true
		}
	}

	return false
}
