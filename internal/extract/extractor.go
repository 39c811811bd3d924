package extract

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// Target is one company's resolved scrape request. Progress may be
// nil when nothing is rendering bars (tests, dry runs).
type Target struct {
	Company  string
	URL      string
	MaxPages int
	Progress *ui.ProgressHandle
}

type Extractor interface {
	Name() string
	Extract(ctx context.Context, t Target) ([]jobs.Job, error)
}

type factory func(c *fetch.Client, log *ui.Logger) Extractor

var registry = map[string]factory{
	"amazon":    func(c *fetch.Client, log *ui.Logger) Extractor { return &amazonExtractor{client: c, log: log} },
	"google":    func(c *fetch.Client, log *ui.Logger) Extractor { return &googleExtractor{client: c, log: log} },
	"cisco":     func(c *fetch.Client, log *ui.Logger) Extractor { return &ciscoExtractor{client: c, log: log} },
	"microsoft": func(c *fetch.Client, log *ui.Logger) Extractor { return &microsoftExtractor{client: c, log: log} },
	"ibm":       func(c *fetch.Client, log *ui.Logger) Extractor { return &ibmExtractor{client: c, log: log} },
	"hcl":       func(c *fetch.Client, log *ui.Logger) Extractor { return &hclExtractor{client: c, log: log} },
	"capgemini": func(c *fetch.Client, log *ui.Logger) Extractor { return &capgeminiExtractor{client: c, log: log} },
	"mahindra":  func(c *fetch.Client, log *ui.Logger) Extractor { return &mahindraExtractor{client: c, log: log} },
	"nestle":    func(c *fetch.Client, log *ui.Logger) Extractor { return &nestleExtractor{client: c, log: log} },
}

// New returns the extractor registered under name, or the heuristic
// extractor when the name is empty or unknown.
func New(name string, c *fetch.Client, log *ui.Logger) Extractor {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := registry[key]; ok {
		return f(c, log)
	}
	if key != "" {
		log.Infof("no extractor %q, falling back to heuristics\n", name)
	}
	return NewHeuristic(c, log)
}

// Known lists the registered extractor names.
func Known() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err == nil && u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}
