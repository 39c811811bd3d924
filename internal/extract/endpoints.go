package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// Quoted URL literals inside inline scripts.
var endpointPattern = regexp.MustCompile(`["'](https?://[^"'\s]+|/[A-Za-z0-9][^"'\s]*)["']`)

var endpointAssetSuffixes = []string{".js", ".css", ".png", ".svg", ".ico", ".woff", ".woff2"}

const maxEndpointCandidates = 4

// scanEndpoints pulls XHR endpoint candidates out of inline scripts.
// Pages that render their listings client side fetch them from
// somewhere, and that somewhere usually sits in the page source as a
// quoted URL mentioning jobs, careers or search.
func scanEndpoints(doc *goquery.Document, pageURL string) []string {
	var out []string
	seen := map[string]bool{}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		for _, m := range endpointPattern.FindAllStringSubmatch(s.Text(), -1) {
			candidate := m[1]
			lower := strings.ToLower(candidate)
			if !strings.Contains(lower, "job") && !strings.Contains(lower, "career") &&
				!strings.Contains(lower, "search") {
				continue
			}
			if isAssetPath(lower) {
				continue
			}

			u := resolveURL(pageURL, candidate)
			if u == "" || u == pageURL || seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	})

	if len(out) > maxEndpointCandidates {
		out = out[:maxEndpointCandidates]
	}
	return out
}

func isAssetPath(lower string) bool {
	for _, suffix := range endpointAssetSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// collectFromEndpoints is the last resort for client-rendered pages:
// request each endpoint candidate as an XHR and run the generic passes
// over whatever comes back. The first candidate that yields postings
// wins.
func collectFromEndpoints(ctx context.Context, client *fetch.Client, log *ui.Logger, doc *goquery.Document, pageURL, company string) []jobs.Job {
	for _, endpoint := range scanEndpoints(doc, pageURL) {
		body, ok := client.Probe(ctx, endpoint, "GET")
		if !ok || strings.TrimSpace(body) == "" {
			continue
		}

		d, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			continue
		}

		found := CollectHeuristic(d, endpoint, company)
		found = append(found, CollectJSONLD(d, endpoint, company)...)
		if len(found) > 0 {
			log.Debugf("endpoint %s yielded %d postings\n", endpoint, len(found))
			return found
		}
	}
	return nil
}
