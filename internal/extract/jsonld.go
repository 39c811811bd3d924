package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/jobs"
)

// CollectJSONLD pulls schema.org JobPosting entries out of embedded
// <script type="application/ld+json"> blocks. Sites that render their
// listings client-side usually still ship these for search engines,
// which makes them the best substitute for executing page scripts.
func CollectJSONLD(doc *goquery.Document, pageURL, company string) []jobs.Job {
	var out []jobs.Job
	now := time.Now()

	doc.Find("script[type=\"application/ld+json\"]").Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return
		}

		walkLD(v, func(posting map[string]any) {
			j, ok := jobFromPosting(posting, pageURL, company, now)
			if ok {
				out = append(out, j)
			}
		})
	})

	return out
}

// walkLD visits every JobPosting object reachable from v, including
// those nested in @graph blocks and plain arrays.
func walkLD(v any, visit func(map[string]any)) {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			walkLD(item, visit)
		}
	case map[string]any:
		if typ, _ := node["@type"].(string); strings.EqualFold(typ, "JobPosting") {
			visit(node)
			return
		}
		if graph, ok := node["@graph"]; ok {
			walkLD(graph, visit)
		}
		if list, ok := node["itemListElement"]; ok {
			walkLD(list, visit)
		}
		if item, ok := node["item"]; ok {
			walkLD(item, visit)
		}
	}
}

func jobFromPosting(posting map[string]any, pageURL, company string, now time.Time) (jobs.Job, bool) {
	title, _ := posting["title"].(string)
	title = jobs.NormalizeText(title)
	if title == "" || !jobs.ValidTitle(title) {
		return jobs.Job{}, false
	}

	u, _ := posting["url"].(string)
	if u == "" {
		u, _ = posting["sameAs"].(string)
	}
	if u != "" {
		u = resolveURL(pageURL, u)
	}

	id := postingIdentifier(posting)
	if id == "" {
		id = jobs.IDFromURL(u)
	}

	return jobs.Job{
		Company:   company,
		Title:     title,
		Location:  postingLocation(posting),
		URL:       u,
		JobID:     id,
		Source:    company,
		ScrapedAt: now,
	}, true
}

func postingIdentifier(posting map[string]any) string {
	switch ident := posting["identifier"].(type) {
	case string:
		return ident
	case map[string]any:
		if v, ok := ident["value"].(string); ok {
			return v
		}
	}
	return ""
}

func postingLocation(posting map[string]any) string {
	loc, ok := posting["jobLocation"].(map[string]any)
	if !ok {
		// some sites emit a list of locations, take the first
		if list, ok := posting["jobLocation"].([]any); ok && len(list) > 0 {
			loc, _ = list[0].(map[string]any)
		}
	}
	if loc == nil {
		return ""
	}

	addr, ok := loc["address"].(map[string]any)
	if !ok {
		if name, ok := loc["name"].(string); ok {
			return jobs.NormalizeText(name)
		}
		return ""
	}

	parts := []string{}
	for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
		if v, ok := addr[key].(string); ok && strings.TrimSpace(v) != "" {
			parts = append(parts, strings.TrimSpace(v))
		}
	}
	return strings.Join(parts, ", ")
}
