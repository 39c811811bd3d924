package extract

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/htmlutil"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// Selector lists shared by the heuristic pass. Ordered from most to
// least specific; the first container selector with matches wins.
var (
	containerSelectors = []string{
		".job-tile", "[data-job-id]", "div[class*=\"job\"]",
		"div[class*=\"career\"]", "div[class*=\"position\"]",
		".careers-list", ".job-card", "[class*=\"job-item\"]",
		"article", ".listing", ".posting",
		".bx--card-group__card", ".bx--tile.bx--card",
		".bx--card__wrapper", ".bx--card__content",
		"a[ph-tevent=\"job_click\"]",
		"a[data-ph-at-id=\"job-link\"]",
		".table--advanced-search__row",
		"tr[class*=\"table--advanced-search\"]",
	}

	titleSelectors = []string{
		".job-title", "[class*=\"job-title\"]", "[class*=\"role-title\"]",
		"h1", "h2", "h3", "h4", "[class*=\"title\"]",
		".bx--card__heading", ".bx--card__title",
		"div.job-title span",
		"[data-ph-at-job-title-text]",
		".table--advanced-search__title",
	}

	locationSelectors = []string{
		".location-text", "[class*=\"location\"]", ".job-location",
		"[data-location]", "[class*=\"city\"]", "[class*=\"region\"]",
		".ibm--card__copy__inner", ".bx--card__copy",
		"[data-ph-at-job-location-text]",
		".table--advanced-search__location",
	}

	linkSelectors = []string{
		"a[href*=\"/jobs/\"]", "a[href*=\"/careers/\"]",
		"a[href*=\"/positions/\"]", "a[href*=\"/opportunities/\"]",
		"a[href*=\"/openings/\"]", "a[href*=\"/vacancy/\"]",
		"a[href*=\"/role/\"]", "a[href*=\"/details/\"]",
		"a[href*=\"/apply/\"]",
		"a[href*=\"job\"]", "a[href*=\"career\"]",
		"a[href*=\"position\"]", "a[href*=\"posting\"]",
		"a[href*=\"vacancy\"]", "a[href*=\"opening\"]",
		"a[href*=\"requisition\"]", "a[href*=\"jobid\"]",
		"a[href*=\"linkedin.com/jobs\"]", "a[href*=\"workday.com/\"]",
		"a[href*=\"lever.co/\"]", "a[href*=\"greenhouse.io/\"]",
		"a[href*=\"smartrecruiters.com\"]", "a[href*=\"icims.com\"]",
		"a[class*=\"job-link\"]", "a[class*=\"career-link\"]",
		"a[data-job-id]", "a[data-posting-id]",
	}
)

type heuristicExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

// NewHeuristic builds the fallback extractor used for companies
// without a registered site extractor.
func NewHeuristic(c *fetch.Client, log *ui.Logger) Extractor {
	return &heuristicExtractor{client: c, log: log}
}

func (e *heuristicExtractor) Name() string { return "heuristic" }

func (e *heuristicExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	var out []jobs.Job
	pageURL := t.URL
	t.Progress.SetTotal(t.MaxPages)

	for page := 1; page <= t.MaxPages; page++ {
		doc, err := e.client.FetchDocument(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			e.log.Errorf("page %d of %s failed: %v\n", page, t.Company, err)
			break
		}

		if !fetch.HasJobContent(doc) {
			e.log.Debugf("page %d of %s does not look like a careers page\n", page, t.Company)
		}

		found := CollectHeuristic(doc, pageURL, t.Company)
		found = append(found, CollectJSONLD(doc, pageURL, t.Company)...)
		if page == 1 && len(found) == 0 {
			found = collectFromEndpoints(ctx, e.client, e.log, doc, pageURL, t.Company)
		}
		e.log.Debugf("heuristic pass found %d candidates on page %d\n", len(found), page)
		out = append(out, found...)
		t.Progress.Update(page, t.MaxPages, int64(len(out)))

		if page == t.MaxPages {
			break
		}

		next := NextPageURL(doc, pageURL)
		if next == "" || next == pageURL {
			break
		}
		pageURL = next
	}

	return jobs.Dedupe(out), nil
}

// CollectHeuristic runs the selector-list pass over a single document.
func CollectHeuristic(doc *goquery.Document, pageURL, company string) []jobs.Job {
	containers := findContainers(doc)
	now := time.Now()

	var out []jobs.Job
	containers.Each(func(_ int, sel *goquery.Selection) {
		link, href := findLink(sel)

		title := firstText(sel, titleSelectors)
		if title == "" && link != nil {
			title = anchorText(link)
		}
		location := firstText(sel, locationSelectors)

		if title == "" || (href == "" && location == "") {
			return
		}
		if !jobs.ValidTitle(title) {
			return
		}

		u := ""
		if href != "" {
			u = resolveURL(pageURL, href)
		}

		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  location,
			URL:       u,
			JobID:     jobs.IDFromURL(u),
			Source:    company,
			ScrapedAt: now,
		})
	})

	return out
}

func findContainers(doc *goquery.Document) *goquery.Selection {
	found := doc.Find(containerSelectors[0])
	for _, sel := range containerSelectors {
		if found = doc.Find(sel); found.Length() > 0 {
			break
		}
	}
	return found
}

// anchorText extracts an anchor's visible text. Generic containers
// drag script and tracking markup along, so the fragment is cleaned
// before its text is taken.
func anchorText(sel *goquery.Selection) string {
	if raw, err := sel.Html(); err == nil {
		if text, err := htmlutil.CleanHTML(raw); err == nil && text != "" {
			return text
		}
	}
	return jobs.NormalizeText(sel.Text())
}

func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		found := sel.Find(s).First()
		if found.Length() > 0 {
			if text := jobs.NormalizeText(found.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// findLink returns the first anchor matching the link selectors, or
// the container itself when it is an anchor.
func findLink(sel *goquery.Selection) (*goquery.Selection, string) {
	for _, s := range linkSelectors {
		found := sel.Find(s).First()
		if found.Length() > 0 {
			if href, ok := found.Attr("href"); ok && href != "" {
				return found, href
			}
		}
	}

	if goquery.NodeName(sel) == "a" {
		if href, ok := sel.Attr("href"); ok && href != "" {
			return sel, href
		}
	}

	if href, ok := sel.Attr("href"); ok && href != "" && !strings.HasPrefix(href, "javascript:") {
		return sel, href
	}

	return nil, ""
}
