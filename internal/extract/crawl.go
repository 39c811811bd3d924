package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

type sitePage func(doc *goquery.Document, pageURL, company string) []jobs.Job

type siteNext func(doc *goquery.Document, pageURL string, page int) string

// crawl drives a site extractor through its pages: fetch, parse,
// follow the next cursor, stop at MaxPages or when the site runs out.
// An empty first page falls back to the generic passes, since that
// usually means the site changed its markup rather than having zero
// openings.
func crawl(ctx context.Context, client *fetch.Client, log *ui.Logger, t Target, parse sitePage, next siteNext) ([]jobs.Job, error) {
	var out []jobs.Job
	pageURL := t.URL
	t.Progress.SetTotal(t.MaxPages)

	for page := 1; page <= t.MaxPages; page++ {
		doc, err := client.FetchDocument(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Errorf("%s: page %d failed: %v\n", t.Company, page, err)
			break
		}

		found := parse(doc, pageURL, t.Company)
		if page == 1 && len(found) == 0 {
			log.Infof("%s: site selectors matched nothing, using heuristics\n", t.Company)
			found = CollectHeuristic(doc, pageURL, t.Company)
			found = append(found, CollectJSONLD(doc, pageURL, t.Company)...)
			if len(found) == 0 {
				found = collectFromEndpoints(ctx, client, log, doc, pageURL, t.Company)
			}
		}

		log.Debugf("%s: page %d yielded %d postings\n", t.Company, page, len(found))
		out = append(out, found...)
		t.Progress.Update(page, t.MaxPages, int64(len(out)))

		if page == t.MaxPages {
			break
		}

		n := next(doc, pageURL, page)
		if n == "" || n == pageURL {
			break
		}
		pageURL = n
	}

	return jobs.Dedupe(out), nil
}
