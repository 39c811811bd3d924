package extract

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// microsoftExtractor reads careers.microsoft.com listings. The markup
// is generic (job-classed divs), so this is close to the heuristic
// pass with tighter selectors.
type microsoftExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *microsoftExtractor) Name() string { return "microsoft" }

func (e *microsoftExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseMicrosoftPage, func(doc *goquery.Document, pageURL string, page int) string {
		return NextPageURL(doc, pageURL)
	})
}

func parseMicrosoftPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find("div[class*=\"job\"]").Each(func(_ int, card *goquery.Selection) {
		title := jobs.NormalizeText(card.Find("h3, [class*=\"title\"]").First().Text())
		location := jobs.NormalizeText(card.Find("[class*=\"location\"]").First().Text())
		href, _ := card.Find("a").First().Attr("href")

		if title == "" || href == "" || !jobs.ValidTitle(title) {
			return
		}

		u := resolveURL(pageURL, href)
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
