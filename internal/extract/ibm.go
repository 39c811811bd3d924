package extract

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// ibmExtractor reads ibm.com careers search results built on the
// Carbon design system: anchor cards with an eyebrow category and a
// copy block holding the location.
type ibmExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *ibmExtractor) Name() string { return "ibm" }

func (e *ibmExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseIBMPage, func(doc *goquery.Document, pageURL string, page int) string {
		return NextPageURL(doc, pageURL)
	})
}

func parseIBMPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find(".bx--card-group__card").Each(func(_ int, card *goquery.Selection) {
		title := jobs.NormalizeText(card.Find(".bx--card__heading").First().Text())
		href, ok := card.Attr("href")
		if !ok {
			href, _ = card.Find("a").First().Attr("href")
		}

		if title == "" || href == "" {
			return
		}

		category := jobs.NormalizeText(card.Find(".bx--card__eyebrow").First().Text())
		location := jobs.NormalizeText(card.Find(".ibm--card__copy__inner").First().Text())
		if location == "" {
			location = jobs.NormalizeText(card.Find(".bx--card__copy").First().Text())
		}

		u := resolveURL(pageURL, href)
		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  location,
			URL:       u,
			JobID:     jobs.IDFromURL(u),
			Source:    categoryOr(category, company),
			ScrapedAt: now,
		})
	})

	return out
}

func categoryOr(category, fallback string) string {
	if category != "" {
		return fallback + "/" + category
	}
	return fallback
}
