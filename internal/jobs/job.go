package jobs

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Job is a single normalized posting scraped from a careers page.
type Job struct {
	Company   string
	Title     string
	Location  string
	URL       string
	JobID     string
	Source    string
	ScrapedAt time.Time
}

var reDigits = regexp.MustCompile(`\d+`)

// IDFromURL extracts the first digit run from a posting URL. Sites
// without numeric requisition IDs simply get an empty ID.
func IDFromURL(u string) string {
	return reDigits.FindString(u)
}

// Key identifies a posting across runs. Titles and URLs are folded so
// that trivial casing differences don't produce duplicates.
func (j Job) Key() string {
	return strings.ToLower(j.Company) + "|" + strings.ToLower(j.URL) + "|" + strings.ToLower(j.Title)
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// NormalizeText collapses runs of whitespace and drops non-printable
// runes. Careers pages love zero-width characters inside titles.
func NormalizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	s = strings.TrimSpace(b.String())
	return innerWhitespace.ReplaceAllString(s, " ")
}

// invalidTitles are navigation artifacts that some sites render inside
// the same markup as real postings.
var invalidTitles = []string{
	"saved jobs", "filter results", "search", "previous",
	"next", "load more", "new job search", "careers",
}

// ValidTitle reports whether a scraped title looks like an actual
// posting rather than a navigation element.
func ValidTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "filter") {
		return false
	}
	for _, invalid := range invalidTitles {
		if strings.Contains(t, invalid) {
			return false
		}
	}
	return true
}

// Dedupe removes postings sharing the same Key, keeping first
// occurrence order.
func Dedupe(in []Job) []Job {
	seen := make(map[string]bool, len(in))
	out := make([]Job, 0, len(in))
	for _, j := range in {
		k := j.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, j)
	}
	return out
}
