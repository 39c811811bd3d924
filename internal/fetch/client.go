package fetch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type ClientOptions struct {
	Timeout     time.Duration
	UserAgent   string
	Cookie      string
	CookieFile  string
	RatePerHost float64
	DebugLogger interface {
		Debugf(string, ...any)
	}
}

// Client wraps a resty client with the headers, retry policy and
// per-host throttling every extractor shares.
type Client struct {
	http         *resty.Client
	limiter      *hostLimiter
	cookieHeader string
	log          interface{ Debugf(string, ...any) }
}

func NewClient(opts ClientOptions) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	hc := resty.New()
	hc.SetCookieJar(jar)
	hc.SetTimeout(opts.Timeout)
	hc.SetHeader("User-Agent", PickUserAgent(opts.UserAgent))
	hc.SetHeader("Accept-Language", "en-US,en;q=0.9")
	hc.SetRetryCount(3)
	hc.SetRetryWaitTime(500 * time.Millisecond)
	hc.SetRetryMaxWaitTime(5 * time.Second)
	hc.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() == 429 || r.StatusCode() >= 500
	})
	hc.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(hc.GetClient().Transport)

	c := &Client{
		http:         hc,
		limiter:      newHostLimiter(opts.RatePerHost),
		cookieHeader: joinCookies(opts.Cookie, opts.CookieFile),
		log:          opts.DebugLogger,
	}

	if c.log != nil {
		c.log.Debugf("HTTP client initialized (timeout=%s, cookieFile=%q)\n",
			opts.Timeout, opts.CookieFile)
	}

	return c, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.cookieHeader != "" {
		req.SetHeader("Cookie", c.cookieHeader)
	}
	return req
}

// FetchBody fetches a page and returns the raw body.
func (c *Client) FetchBody(ctx context.Context, target string) (string, error) {
	if err := c.limiter.Wait(ctx, target); err != nil {
		return "", err
	}

	if c.log != nil {
		c.log.Debugf("HTTP GET %s\n", target)
	}

	res, err := c.request(ctx).Get(target)
	if err != nil {
		return "", err
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return "", fmt.Errorf("HTTP %d for %s", res.StatusCode(), target)
	}

	return string(res.Body()), nil
}

// FetchDocument fetches a page and parses it into a goquery document.
func (c *Client) FetchDocument(ctx context.Context, target string) (*goquery.Document, error) {
	body, err := c.FetchBody(ctx, target)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// Probe fetches a POST-or-GET endpoint candidate that extractors
// derive from inline scripts. Non-2xx responses are not errors here,
// callers just move on to the next candidate.
func (c *Client) Probe(ctx context.Context, target, method string) (string, bool) {
	if err := c.limiter.Wait(ctx, target); err != nil {
		return "", false
	}

	req := c.request(ctx).SetHeader("X-Requested-With", "XMLHttpRequest")

	var res *resty.Response
	var err error
	if method == "POST" {
		res, err = req.Post(target)
	} else {
		res, err = req.Get(target)
	}
	if err != nil {
		return "", false
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return "", false
	}

	return string(res.Body()), true
}

// jobContentSelectors are probed to decide whether a fetched page
// actually rendered its listings.
var jobContentSelectors = []string{
	".job-tile", ".jobs-list", ".job-card",
	"div[class*=\"job\"]", "div[class*=\"career\"]",
	"[data-job-id]", "[class*=\"job-item\"]",
}

// HasJobContent reports whether the document looks like a loaded
// careers page: a known listing container, or failing that, career
// keywords anywhere in the markup.
func HasJobContent(doc *goquery.Document) bool {
	for _, sel := range jobContentSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}

	var buf bytes.Buffer
	if html, err := doc.Html(); err == nil {
		buf.WriteString(strings.ToLower(html))
	}
	for _, term := range []string{"job", "career", "position"} {
		if strings.Contains(buf.String(), term) {
			return true
		}
	}
	return false
}

func joinCookies(inline, file string) string {
	s := strings.TrimSpace(inline)
	if file != "" {
		if b, err := os.ReadFile(file); err == nil {
			// first non-empty line
			sc := bufio.NewScanner(strings.NewReader(string(b)))
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line != "" {
					if s == "" {
						s = line
					} else {
						s = s + "; " + line
					}
					break
				}
			}
		}
	}

	return s
}

// PickUserAgent returns the override if set, otherwise a rotating
// desktop Chrome user agent.
func PickUserAgent(override string) string {
	if override != "" {
		return override
	}
	if ua := browser.Chrome(); ua != "" {
		return ua
	}
	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
}
