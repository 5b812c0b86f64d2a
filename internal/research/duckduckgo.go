// Package research implements the web research tools the generator
// exposes to the model: DuckDuckGo search and news, Open Library book
// search, and Wikipedia lookup.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const userAgent = "quizgen/1.0 (educational use)"

// SearchResult is one DuckDuckGo web result.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// NewsResult is one DuckDuckGo news result.
type NewsResult struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Date    int64  `json:"date"`
}

// DuckDuckGo searches via the HTML endpoint (web) and the news.js
// endpoint (news). Neither requires an API key.
type DuckDuckGo struct {
	client   *http.Client
	htmlBase string
	newsBase string
}

// NewDuckDuckGo creates a client with a 10 second timeout.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:   &http.Client{Timeout: 10 * time.Second},
		htmlBase: "https://html.duckduckgo.com",
		newsBase: "https://duckduckgo.com",
	}
}

var (
	resultLinkRe    = regexp.MustCompile(`(?s)<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`(?s)<a[^>]+class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe           = regexp.MustCompile(`<[^>]+>`)
	vqdRe           = regexp.MustCompile(`vqd=['"]?([\d-]+)`)
)

// Text runs a web search. Results are capped at max (1-10).
func (d *DuckDuckGo) Text(ctx context.Context, query, region string, max int) ([]SearchResult, error) {
	max = clamp(max, 1, 10)

	form := url.Values{"q": {query}, "kl": {region}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.htmlBase+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	body, err := d.fetch(req)
	if err != nil {
		return nil, err
	}

	links := resultLinkRe.FindAllStringSubmatch(string(body), max)
	snippets := resultSnippetRe.FindAllStringSubmatch(string(body), max)

	results := make([]SearchResult, 0, len(links))
	for i, m := range links {
		r := SearchResult{
			Title: cleanHTML(m[2]),
			URL:   resolveRedirect(m[1]),
		}
		if i < len(snippets) {
			r.Snippet = cleanHTML(snippets[i][1])
		}
		results = append(results, r)
	}
	return results, nil
}

// News runs a news search. DuckDuckGo requires a vqd token fetched
// from the search page before news.js answers.
// News searches recent news. timelimit narrows the window: "d", "w" or
// "m" for the past day, week or month; empty means no limit.
func (d *DuckDuckGo) News(ctx context.Context, query, region, timelimit string, max int) ([]NewsResult, error) {
	max = clamp(max, 1, 10)

	vqd, err := d.fetchVQD(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch vqd token: %w", err)
	}

	q := url.Values{
		"l":   {region},
		"o":   {"json"},
		"q":   {query},
		"vqd": {vqd},
	}
	if timelimit != "" {
		q.Set("df", timelimit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.newsBase+"/news.js?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	body, err := d.fetch(req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Results []struct {
			Title   string `json:"title"`
			Excerpt string `json:"excerpt"`
			URL     string `json:"url"`
			Source  string `json:"source"`
			Date    int64  `json:"date"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse news response: %w", err)
	}

	results := make([]NewsResult, 0, max)
	for _, r := range payload.Results {
		if len(results) == max {
			break
		}
		results = append(results, NewsResult{
			Title:   cleanHTML(r.Title),
			Excerpt: cleanHTML(r.Excerpt),
			URL:     r.URL,
			Source:  r.Source,
			Date:    r.Date,
		})
	}
	return results, nil
}

func (d *DuckDuckGo) fetchVQD(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.newsBase+"/?q="+url.QueryEscape(query), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	body, err := d.fetch(req)
	if err != nil {
		return "", err
	}
	m := vqdRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("vqd token not found")
	}
	return string(m[1]), nil
}

func (d *DuckDuckGo) fetch(req *http.Request) ([]byte, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", req.URL.Host, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func cleanHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(s, "")))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
