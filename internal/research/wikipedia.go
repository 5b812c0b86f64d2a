package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// WikiSearchResult is one article hit from the MediaWiki search API.
type WikiSearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// WikiSummary is the lead summary of a Wikipedia page. Exists is false
// when no page with the title was found.
type WikiSummary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Exists  bool   `json:"exists"`
	URL     string `json:"url"`
}

// Wikipedia looks up articles via the MediaWiki action API (search)
// and the REST summary endpoint.
type Wikipedia struct {
	client *http.Client

	// hostFormat builds the per-language host, e.g.
	// "https://%s.wikipedia.org". Tests point it at a local server.
	hostFormat string
}

// NewWikipedia creates a client with a 10 second timeout.
func NewWikipedia() *Wikipedia {
	return &Wikipedia{
		client:     &http.Client{Timeout: 10 * time.Second},
		hostFormat: "https://%s.wikipedia.org",
	}
}

func (w *Wikipedia) host(lang string) string {
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf(w.hostFormat, lang)
}

// Search returns article titles that actually exist on the wiki.
func (w *Wikipedia) Search(ctx context.Context, query, lang string, limit int) ([]WikiSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	limit = clamp(limit, 1, 10)

	host := w.host(lang)
	q := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"format":   {"json"},
		"utf8":     {"1"},
		"srlimit":  {fmt.Sprint(limit)},
		"srsearch": {query},
	}

	body, err := w.get(ctx, host+"/w/api.php?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	results := make([]WikiSearchResult, 0, len(payload.Query.Search))
	for _, item := range payload.Query.Search {
		if item.Title == "" {
			continue
		}
		results = append(results, WikiSearchResult{
			Title:   item.Title,
			Snippet: cleanHTML(item.Snippet),
			URL:     host + "/wiki/" + strings.ReplaceAll(item.Title, " ", "_"),
		})
	}
	return results, nil
}

// Summary fetches the lead section of a page, limited to maxSentences.
// A missing page is not an error; Exists reports it.
func (w *Wikipedia) Summary(ctx context.Context, title, lang string, maxSentences int) (*WikiSummary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return &WikiSummary{}, nil
	}

	host := w.host(lang)
	endpoint := host + "/api/rest_v1/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &WikiSummary{Title: title}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title   string `json:"title"`
		Extract string `json:"extract"`
		Content struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse summary response: %w", err)
	}

	pageURL := payload.Content.Desktop.Page
	if pageURL == "" {
		pageURL = host + "/wiki/" + strings.ReplaceAll(payload.Title, " ", "_")
	}

	return &WikiSummary{
		Title:   payload.Title,
		Summary: limitSentences(strings.TrimSpace(payload.Extract), maxSentences),
		Exists:  true,
		URL:     pageURL,
	}, nil
}

func (w *Wikipedia) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

var sentenceRe = regexp.MustCompile(`[^.!?]*[.!?]+(?:\s+|$)`)

// limitSentences keeps the first n sentences of text. n <= 0 keeps
// everything.
func limitSentences(text string, n int) string {
	if n <= 0 || text == "" {
		return text
	}
	parts := sentenceRe.FindAllString(text, n)
	if len(parts) == 0 {
		return text
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
