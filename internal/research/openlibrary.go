package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BookResult is one book hit from the Open Library search API.
type BookResult struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Year    int      `json:"year"`
	URL     string   `json:"url"`
}

// OpenLibrary searches books via openlibrary.org. No API key required.
type OpenLibrary struct {
	client  *http.Client
	baseURL string
}

// NewOpenLibrary creates a client with a 10 second timeout.
func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://openlibrary.org",
	}
}

// Books searches by title, author, or topic. Results are capped at
// max (1-10).
func (o *OpenLibrary) Books(ctx context.Context, query string, max int) ([]BookResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	max = clamp(max, 1, 10)

	q := url.Values{
		"q":      {query},
		"limit":  {fmt.Sprint(max)},
		"fields": {"key,title,author_name,first_publish_year"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		o.baseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Docs []struct {
			Key              string   `json:"key"`
			Title            string   `json:"title"`
			AuthorName       []string `json:"author_name"`
			FirstPublishYear int      `json:"first_publish_year"`
		} `json:"docs"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse book response: %w", err)
	}

	results := make([]BookResult, 0, len(payload.Docs))
	for _, doc := range payload.Docs {
		if doc.Title == "" {
			continue
		}
		results = append(results, BookResult{
			Title:   doc.Title,
			Authors: doc.AuthorName,
			Year:    doc.FirstPublishYear,
			URL:     o.baseURL + doc.Key,
		})
	}
	return results, nil
}
