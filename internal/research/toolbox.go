package research

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mfekete/quizgen/internal/llm"
)

// Toolbox dispatches the research tools to the model. Network failures
// come back as empty result sets so one flaky search never kills a
// generation; the model simply researches elsewhere or falls back on
// its own knowledge.
type Toolbox struct {
	ddg   *DuckDuckGo
	wiki  *Wikipedia
	books *OpenLibrary
	log   zerolog.Logger

	// DefaultRegion is the DuckDuckGo region used when the model omits
	// one, e.g. "hu-hu".
	DefaultRegion string

	// DefaultLang is the Wikipedia language used when the model omits
	// one, e.g. "hu".
	DefaultLang string
}

// NewToolbox creates a Toolbox with live clients.
func NewToolbox(log zerolog.Logger) *Toolbox {
	return &Toolbox{
		ddg:           NewDuckDuckGo(),
		wiki:          NewWikipedia(),
		books:         NewOpenLibrary(),
		log:           log,
		DefaultRegion: "us-en",
		DefaultLang:   "en",
	}
}

const defaultMaxResults = 5

// Defs returns the tool definitions advertised to the model.
func (t *Toolbox) Defs() []llm.Tool {
	queryParams := func(desc string) map[string]any {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":       map[string]any{"type": "string", "description": desc},
				"region":      map[string]any{"type": "string", "description": "Region code, e.g. \"us-en\" or \"hu-hu\""},
				"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			},
			"required": []any{"query"},
		}
	}

	return []llm.Tool{
		{
			Name:        "search_web",
			Description: "Search the web with DuckDuckGo. Use for broad or current context.",
			Parameters:  queryParams("The search query"),
		},
		{
			Name:        "search_news",
			Description: "Search recent news with DuckDuckGo.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query":       map[string]any{"type": "string", "description": "The news search query"},
					"region":      map[string]any{"type": "string", "description": "Region code, e.g. \"us-en\" or \"hu-hu\""},
					"timelimit":   map[string]any{"type": "string", "enum": []any{"d", "w", "m"}, "description": "Limit results to the past day, week or month"},
					"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
				},
				"required": []any{"query"},
			},
		},
		{
			Name:        "search_books",
			Description: "Search books on Open Library by title, author, or topic.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query":       map[string]any{"type": "string", "description": "The book search query"},
					"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
				},
				"required": []any{"query"},
			},
		},
		{
			Name:        "wikipedia_search",
			Description: "Search Wikipedia for article titles that actually exist. Use for encyclopedic facts.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "The search query"},
					"lang":  map[string]any{"type": "string", "description": "Wikipedia language code, e.g. \"en\" or \"hu\""},
					"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
				},
				"required": []any{"query"},
			},
		},
		{
			Name:        "wikipedia_summary",
			Description: "Get a clean plain-text summary of a Wikipedia page.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":         map[string]any{"type": "string", "description": "The exact page title"},
					"lang":          map[string]any{"type": "string", "description": "Wikipedia language code"},
					"max_sentences": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
				},
				"required": []any{"title"},
			},
		},
	}
}

// Call executes the named tool.
func (t *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	switch name {
	case "search_web":
		return t.searchWeb(ctx, args)
	case "search_news":
		return t.searchNews(ctx, args)
	case "search_books":
		return t.searchBooks(ctx, args)
	case "wikipedia_search":
		return t.wikipediaSearch(ctx, args)
	case "wikipedia_summary":
		return t.wikipediaSummary(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

type searchArgs struct {
	Query      string `json:"query"`
	Region     string `json:"region"`
	Timelimit  string `json:"timelimit"`
	MaxResults int    `json:"max_results"`
}

func (t *Toolbox) searchWeb(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	args, err := decodeSearchArgs(raw, t.DefaultRegion)
	if err != nil {
		return nil, err
	}
	results, err := t.ddg.Text(ctx, args.Query, args.Region, args.MaxResults)
	return t.marshalResults("search_web", results, err)
}

func (t *Toolbox) searchNews(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	args, err := decodeSearchArgs(raw, t.DefaultRegion)
	if err != nil {
		return nil, err
	}
	results, err := t.ddg.News(ctx, args.Query, args.Region, args.Timelimit, args.MaxResults)
	return t.marshalResults("search_news", results, err)
}

func (t *Toolbox) searchBooks(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	args, err := decodeSearchArgs(raw, "")
	if err != nil {
		return nil, err
	}
	results, err := t.books.Books(ctx, args.Query, args.MaxResults)
	return t.marshalResults("search_books", results, err)
}

func (t *Toolbox) wikipediaSearch(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	var args struct {
		Query string `json:"query"`
		Lang  string `json:"lang"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("wikipedia_search arguments: %w", err)
	}
	if args.Lang == "" {
		args.Lang = t.DefaultLang
	}
	if args.Limit == 0 {
		args.Limit = defaultMaxResults
	}
	results, err := t.wiki.Search(ctx, args.Query, args.Lang, args.Limit)
	return t.marshalResults("wikipedia_search", results, err)
}

func (t *Toolbox) wikipediaSummary(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	var args struct {
		Title        string `json:"title"`
		Lang         string `json:"lang"`
		MaxSentences int    `json:"max_sentences"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("wikipedia_summary arguments: %w", err)
	}
	if args.Lang == "" {
		args.Lang = t.DefaultLang
	}
	if args.MaxSentences == 0 {
		args.MaxSentences = 3
	}

	summary, err := t.wiki.Summary(ctx, args.Title, args.Lang, args.MaxSentences)
	if err != nil {
		t.log.Warn().Str("tool", "wikipedia_summary").Err(err).Msg("research tool failed")
		summary = &WikiSummary{Title: args.Title}
	}
	return json.Marshal(summary)
}

func decodeSearchArgs(raw json.RawMessage, defaultRegion string) (searchArgs, error) {
	var args searchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, fmt.Errorf("search arguments: %w", err)
	}
	if args.Region == "" {
		args.Region = defaultRegion
	}
	if args.MaxResults == 0 {
		args.MaxResults = defaultMaxResults
	}
	return args, nil
}

// marshalResults renders results as a JSON array, degrading fetch
// errors to an empty array.
func (t *Toolbox) marshalResults(tool string, results any, err error) (json.RawMessage, error) {
	if err != nil {
		t.log.Warn().Str("tool", tool).Err(err).Msg("research tool failed")
		return json.RawMessage(`[]`), nil
	}
	data, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		data = json.RawMessage(`[]`)
	}
	return data, nil
}
