package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// resultSeparator joins formatted search hits in tool output.
const resultSeparator = "\n\n\n--------------\n\n\n"

// defaultMaxResults is how many hits each search tool returns.
const defaultMaxResults = 3

var searchHTTPClient = &http.Client{Timeout: 30 * time.Second}

// formatResult renders one search hit as a metadata/content block.
func formatResult(title, source, content string) string {
	return fmt.Sprintf("*Metadata*:\nTitle: %s\nURL: %s\n\n*Content*:\n%s", title, source, content)
}

type searchArgs struct {
	Query string `json:"query"`
}

func querySchema(desc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string", "description": desc},
		},
		"required":             []string{"query"},
		"additionalProperties": false,
	}
}

// WikiSearch searches Wikipedia through the MediaWiki API and returns the
// intro extracts of the top matching articles.
type WikiSearch struct {
	BaseURL    string
	MaxResults int

	stripper *bluemonday.Policy
}

// NewWikiSearch creates a Wikipedia search tool against en.wikipedia.org.
func NewWikiSearch() *WikiSearch {
	return &WikiSearch{
		BaseURL:    "https://en.wikipedia.org/w/api.php",
		MaxResults: defaultMaxResults,
		stripper:   bluemonday.StrictPolicy(),
	}
}

func (w *WikiSearch) Name() string {
	return "wiki_search"
}

func (w *WikiSearch) Description() string {
	return "Search Wikipedia for a given query and return the top 3 articles " +
		"with their titles, URLs and introductory content."
}

func (w *WikiSearch) Parameters() map[string]any {
	return querySchema("The search query.")
}

type wikiResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			Index   int    `json:"index"`
		} `json:"pages"`
	} `json:"query"`
}

func (w *WikiSearch) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrsearch", args.Query)
	params.Set("gsrlimit", fmt.Sprintf("%d", w.MaxResults))
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := searchHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia API error: status %d", resp.StatusCode)
	}

	var parsed wikiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode wikipedia response: %w", err)
	}

	// The pages map is keyed by page ID; Index restores search ranking.
	type page struct {
		title, extract string
		index          int
	}
	pages := make([]page, 0, len(parsed.Query.Pages))
	for _, p := range parsed.Query.Pages {
		pages = append(pages, page{title: p.Title, extract: p.Extract, index: p.Index})
	}
	for i := 0; i < len(pages); i++ {
		for j := i + 1; j < len(pages); j++ {
			if pages[j].index < pages[i].index {
				pages[i], pages[j] = pages[j], pages[i]
			}
		}
	}

	blocks := make([]string, 0, len(pages))
	for _, p := range pages {
		articleURL := "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(p.title, " ", "_"))
		content := strings.TrimSpace(w.stripper.Sanitize(p.extract))
		blocks = append(blocks, formatResult(p.title, articleURL, content))
	}
	return strings.Join(blocks, resultSeparator), nil
}

// TavilySearch searches the web through the Tavily API.
type TavilySearch struct {
	APIKey     string
	BaseURL    string
	MaxResults int
}

// TavilyOption configures a TavilySearch tool.
type TavilyOption func(*TavilySearch)

// WithTavilyBaseURL overrides the API endpoint.
func WithTavilyBaseURL(baseURL string) TavilyOption {
	return func(t *TavilySearch) {
		t.BaseURL = baseURL
	}
}

// WithTavilyMaxResults sets the number of results to return (1-20).
func WithTavilyMaxResults(n int) TavilyOption {
	return func(t *TavilySearch) {
		if n < 1 {
			n = 1
		}
		if n > 20 {
			n = 20
		}
		t.MaxResults = n
	}
}

// NewTavilySearch creates a Tavily search tool.
func NewTavilySearch(apiKey string, opts ...TavilyOption) (*TavilySearch, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY not set")
	}
	t := &TavilySearch{
		APIKey:     apiKey,
		BaseURL:    "https://api.tavily.com/search",
		MaxResults: defaultMaxResults,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *TavilySearch) Name() string {
	return "tavily_search"
}

func (t *TavilySearch) Description() string {
	return "Search the web using the Tavily API and return the top 3 results " +
		"with their titles, URLs and content snippets."
}

func (t *TavilySearch) Parameters() map[string]any {
	return querySchema("The search query.")
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (t *TavilySearch) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]any{
		"api_key":      t.APIKey,
		"query":        args.Query,
		"max_results":  t.MaxResults,
		"search_depth": "advanced",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := searchHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tavily API error (status %d): %s", resp.StatusCode, string(b))
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode tavily response: %w", err)
	}

	blocks := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		blocks = append(blocks, formatResult(r.Title, r.URL, r.Content))
	}
	return strings.Join(blocks, resultSeparator), nil
}

// ArxivSearch searches arXiv through its Atom query API.
type ArxivSearch struct {
	BaseURL    string
	MaxResults int
}

// NewArxivSearch creates an arXiv search tool.
func NewArxivSearch() *ArxivSearch {
	return &ArxivSearch{
		BaseURL:    "https://export.arxiv.org/api/query",
		MaxResults: defaultMaxResults,
	}
}

func (a *ArxivSearch) Name() string {
	return "arxiv_search"
}

func (a *ArxivSearch) Description() string {
	return "Search arXiv for a given query and return the top 3 papers " +
		"with their titles, links, authors and abstracts."
}

func (a *ArxivSearch) Parameters() map[string]any {
	return querySchema("The search query.")
}

type arxivFeed struct {
	Entries []struct {
		Title   string `xml:"title"`
		ID      string `xml:"id"`
		Summary string `xml:"summary"`
		Authors []struct {
			Name string `xml:"name"`
		} `xml:"author"`
	} `xml:"entry"`
}

func (a *ArxivSearch) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("search_query", "all:"+args.Query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", a.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := searchHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arxiv API error: status %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("failed to decode arxiv feed: %w", err)
	}

	blocks := make([]string, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		names := make([]string, 0, len(e.Authors))
		for _, au := range e.Authors {
			names = append(names, au.Name)
		}
		content := fmt.Sprintf("Authors: %s\n\n%s",
			strings.Join(names, ", "),
			strings.TrimSpace(e.Summary))
		blocks = append(blocks, formatResult(strings.TrimSpace(e.Title), strings.TrimSpace(e.ID), content))
	}
	return strings.Join(blocks, resultSeparator), nil
}
