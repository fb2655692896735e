package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// scrapeMaxBody caps how much of a page is fetched before conversion.
const scrapeMaxBody = 2 << 20 // 2 MB

// scrapeMaxOutput caps the markdown handed back to the model.
const scrapeMaxOutput = 64 << 10 // 64 KB

// WebScraper fetches a web page and returns its readable content as
// markdown, with script/style/nav chrome removed.
type WebScraper struct {
	Client    *http.Client
	UserAgent string
}

// NewWebScraper creates a web scraping tool.
func NewWebScraper() *WebScraper {
	return &WebScraper{
		Client:    &http.Client{Timeout: 20 * time.Second},
		UserAgent: "Mozilla/5.0 (compatible; gaia-agent/1.0)",
	}
}

func (s *WebScraper) Name() string {
	return "scrape_webpage"
}

func (s *WebScraper) Description() string {
	return "Fetch a web page by URL and return its title and readable text content as markdown."
}

func (s *WebScraper) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{"type": "string", "description": "The URL of the page to scrape."},
		},
		"required":             []string{"url"},
		"additionalProperties": false,
	}
}

func (s *WebScraper) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		URL string `json:"url"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}
	if !strings.HasPrefix(args.URL, "http://") && !strings.HasPrefix(args.URL, "https://") {
		return "", fmt.Errorf("unsupported URL %q: only http and https are allowed", args.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, args.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", args.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error fetching %s: status %d", args.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, scrapeMaxBody))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, iframe, svg, nav, footer, header").Remove()

	cleaned, err := doc.Find("body").Html()
	if err != nil || cleaned == "" {
		cleaned = string(body)
	}

	markdown, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to convert page to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if len(markdown) > scrapeMaxOutput {
		markdown = markdown[:scrapeMaxOutput] + "\n\n[content truncated]"
	}

	if title == "" {
		return markdown, nil
	}
	return fmt.Sprintf("# %s\n\n%s", title, markdown), nil
}
