// Package news fetches recent articles from a NewsAPI-compatible endpoint.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Article is a single news article returned by the source.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	SourceName  string `json:"sourceName"`
}

// StatusError indicates a non-2xx response from the news API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("news api returned status %d: %s", e.StatusCode, e.Body)
}

type everythingResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Client queries the news API "everything" endpoint.
type Client struct {
	cfg    *Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a news client from the given configuration.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
		logger: logger.With("system", "news"),
	}
}

// FetchArticles retrieves the most recent articles matching the configured
// query. An empty result is not an error; callers decide how to treat it.
func (c *Client) FetchArticles(ctx context.Context) ([]Article, error) {
	endpoint, err := c.buildURL()
	if err != nil {
		return nil, fmt.Errorf("build news url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var parsed everythingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	articles := make([]Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			SourceName:  a.Source.Name,
		})
	}

	c.logger.Info("fetched articles",
		"count", len(articles),
		"total_results", parsed.TotalResults,
		"elapsed", time.Since(started),
	)

	return articles, nil
}

func (c *Client) buildURL() (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	base = base.JoinPath("everything")

	q := base.Query()
	q.Set("q", c.cfg.Query)
	q.Set("language", c.cfg.Language)
	q.Set("sortBy", c.cfg.SortBy)
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	base.RawQuery = q.Encode()

	return base.String(), nil
}
