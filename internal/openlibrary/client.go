// Package openlibrary is a minimal client for the Open Library search API,
// used to look up books by title before adding them to the catalog.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
)

const defaultBaseURL = "https://openlibrary.org"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{baseURL: defaultBaseURL, http: cleanhttp.DefaultPooledClient()}
}

// NewClientWithBaseURL points the client at an alternate host, e.g. a test
// server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: cleanhttp.DefaultPooledClient()}
}

// Result is one matched work from the search API.
type Result struct {
	Title  string  `json:"title"`
	Author *string `json:"author,omitempty"`
	Key    string  `json:"key"`
}

type searchResponse struct {
	Docs []struct {
		Title      string   `json:"title"`
		AuthorName []string `json:"author_name"`
		Key        string   `json:"key"`
	} `json:"docs"`
}

// SearchByTitle queries the search API and returns the first match, or nil
// when nothing matched.
func (c *Client) SearchByTitle(ctx context.Context, title string) (*Result, error) {
	u := fmt.Sprintf("%s/search.json?q=%s&fields=title,author_name,key",
		c.baseURL, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search open library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search open library: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(body.Docs) == 0 {
		return nil, nil
	}

	doc := body.Docs[0]
	result := &Result{Title: doc.Title, Key: doc.Key}
	if len(doc.AuthorName) > 0 {
		result.Author = &doc.AuthorName[0]
	}
	return result, nil
}
