package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://newsdata.io/api/1/news"

var (
	// ErrMissingAPIKey means the credential was never configured; it is
	// detected before any network call is made.
	ErrMissingAPIKey = errors.New("newsdata: api key not configured")

	// ErrUpstream covers non-200 responses and non-success payload status.
	ErrUpstream = errors.New("newsdata: upstream error")

	// ErrDecode covers malformed response bodies.
	ErrDecode = errors.New("newsdata: decode error")
)

// NewsDataClient fetches Italian-language Milano news from NewsData.io.
type NewsDataClient struct {
	apiKey     string
	country    string
	language   string
	query      string
	baseURL    string
	httpClient *http.Client
}

func NewNewsDataClient(apiKey string, timeout time.Duration) *NewsDataClient {
	return &NewsDataClient{
		apiKey:     apiKey,
		country:    "it",
		language:   "it",
		query:      "Milano",
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *NewsDataClient) Name() string {
	return "NewsData"
}

// Fetch issues one bounded request and returns the feed's result list
// as-is. On any failure no partial results are returned.
func (c *NewsDataClient) Fetch(ctx context.Context, size int) ([]RawArticle, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("country", c.country)
	params.Set("language", c.language)
	params.Set("q", c.query)
	params.Set("size", fmt.Sprint(size))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsdata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsdata fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var raw ndResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if raw.Status != "success" {
		return nil, fmt.Errorf("%w: response status %q", ErrUpstream, raw.Status)
	}

	return raw.Results, nil
}

type ndResponse struct {
	Status  string       `json:"status"`
	Results []RawArticle `json:"results"`
}
