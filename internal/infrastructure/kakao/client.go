// Package kakao calls the Kakao Local keyword search API.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
)

const (
	DefaultBaseURL = "https://dapi.kakao.com"
	keywordPath    = "/v2/local/search/keyword.json"
)

// ErrSearchFailed is returned for every non-2xx answer of the search API.
var ErrSearchFailed = errors.New("kakao place search failed")

var _ application.PlaceSearcher = (*Client)(nil)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) searchURL(q application.SearchQuery) string {
	v := url.Values{}
	v.Set("query", q.Query)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	return c.BaseURL + keywordPath + "?" + v.Encode()
}

// Search runs a keyword search authenticated with the REST API key.
func (c *Client) Search(ctx context.Context, apiKey string, q application.SearchQuery) (*entity.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(q), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "KakaoAK "+apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}
	var out entity.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("kakao search decode: %w", err)
	}
	if out.Documents == nil {
		out.Documents = []entity.ExternalPlace{}
	}
	return &out, nil
}
