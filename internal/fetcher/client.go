// Package fetcher talks to the article extraction API and downloads the
// resources an article references. Every call is a single synchronous
// request; nothing is retried.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrjoshuak/readablepub/internal/logger"
	"github.com/mrjoshuak/readablepub/types"
)

// parserPath is the Readability Parser API endpoint relative to the base URL.
const parserPath = "/api/content/v1/parser"

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4096

// Client issues requests against the extraction API.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
}

// New creates a Client from the given options. When no HTTP client is
// supplied, one is built whose transport does not reuse connections.
func New(opts types.ConversionOptions) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
			},
		}
	}
	baseURL := opts.APIBaseURL
	if baseURL == "" {
		baseURL = types.DefaultAPIBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = types.Name + "/" + types.Version
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     opts.Token,
		userAgent: userAgent,
		http:      client,
	}
}

// parserResponse mirrors the fields of the parser API that are used.
// Pointers distinguish absent or null fields from empty ones.
type parserResponse struct {
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	Content      *string `json:"content"`
	URL          string  `json:"url"`
	Excerpt      string  `json:"excerpt"`
	Direction    string  `json:"direction"`
	LeadImageURL string  `json:"lead_image_url"`
	WordCount    int     `json:"word_count"`
}

type errorResponse struct {
	Error    bool   `json:"error"`
	Messages string `json:"messages"`
}

// FetchArticle asks the parser API for the readable version of pageURL.
func (c *Client) FetchArticle(ctx context.Context, pageURL string) (*types.Article, error) {
	query := url.Values{}
	query.Set("url", pageURL)
	query.Set("token", c.token)
	endpoint := c.baseURL + parserPath + "?" + query.Encode()

	logger.Log.WithField("url", pageURL).Debug("requesting article from parser API")

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, wrapError(TransportError, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, wrapError(StatusError, pageURL, statusError(resp))
	}

	var parsed parserResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, wrapError(DecodeError, pageURL, err)
	}

	switch {
	case parsed.Title == nil:
		return nil, wrapError(ResponseError, pageURL, fmt.Errorf("%w: title", ErrMissingField))
	case parsed.Content == nil:
		return nil, wrapError(ResponseError, pageURL, fmt.Errorf("%w: content", ErrMissingField))
	}

	article := &types.Article{
		Title:        strings.TrimSpace(*parsed.Title),
		Content:      *parsed.Content,
		URL:          parsed.URL,
		Excerpt:      parsed.Excerpt,
		Direction:    parsed.Direction,
		LeadImageURL: parsed.LeadImageURL,
		WordCount:    parsed.WordCount,
	}
	if parsed.Author != nil {
		article.Author = strings.TrimSpace(*parsed.Author)
	}
	if article.URL == "" {
		article.URL = pageURL
	}
	if article.Title == "" {
		article.Title = TitleFromContent(article.Content)
	}

	logger.Log.WithFields(logrus.Fields{
		"title":  article.Title,
		"author": article.Author,
		"words":  article.WordCount,
	}).Debug("article received")

	return article, nil
}

// FetchBytes downloads rawURL and returns the raw response body.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, wrapError(TransportError, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, wrapError(StatusError, rawURL, statusError(resp))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(TransportError, rawURL, err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	return resp, nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the
// request URL and with it the API token.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Messages != "" {
		return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, apiErr.Messages)
	}
	return fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
}
