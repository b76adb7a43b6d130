package readablepub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mrjoshuak/readablepub/internal/fetcher"
	"github.com/mrjoshuak/readablepub/internal/packager"
)

// ErrNoToken is returned by New when no API token was configured.
var ErrNoToken = errors.New("no parser API token configured")

// Converter turns web articles into EPUB files.
type Converter interface {
	// ConvertURL fetches the article at url, embeds its images and writes
	// the package, returning the path of the written file.
	ConvertURL(ctx context.Context, url string) (string, error)
}

// Option represents a function that modifies ConversionOptions.
// This follows the functional options pattern for configuring the converter.
type Option func(*ConversionOptions)

// WithToken sets the parser API token.
func WithToken(token string) Option {
	return func(o *ConversionOptions) {
		o.Token = token
	}
}

// WithAPIBaseURL points the converter at another host speaking the
// Readability Parser API.
func WithAPIBaseURL(baseURL string) Option {
	return func(o *ConversionOptions) {
		o.APIBaseURL = baseURL
	}
}

// WithOutputDir sets the directory packages are written to.
func WithOutputDir(dir string) Option {
	return func(o *ConversionOptions) {
		o.OutputDir = dir
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(userAgent string) Option {
	return func(o *ConversionOptions) {
		o.UserAgent = userAgent
	}
}

// WithTimeout bounds each HTTP request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *ConversionOptions) {
		o.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *ConversionOptions) {
		o.HTTPClient = client
	}
}

// WithOptions replaces all options at once.
func WithOptions(opts ConversionOptions) Option {
	return func(o *ConversionOptions) {
		*o = opts
	}
}

type converter struct {
	client  *fetcher.Client
	builder *packager.Builder
}

// New creates a Converter. It fails with ErrNoToken when no token is set.
func New(opts ...Option) (Converter, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Token == "" {
		return nil, ErrNoToken
	}

	client := fetcher.New(options)
	return &converter{
		client:  client,
		builder: packager.NewBuilder(client, options.OutputDir),
	}, nil
}

func (c *converter) ConvertURL(ctx context.Context, url string) (string, error) {
	article, err := c.client.FetchArticle(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}

	path, err := c.builder.Build(ctx, article)
	if err != nil {
		return "", fmt.Errorf("failed to build package for %q: %w", article.Title, err)
	}
	return path, nil
}
