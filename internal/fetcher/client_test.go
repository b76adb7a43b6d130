package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/readablepub/types"
)

func newTestClient(baseURL string) *Client {
	opts := types.DefaultOptions()
	opts.APIBaseURL = baseURL
	opts.Token = "secret-token"
	return New(opts)
}

func TestFetchArticle(t *testing.T) {
	var gotPath, gotURL, gotToken, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotURL = r.URL.Query().Get("url")
		gotToken = r.URL.Query().Get("token")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Hello, World!",
			"author": "Jane Doe",
			"content": "<p>Body</p>",
			"excerpt": "Short",
			"direction": "ltr",
			"word_count": 42
		}`))
	}))
	defer server.Close()

	article, err := newTestClient(server.URL).FetchArticle(context.Background(), "https://example.com/post")
	require.NoError(t, err)

	assert.Equal(t, parserPath, gotPath)
	assert.Equal(t, "https://example.com/post", gotURL)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, types.Name+"/"+types.Version, gotUA)

	assert.Equal(t, "Hello, World!", article.Title)
	assert.Equal(t, "Jane Doe", article.Author)
	assert.Equal(t, "<p>Body</p>", article.Content)
	assert.Equal(t, "Short", article.Excerpt)
	assert.Equal(t, "ltr", article.Direction)
	assert.Equal(t, 42, article.WordCount)
	assert.Equal(t, "https://example.com/post", article.URL, "page URL used when the API omits it")
}

func TestFetchArticleNullAuthor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "T", "author": null, "content": "<p>x</p>"}`))
	}))
	defer server.Close()

	article, err := newTestClient(server.URL).FetchArticle(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Empty(t, article.Author)
}

func TestFetchArticleBlankTitleRecovered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "  ", "author": "A", "content": "<div><h1> Real   Title </h1><p>x</p></div>"}`))
	}))
	defer server.Close()

	article, err := newTestClient(server.URL).FetchArticle(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "Real Title", article.Title)
}

func TestFetchArticleFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		errorType ErrorType
		sentinel  error
		contains  string
	}{
		{
			name:      "missing title",
			status:    http.StatusOK,
			body:      `{"author": "A", "content": "<p>x</p>"}`,
			errorType: ResponseError,
			sentinel:  ErrMissingField,
			contains:  "title",
		},
		{
			name:      "null content",
			status:    http.StatusOK,
			body:      `{"title": "T", "author": "A", "content": null}`,
			errorType: ResponseError,
			sentinel:  ErrMissingField,
			contains:  "content",
		},
		{
			name:      "malformed json",
			status:    http.StatusOK,
			body:      `{not json`,
			errorType: DecodeError,
		},
		{
			name:      "unauthorized with api message",
			status:    http.StatusUnauthorized,
			body:      `{"error": true, "messages": "Invalid token"}`,
			errorType: StatusError,
			sentinel:  ErrStatus,
			contains:  "Invalid token",
		},
		{
			name:      "server error without body",
			status:    http.StatusInternalServerError,
			errorType: StatusError,
			sentinel:  ErrStatus,
			contains:  "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).FetchArticle(context.Background(), "https://example.com")
			require.Error(t, err)
			assert.True(t, IsErrorType(err, tt.errorType), "got %v", err)
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
			assert.NotContains(t, err.Error(), "secret-token")
		})
	}
}

func TestFetchArticleTransportErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := newTestClient(baseURL).FetchArticle(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, TransportError))
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestFetchBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.png") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("\x89PNG\r\n\x1a\nrest"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	data, err := client.FetchBytes(context.Background(), server.URL+"/img.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\nrest"), data)

	_, err = client.FetchBytes(context.Background(), server.URL+"/missing.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, err.Error(), "missing.png")
}

func TestFetchBytesCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).FetchBytes(ctx, server.URL+"/a.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTitleFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "first h1", content: `<h1>One</h1><h1>Two</h1>`, expected: "One"},
		{name: "h2 when no h1", content: `<p>x</p><h2>Sub <em>title</em></h2>`, expected: "Sub title"},
		{name: "empty h1 skipped", content: `<h1> </h1><h2>Second</h2>`, expected: "Second"},
		{name: "nothing", content: `<p>just text</p>`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleFromContent(tt.content))
		})
	}
}
