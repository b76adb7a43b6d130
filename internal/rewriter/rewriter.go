// Package rewriter localizes the images of an HTML fragment: every <img src>
// is downloaded and pointed at a local filename so the fragment can be read
// offline.
package rewriter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mrjoshuak/readablepub/internal/logger"
	"github.com/mrjoshuak/readablepub/internal/slug"
	"github.com/mrjoshuak/readablepub/types"
)

// Fetcher downloads the bytes behind an image URL.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Option modifies how Localize rewrites references.
type Option func(*options)

type options struct {
	ref func(localName string) string
}

// WithImageRef sets the function that turns a local filename into the value
// written to the src attribute. By default the local filename itself is used.
func WithImageRef(ref func(localName string) string) Option {
	return func(o *options) {
		if ref != nil {
			o.ref = ref
		}
	}
}

// parseFragment parses content as the children of a <body> element.
// Scripting is off so the markup inside <noscript> is parsed as elements
// instead of raw text.
var parseFragment = func(content string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragmentWithOptions(strings.NewReader(content), body,
		html.ParseOptionEnableScripting(false))
}

// Localize downloads every image referenced by content and returns the
// rewritten fragment as XHTML together with the downloaded images.
//
// Images are visited in document order and fetched from their original src.
// The srcset of a localized image is removed.
// The first failed download aborts the whole pass. Content that cannot be
// parsed is returned unchanged with an empty image set.
func Localize(ctx context.Context, content string, fetcher Fetcher, opts ...Option) (string, *types.ImageSet, error) {
	o := options{ref: func(name string) string { return name }}
	for _, opt := range opts {
		opt(&o)
	}

	images := types.NewImageSet()

	nodes, err := parseFragment(content)
	if err != nil {
		logger.Log.WithError(err).Debug("content is not parseable HTML, leaving it untouched")
		return content, images, nil
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	doc := goquery.NewDocumentFromNode(root)

	var fetchErr error
	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if !needsDownload(src) {
			return true
		}
		if err := ctx.Err(); err != nil {
			fetchErr = err
			return false
		}

		name := slug.LocalName(src)
		data, err := fetcher.FetchBytes(ctx, src)
		if err != nil {
			fetchErr = fmt.Errorf("failed to download image %d: %w", i, err)
			return false
		}

		logger.Log.WithField("src", src).WithField("name", name).Debug("image downloaded")

		images.Put(name, src, data)
		s.SetAttr("src", o.ref(name))
		// Candidates in srcset still point at the network.
		s.RemoveAttr("srcset")
		return true
	})
	if fetchErr != nil {
		return "", nil, fetchErr
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := RenderXHTML(&buf, n); err != nil {
			return "", nil, fmt.Errorf("failed to serialize content: %w", err)
		}
	}
	return buf.String(), images, nil
}

// needsDownload reports whether src points at a remote resource. Missing
// sources and inline data URIs have nothing to fetch.
func needsDownload(src string) bool {
	if src == "" {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(src), "data:")
}
