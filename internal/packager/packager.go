// Package packager assembles an article and its images into an EPUB file.
package packager

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path"
	"path/filepath"
	"strings"

	epub "github.com/bmaupin/go-epub"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/mrjoshuak/readablepub/internal/logger"
	"github.com/mrjoshuak/readablepub/internal/rewriter"
	"github.com/mrjoshuak/readablepub/internal/slug"
	"github.com/mrjoshuak/readablepub/types"
)

const (
	// Extension of written packages.
	Extension = ".epub"
	// ContentFilename is the single content document of the package.
	ContentFilename = "content.xhtml"
	// imageFolder is where go-epub stores images, relative to the content document.
	imageFolder = "../images"
)

// Builder writes packages for articles into an output directory, fetching
// referenced images through fetcher.
type Builder struct {
	fetcher   rewriter.Fetcher
	outputDir string
}

// NewBuilder creates a Builder. An empty outputDir means the current directory.
func NewBuilder(fetcher rewriter.Fetcher, outputDir string) *Builder {
	if outputDir == "" {
		outputDir = "."
	}
	return &Builder{fetcher: fetcher, outputDir: outputDir}
}

// OutputPath returns where the package for title is written.
func (b *Builder) OutputPath(title string) string {
	return filepath.Join(b.outputDir, slug.Filename(title, Extension))
}

// Build packages article and returns the path of the written file. An
// existing file of the same name is replaced. If any step fails, including
// the download of a single image, no file is left behind.
func (b *Builder) Build(ctx context.Context, article *types.Article) (string, error) {
	log := logger.Log.WithField("title", article.Title)

	content, images, err := rewriter.Localize(ctx, composeContent(article), b.fetcher,
		rewriter.WithImageRef(imageRef))
	if err != nil {
		return "", err
	}
	log.WithField("images", images.Len()).Debug("content localized")

	book, err := assemble(article, content, images)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := b.OutputPath(article.Title)
	if err := write(book, dest); err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{
		"path":   dest,
		"images": images.Len(),
	}).Info("package written")
	return dest, nil
}

// composeContent prefixes the article body with its title as a heading.
func composeContent(article *types.Article) string {
	return "<h1>" + html.EscapeString(article.Title) + "</h1>\n" + article.Content
}

// imageRef is the src under which an image is reachable from the content document.
func imageRef(name string) string {
	return path.Join(imageFolder, name)
}

func assemble(article *types.Article, content string, images *types.ImageSet) (*epub.Epub, error) {
	book := epub.NewEpub(article.Title)
	if article.Author != "" {
		book.SetAuthor(article.Author)
	}
	if article.Excerpt != "" {
		book.SetDescription(article.Excerpt)
	}
	if strings.EqualFold(article.Direction, "rtl") {
		book.SetPpd("rtl")
	}

	// go-epub derives the navigation document and the NCX table of contents
	// from the sections; the single section is the whole spine.
	if _, err := book.AddSection(content, article.Title, ContentFilename, ""); err != nil {
		return nil, fmt.Errorf("failed to add content document: %w", err)
	}

	for _, img := range images.Images() {
		ref, err := book.AddImage(dataURL(img.Data), img.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add image %s: %w", img.Name, err)
		}
		if ref != imageRef(img.Name) {
			return nil, fmt.Errorf("image %s stored at unexpected path %s", img.Name, ref)
		}
	}
	return book, nil
}

// dataURL encodes data inline so the packaging library does not fetch it again.
func dataURL(data []byte) string {
	mediaType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return "data:" + strings.TrimSpace(mediaType) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// write stores book under dest by way of a temporary file in the same
// directory, so dest is either fully written or untouched.
func write(book *epub.Epub, dest string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+types.Name+"-*"+Extension)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := book.Write(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write package: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
