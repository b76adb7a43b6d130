package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "punctuation dropped", input: "Hello, World!", expected: "hello-world"},
		{name: "already a slug", input: "hello-world", expected: "hello-world"},
		{name: "accents folded", input: "Crème brûlée", expected: "creme-brulee"},
		{name: "runs collapsed", input: "a  --  b", expected: "a-b"},
		{name: "leading and trailing separators trimmed", input: "  ...Go!  ", expected: "go"},
		{name: "digits kept", input: "Top 10 Tips", expected: "top-10-tips"},
		{name: "url", input: "https://example.com/images/photo", expected: "https-example-com-images-photo"},
		{name: "non latin dropped", input: "日本語", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		src  string
		stem string
		ext  string
	}{
		{"https://example.com/a/b.jpg", "https://example.com/a/b", ".jpg"},
		{"https://example.com/a/b.jpg?w=100", "https://example.com/a/b?w=100", ".jpg"},
		{"https://example.com/v1.2/image", "https://example.com/v1.2/image", ""},
		{"https://example.com/", "https://example.com/", ""},
		{"photo.png", "photo", ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stem, ext := SplitExt(tt.src)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"https://example.com/images/photo.jpg", "https-example-com-images-photo.jpg"},
		{"https://example.com/images/photo.JPG", "https-example-com-images-photo.jpg"},
		{"https://cdn.example.com/x.png?w=1", "https-cdn-example-com-x-w-1.png"},
		{"https://cdn.example.com/x.png?w=2", "https-cdn-example-com-x-w-2.png"},
		{"https://example.com/noext", "https-example-com-noext"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, LocalName(tt.src))
		})
	}
}

func TestLocalNameDeterministic(t *testing.T) {
	src := "https://example.com/2024/05/ÜNïcode image.webp"
	first := LocalName(src)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, LocalName(src))
	}
	assert.Equal(t, "https-example-com-2024-05-unicode-image.webp", first)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "hello-world.epub", Filename("Hello, World!", ".epub"))
	assert.Equal(t, "untitled.epub", Filename("!!!", ".epub"))
	assert.Equal(t, "untitled.epub", Filename("", ".epub"))
}
