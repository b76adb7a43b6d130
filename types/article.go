// Package types provides the core data structures for the readablepub library.
package types

import (
	"net/http"
	"time"
)

// Article represents the readable version of a web page as returned by the
// article extraction API. Content is an HTML fragment.
type Article struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Content      string `json:"content"`
	URL          string `json:"url,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
	Direction    string `json:"direction,omitempty"`
	LeadImageURL string `json:"lead_image_url,omitempty"`
	WordCount    int    `json:"word_count,omitempty"`
}

// Image is a binary resource embedded in a package under its local name.
type Image struct {
	Name   string // Local filename inside the package
	Source string // Original src the bytes were fetched from
	Data   []byte
}

// ImageSet keeps images keyed by local name in first-insertion order.
// Putting an image under a name that is already present replaces its bytes.
type ImageSet struct {
	order  []string
	images map[string]*Image
}

// NewImageSet returns an empty image set.
func NewImageSet() *ImageSet {
	return &ImageSet{images: make(map[string]*Image)}
}

// Put stores data under name, silently overwriting a previous entry.
func (s *ImageSet) Put(name, source string, data []byte) {
	if s.images == nil {
		s.images = make(map[string]*Image)
	}
	if img, ok := s.images[name]; ok {
		img.Source = source
		img.Data = data
		return
	}
	s.images[name] = &Image{Name: name, Source: source, Data: data}
	s.order = append(s.order, name)
}

// Get returns the image stored under name.
func (s *ImageSet) Get(name string) (*Image, bool) {
	if s == nil || s.images == nil {
		return nil, false
	}
	img, ok := s.images[name]
	return img, ok
}

// Len returns the number of distinct local names.
func (s *ImageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Names returns the local names in insertion order.
func (s *ImageSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Images returns the images in insertion order.
func (s *ImageSet) Images() []*Image {
	if s == nil {
		return nil
	}
	images := make([]*Image, 0, len(s.order))
	for _, name := range s.order {
		images = append(images, s.images[name])
	}
	return images
}

// ConversionOptions configures a conversion run.
// Token authenticates against the extraction API, OutputDir receives the
// package, and a zero Timeout means requests never time out.
type ConversionOptions struct {
	Token      string        // API token
	APIBaseURL string        // Base URL of the extraction API
	OutputDir  string        // Directory the package is written to
	UserAgent  string        // User-Agent header sent with every request
	Timeout    time.Duration // Per-request timeout, zero for none
	HTTPClient *http.Client  // Overrides the default client when set
}

// DefaultAPIBaseURL is the Readability Parser API host.
const DefaultAPIBaseURL = "https://www.readability.com"

// DefaultOptions returns the default conversion options.
// The package is written to the current directory and requests carry the
// library's user agent.
func DefaultOptions() ConversionOptions {
	return ConversionOptions{
		APIBaseURL: DefaultAPIBaseURL,
		OutputDir:  ".",
		UserAgent:  Name + "/" + Version,
	}
}
