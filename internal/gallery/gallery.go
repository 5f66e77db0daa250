package gallery

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/inajphotography/visionboard/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed gallery.yaml
var catalogYAML []byte

// Dimension names a filterable image tag
type Dimension string

const (
	Mood    Dimension = "mood"
	Setting Dimension = "setting"
	Style   Dimension = "style"
)

// ParseDimension validates a dimension name coming from user input
func ParseDimension(name string) (Dimension, error) {
	switch d := Dimension(name); d {
	case Mood, Setting, Style:
		return d, nil
	default:
		return "", fmt.Errorf("unknown filter dimension %q (expected mood, setting or style)", name)
	}
}

// Filters holds at most one active value per dimension; empty means inactive.
type Filters struct {
	Mood    string `json:"mood,omitempty"`
	Setting string `json:"setting,omitempty"`
	Style   string `json:"style,omitempty"`
}

// Get returns the active value for d
func (f Filters) Get(d Dimension) string {
	switch d {
	case Mood:
		return f.Mood
	case Setting:
		return f.Setting
	case Style:
		return f.Style
	}
	return ""
}

// With returns a copy of f with d set to value
func (f Filters) With(d Dimension, value string) Filters {
	switch d {
	case Mood:
		f.Mood = value
	case Setting:
		f.Setting = value
	case Style:
		f.Style = value
	}
	return f
}

// Matches reports whether img passes every active filter
func (f Filters) Matches(img models.Image) bool {
	if f.Mood != "" && img.Mood != f.Mood {
		return false
	}
	if f.Setting != "" && img.Setting != f.Setting {
		return false
	}
	if f.Style != "" && img.Style != f.Style {
		return false
	}
	return true
}

// Catalog is the immutable list of images offered in the browse step
type Catalog struct {
	Images []models.Image `yaml:"images"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(catalogYAML)
	})
	return defaultCatalog, defaultErr
}

// Parse decodes a YAML catalog and rejects duplicate or empty IDs
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse gallery catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Images))
	for i, img := range c.Images {
		if img.ID == "" {
			return nil, fmt.Errorf("gallery image %d has no id", i)
		}
		if seen[img.ID] {
			return nil, fmt.Errorf("duplicate gallery image id %q", img.ID)
		}
		seen[img.ID] = true
	}

	return &c, nil
}

// Lookup finds an image by ID
func (c *Catalog) Lookup(id string) (models.Image, bool) {
	for _, img := range c.Images {
		if img.ID == id {
			return img, true
		}
	}
	return models.Image{}, false
}

// Filter returns the images matching f, in catalog order
func (c *Catalog) Filter(f Filters) []models.Image {
	out := make([]models.Image, 0, len(c.Images))
	for _, img := range c.Images {
		if f.Matches(img) {
			out = append(out, img)
		}
	}
	return out
}

// Facets lists the distinct values of each dimension in first-seen order
type Facets struct {
	Moods    []string `json:"moods" yaml:"moods"`
	Settings []string `json:"settings" yaml:"settings"`
	Styles   []string `json:"styles" yaml:"styles"`
}

func (c *Catalog) Facets() Facets {
	var f Facets
	f.Moods = distinct(c.Images, func(img models.Image) string { return img.Mood })
	f.Settings = distinct(c.Images, func(img models.Image) string { return img.Setting })
	f.Styles = distinct(c.Images, func(img models.Image) string { return img.Style })
	return f
}

func distinct(images []models.Image, key func(models.Image) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, img := range images {
		v := key(img)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
