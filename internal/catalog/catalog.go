// Package catalog holds the salon's service offerings. The catalog is loaded
// once at startup and is immutable afterwards.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	ErrEmptyCatalog  = errors.New("catalog has no services")
	ErrDuplicateSlug = errors.New("duplicate service slug")
	ErrInvalidEntry  = errors.New("invalid service entry")
)

// Service is a single offering shown on the homepage and booking form.
type Service struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Name        string   `yaml:"name" json:"name"`
	Price       float64  `yaml:"price" json:"price"`
	Description string   `yaml:"description" json:"description"`
	Images      []string `yaml:"images" json:"images"`
}

// Image returns the primary image reference.
func (s Service) Image() string {
	if len(s.Images) == 0 {
		return ""
	}
	return s.Images[0]
}

// DescriptionHTML renders the markdown description.
func (s Service) DescriptionHTML() template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s.Description), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s.Description))
	}
	return template.HTML(buf.String())
}

type file struct {
	Services []Service `yaml:"services"`
}

// Catalog is an ordered, slug-indexed set of services.
type Catalog struct {
	services []Service
	bySlug   map[string]Service
}

// Load reads the catalog from a YAML file, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Services)
}

// New validates services and builds the catalog.
func New(services []Service) (*Catalog, error) {
	if len(services) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		services: make([]Service, 0, len(services)),
		bySlug:   make(map[string]Service, len(services)),
	}
	for i, s := range services {
		s.Slug = strings.TrimSpace(s.Slug)
		s.Name = strings.TrimSpace(s.Name)
		if s.Slug == "" || s.Name == "" || s.Price < 0 || len(s.Images) == 0 {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidEntry, i)
		}
		if _, exists := c.bySlug[s.Slug]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, s.Slug)
		}
		c.bySlug[s.Slug] = s
		c.services = append(c.services, s)
	}
	return c, nil
}

// All returns services in catalog order.
func (c *Catalog) All() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Lookup finds a service by slug.
func (c *Catalog) Lookup(slug string) (Service, bool) {
	s, ok := c.bySlug[slug]
	return s, ok
}
