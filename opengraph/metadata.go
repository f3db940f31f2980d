// Package opengraph renders Open Graph (https://ogp.me/) meta tags.
package opengraph

import (
	"errors"
	"html/template"
	"strings"
)

var (
	ErrTitleRequired = errors.New("opengraph: title is required")
	ErrImageRequired = errors.New("opengraph: image with url is required")
)

const ogNamespace = "og: http://ogp.me/ns#"

// Type is the Open Graph object type, emitted as og:type.
type Type int

const (
	TypeWebsite Type = iota
	TypeProfile
	TypeVideoTvShow
)

func (t Type) String() string {
	switch t {
	case TypeWebsite:
		return "website"
	case TypeProfile:
		return "profile"
	case TypeVideoTvShow:
		return "video.tv_show"
	}
	return ""
}

// Image describes og:image and its structured properties.
type Image struct {
	// URL of the image, required.
	URL string
	// SecureURL is an alternate https URL.
	SecureURL string
	// MimeType, e.g. "image/jpeg".
	MimeType string
	// Width and Height in pixels, 0 when unknown.
	Width  int
	Height int
	// Alt describes what is in the image.
	Alt string
}

// Object is anything that can render itself as Open Graph meta tags.
type Object interface {
	// Render appends the meta tags to b.
	Render(b *strings.Builder)
	// Prefix returns the value for the prefix attribute of <head>.
	Prefix() string
}

// Metadata holds the properties every Open Graph object has.
type Metadata struct {
	// Title of the object as it should appear in the graph.
	Title string
	// Image is the default image.
	Image *Image
	// URL is the canonical URL of the object, used as its ID in the graph.
	URL string
	// Description is a one to two sentence description.
	Description string
	// SiteName is the name of the overall site.
	SiteName string
	// Locale of the tags, e.g. "en_US".
	Locale string

	objectType Type
	namespace  string
}

// NewMetadata returns metadata for a plain website object.
func NewMetadata(title string, image *Image, url string) (*Metadata, error) {
	return newMetadata(TypeWebsite, "", title, image, url)
}

func newMetadata(t Type, namespace, title string, image *Image, url string) (*Metadata, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if image == nil || image.URL == "" {
		return nil, ErrImageRequired
	}
	return &Metadata{
		Title:      title,
		Image:      image,
		URL:        url,
		objectType: t,
		namespace:  namespace,
	}, nil
}

// Type returns the object type.
func (m *Metadata) Type() Type {
	return m.objectType
}

// Namespace returns the namespace declaration of the object type, if any.
func (m *Metadata) Namespace() string {
	return m.namespace
}

func (m *Metadata) Prefix() string {
	if m.namespace == "" {
		return ogNamespace
	}
	return ogNamespace + " " + m.namespace
}

// Render appends the base og: tags.
func (m *Metadata) Render(b *strings.Builder) {
	appendMeta(b, "og:title", m.Title)
	appendMeta(b, "og:type", m.objectType.String())
	appendMeta(b, "og:url", m.URL)
	if m.Image != nil {
		appendMeta(b, "og:image", m.Image.URL)
		appendMeta(b, "og:image:secure_url", m.Image.SecureURL)
		appendMeta(b, "og:image:type", m.Image.MimeType)
		appendMetaDimension(b, "og:image:width", m.Image.Width)
		appendMetaDimension(b, "og:image:height", m.Image.Height)
		appendMeta(b, "og:image:alt", m.Image.Alt)
	}
	appendMeta(b, "og:description", m.Description)
	appendMeta(b, "og:site_name", m.SiteName)
	appendMeta(b, "og:locale", m.Locale)
}

// String renders o into a new string.
func String(o Object) string {
	var b strings.Builder
	o.Render(&b)
	return b.String()
}

// HTML renders o for use in a html/template. Values are already escaped.
func HTML(o Object) template.HTML {
	return template.HTML(String(o))
}
