// Read `Kodi' style tvshow.nfo files
package nfo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var ErrEmpty = errors.New("nfo: empty document")

// Nfo is the <tvshow> document Kodi and scrapers write next to a show.
type Nfo struct {
	Title         string   `xml:"title,omitempty" json:"title,omitempty"`
	SortTitle     string   `xml:"sorttitle,omitempty" json:"sorttitle,omitempty"`
	Plot          string   `xml:"plot,omitempty" json:"plot,omitempty"`
	Tagline       string   `xml:"tagline,omitempty" json:"tagline,omitempty"`
	Premiered     string   `xml:"premiered,omitempty" json:"premiered,omitempty"`
	RuntimeString string   `xml:"runtime,omitempty" json:"-"`
	Runtime       int      `xml:"-" json:"runtime,omitempty"`
	YearString    string   `xml:"year,omitempty" json:"-"`
	Year          int      `xml:"-" json:"year,omitempty"`
	Genre         []string `xml:"genre,omitempty" json:"genre,omitempty"`
	Tag           []string `xml:"tag,omitempty" json:"tag,omitempty"`
	Director      []string `xml:"director,omitempty" json:"director,omitempty"`
	Credits       []string `xml:"credits,omitempty" json:"credits,omitempty"`
	Actor         []Actor  `xml:"actor,omitempty" json:"actor,omitempty"`
	Thumb         []string `xml:"thumb,omitempty" json:"thumb,omitempty"`
}

type Actor struct {
	Name  string `xml:"name,omitempty" json:"name,omitempty"`
	Role  string `xml:"role,omitempty" json:"role,omitempty"`
	Thumb string `xml:"thumb,omitempty" json:"thumb,omitempty"`
	Order string `xml:"order,omitempty" json:"order,omitempty"`
}

// Decode reads a tvshow.nfo. It is lenient: the decoder is not strict,
// knows HTML entities, and invalid UTF-8 is replaced.
func Decode(r io.Reader) (*Nfo, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(buf))) == 0 {
		return nil, ErrEmpty
	}
	txt := strings.ToValidUTF8(string(buf), "�")

	data := &Nfo{}
	d := xml.NewDecoder(strings.NewReader(txt))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	if err := d.Decode(data); err != nil {
		return nil, fmt.Errorf("nfo: %w", err)
	}

	data.Genre = splitGenres(data.Genre)
	data.Director = trimList(data.Director)
	data.Credits = trimList(data.Credits)
	data.Tag = trimList(data.Tag)
	data.Thumb = trimList(data.Thumb)

	// Some non-string fields can be broken and explode the
	// XML decoder, so decode them after the fact.
	data.Runtime = parseInt(data.RuntimeString)
	data.Year = parseInt(data.YearString)

	return data, nil
}

// PremieredTime returns the premiere date, falling back to January 1st
// of Year. ok is false if neither is known.
func (n *Nfo) PremieredTime() (t time.Time, ok bool) {
	if p := strings.TrimSpace(n.Premiered); p != "" {
		if t, err := time.Parse("2006-01-02", p); err == nil {
			return t, true
		}
	}
	if n.Year > 0 {
		return time.Date(n.Year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// ThumbURL returns the first remote thumb, as written by scrapers.
func (n *Nfo) ThumbURL() string {
	for _, t := range n.Thumb {
		t = strings.TrimSpace(t)
		if strings.HasPrefix(t, "https://") || strings.HasPrefix(t, "http://") {
			return t
		}
	}
	return ""
}

// splitGenres fixes up "Drama / Mystery" and "Drama, Mystery" style
// genres, and normalizes them.
func splitGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		s := strings.Split(g, "/")
		if len(s) == 1 {
			s = strings.Split(g, ",")
		}
		out = append(out, s...)
	}
	return normalizeGenres(trimList(out))
}

func trimList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseInt(s string) (i int) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err == nil {
		i = int(n)
	}
	return
}
