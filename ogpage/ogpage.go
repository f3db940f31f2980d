// Package ogpage serves landing pages for shows and the people credited
// in them, with Open Graph meta tags for link previews.
package ogpage

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/erikbos/showgraph/collection"
	"github.com/erikbos/showgraph/imageresize"
)

type Options struct {
	Collections *collection.CollectionRepo
	Resizer     *imageresize.Resizer
	// BaseURL is prefixed to all URLs in meta tags, e.g. "https://tv.example.com".
	// When empty it is derived from the request.
	BaseURL string
	// SiteName is emitted as og:site_name.
	SiteName string
	// Locale is emitted as og:locale.
	Locale string
	// DefaultImage is the og:image URL for shows and people without one.
	DefaultImage string
	// ImageWidth is the maximum width of og:image derivatives, 0 to serve originals.
	ImageWidth int
	// ImageQuality is the JPEG quality of og:image derivatives.
	ImageQuality int
}

type Pages struct {
	collections  *collection.CollectionRepo
	resizer      *imageresize.Resizer
	baseURL      string
	siteName     string
	locale       string
	defaultImage string
	imageWidth   int
	imageQuality int
}

func New(o *Options) *Pages {
	resizer := o.Resizer
	if resizer == nil {
		resizer = imageresize.New(imageresize.Options{})
	}
	return &Pages{
		collections:  o.Collections,
		resizer:      resizer,
		baseURL:      strings.TrimSuffix(o.BaseURL, "/"),
		siteName:     o.SiteName,
		locale:       o.Locale,
		defaultImage: o.DefaultImage,
		imageWidth:   o.ImageWidth,
		imageQuality: o.ImageQuality,
	}
}

func (p *Pages) RegisterHandlers(r *mux.Router) {
	gzip := handlers.CompressHandler

	r.Handle("/shows", gzip(http.HandlerFunc(p.showsHandler)))
	r.Handle("/collections", gzip(http.HandlerFunc(p.collectionsHandler)))
	r.Handle("/collection/{collection}", gzip(http.HandlerFunc(p.collectionHandler)))
	r.HandleFunc("/show/{show}", p.showHandler)
	r.HandleFunc("/show/{show}/opengraph", p.showTagsHandler)
	r.HandleFunc("/person/{person}", p.personHandler)
	r.HandleFunc("/image/{show}/poster", p.posterHandler)
}

func preCheck(w http.ResponseWriter, r *http.Request, keys ...string) (done bool) {
	vars := mux.Vars(r)
	for _, k := range keys {
		if _, ok := vars[k]; !ok {
			http.Error(w, "500 Internal Server Error",
				http.StatusInternalServerError)
			done = true
			return
		}
	}
	switch r.Method {
	case "OPTIONS":
		setheaders(w.Header())
		done = true
	case "GET", "HEAD":
		setheaders(w.Header())
	default: // refuse the rest
		http.Error(w, "403 Access denied", http.StatusForbidden)
		done = true
	}
	return
}

func setheaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
}

func serveJSON(obj any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	j := json.NewEncoder(w)
	j.SetIndent("", "  ")
	if err := j.Encode(obj); err != nil {
		log.Printf("serveJSON: %v", err)
	}
}

// base returns the URL prefix for absolute links.
func (p *Pages) base(r *http.Request) string {
	if p.baseURL != "" {
		return p.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if r.URL.Scheme != "" {
		scheme = r.URL.Scheme
	}
	return scheme + "://" + r.Host
}

type showEntry struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Collection string   `json:"collection"`
	Genres     []string `json:"genres,omitempty"`
}

type collectionEntry struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	URL    string      `json:"url"`
	Genres []string    `json:"genres"`
	Count  int         `json:"count"`
	Shows  []showEntry `json:"shows,omitempty"`
}

func collectionURL(base, id string) string {
	return base + "/collection/" + id
}

func (p *Pages) makeShowEntry(base string, c *collection.Collection, s *collection.Show) showEntry {
	return showEntry{
		ID:         s.ID,
		Name:       s.Name,
		Title:      s.Title(),
		URL:        showURL(base, s.ID),
		Collection: c.Name,
		Genres:     s.Genres(),
	}
}

// showsHandler lists the shows of all collections by sort name. Shows
// without any image are left out, their pages cannot be rendered.
func (p *Pages) showsHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r) {
		return
	}
	base := p.base(r)
	colls := p.collections.GetCollections()
	showColl := make(map[string]*collection.Collection)
	for i := range colls {
		for _, s := range colls[i].Shows {
			showColl[s.ID] = &colls[i]
		}
	}

	shows := []showEntry{}
	for _, s := range p.collections.Shows() {
		c, ok := showColl[s.ID]
		if !ok || !p.hasImage(s) {
			continue
		}
		shows = append(shows, p.makeShowEntry(base, c, s))
	}
	serveJSON(shows, w)
}

func (p *Pages) collectionsHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r) {
		return
	}
	base := p.base(r)
	colls := []collectionEntry{}
	for _, c := range p.collections.GetCollections() {
		colls = append(colls, collectionEntry{
			ID:     c.ID,
			Name:   c.Name,
			URL:    collectionURL(base, c.ID),
			Genres: c.Genres(),
			Count:  len(c.Shows),
		})
	}
	serveJSON(colls, w)
}

func (p *Pages) collectionHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "collection") {
		return
	}
	c := p.collections.GetCollection(mux.Vars(r)["collection"])
	if c == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	base := p.base(r)
	entry := collectionEntry{
		ID:     c.ID,
		Name:   c.Name,
		URL:    collectionURL(base, c.ID),
		Genres: c.Genres(),
		Count:  len(c.Shows),
		Shows:  []showEntry{},
	}
	for _, s := range c.Shows {
		if p.hasImage(s) {
			entry.Shows = append(entry.Shows, p.makeShowEntry(base, c, s))
		}
	}
	serveJSON(entry, w)
}
