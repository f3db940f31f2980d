package ogpage

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorilla/mux"

	"github.com/erikbos/showgraph/collection"
	"github.com/erikbos/showgraph/idhash"
	"github.com/erikbos/showgraph/opengraph"
)

func showURL(base, id string) string {
	return base + "/show/" + id
}

func personURL(base, name string) string {
	return base + "/person/" + idhash.IdHash(name)
}

func posterURL(base, id string) string {
	return base + "/image/" + id + "/poster"
}

// tvShow maps a show to its video.tv_show object.
func (p *Pages) tvShow(base string, s *collection.Show) (*opengraph.TvShow, error) {
	og, err := opengraph.NewTvShow(s.Title(), p.showImage(base, s), showURL(base, s.ID))
	if err != nil {
		return nil, err
	}
	og.SiteName = p.siteName
	og.Locale = p.locale

	n := s.Nfo
	if n == nil {
		return og, nil
	}
	og.Description = strings.TrimSpace(n.Plot)
	if og.Description == "" {
		og.Description = strings.TrimSpace(n.Tagline)
	}

	for _, a := range n.Actor {
		if a.Name == "" {
			continue
		}
		og.Actors = append(og.Actors, opengraph.Actor{
			ActorURL: personURL(base, a.Name),
			Role:     strings.TrimSpace(a.Role),
		})
	}
	for _, d := range n.Director {
		og.DirectorURLs = append(og.DirectorURLs, personURL(base, d))
	}
	for _, c := range n.Credits {
		og.WriterURLs = append(og.WriterURLs, personURL(base, c))
	}
	if n.Runtime > 0 {
		duration := n.Runtime * 60
		og.Duration = &duration
	}
	if t, ok := n.PremieredTime(); ok {
		og.ReleaseDate = &t
	}
	for _, t := range slices.Concat(n.Genre, n.Tag) {
		if !slices.Contains(og.Tags, t) {
			og.Tags = append(og.Tags, t)
		}
	}
	return og, nil
}

// hasImage tells if showImage can find an image for s.
func (p *Pages) hasImage(s *collection.Show) bool {
	return s.Image() != "" || thumbURL(s) != "" || p.defaultImage != ""
}

func thumbURL(s *collection.Show) string {
	if s.Nfo == nil {
		return ""
	}
	return s.Nfo.ThumbURL()
}

// showImage returns the og:image of a show: the local image, then the
// remote thumb from the nfo, then the default image. nil if none exists.
func (p *Pages) showImage(base string, s *collection.Show) *opengraph.Image {
	if s.Image() == "" {
		if u := thumbURL(s); u != "" {
			return &opengraph.Image{URL: u, Alt: s.Title()}
		}
		return p.fallbackImage()
	}
	img := &opengraph.Image{
		URL: posterURL(base, s.ID),
		Alt: s.Title(),
	}
	if strings.HasPrefix(img.URL, "https://") {
		img.SecureURL = img.URL
	}

	file := filepath.Join(s.Path, s.Image())
	ow, _, err := p.resizer.Info(file)
	if err != nil {
		// Not an image we can decode, still refer to it.
		log.Printf("image info %s: %v", file, err)
		img.MimeType = mimeType(file)
		return img
	}
	img.Width, img.Height, _ = p.resizer.Dimensions(file, p.imageWidth)
	if img.Width != ow {
		img.MimeType = "image/jpeg"
	} else {
		img.MimeType = mimeType(file)
	}
	return img
}

func (p *Pages) fallbackImage() *opengraph.Image {
	if p.defaultImage == "" {
		return nil
	}
	return &opengraph.Image{URL: p.defaultImage}
}

func mimeType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".jpg", ".jpeg", ".tbn":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return ""
}

func (p *Pages) lookupShow(w http.ResponseWriter, r *http.Request) *collection.Show {
	_, s := p.collections.GetShow(mux.Vars(r)["show"])
	if s == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
	}
	return s
}

// objectError answers a failed opengraph object. Without an image there
// is nothing to preview, which is a missing page rather than a server error.
func objectError(w http.ResponseWriter, what, id string, err error) {
	if errors.Is(err, opengraph.ErrImageRequired) {
		log.Printf("%s %s: %v, set defaultimage to serve it", what, id, err)
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	log.Printf("%s %s: %v", what, id, err)
	http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
}

func (p *Pages) showHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "show") {
		return
	}
	s := p.lookupShow(w, r)
	if s == nil {
		return
	}
	base := p.base(r)
	og, err := p.tvShow(base, s)
	if err != nil {
		objectError(w, "show", s.ID, err)
		return
	}

	var links []link
	if s.Nfo != nil {
		for _, a := range s.Nfo.Actor {
			if a.Name != "" && p.hasPersonPage(a.Name) {
				links = append(links, link{URL: personURL(base, a.Name), Name: a.Name})
			}
		}
		for _, n := range slices.Concat(s.Nfo.Director, s.Nfo.Credits) {
			l := link{URL: personURL(base, n), Name: n}
			if !slices.Contains(links, l) && p.hasPersonPage(n) {
				links = append(links, l)
			}
		}
	}
	servePage(w, og, page{
		Title:       og.Title,
		Description: og.Description,
		Image:       og.Image.URL,
		Links:       links,
	})
}

func (p *Pages) showTagsHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "show") {
		return
	}
	s := p.lookupShow(w, r)
	if s == nil {
		return
	}
	og, err := p.tvShow(p.base(r), s)
	if err != nil {
		objectError(w, "show", s.ID, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(opengraph.String(og)))
}

func (p *Pages) posterHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "show") {
		return
	}
	s := p.lookupShow(w, r)
	if s == nil {
		return
	}
	if s.Image() == "" {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	file := filepath.Join(s.Path, s.Image())
	fn, err := p.resizer.Resize(file, p.imageWidth, p.imageQuality)
	if err != nil {
		log.Printf("resize %s: %v", file, err)
		fn = file
	}
	if fn == file && strings.EqualFold(filepath.Ext(file), ".tbn") {
		w.Header().Set("Content-Type", "image/jpeg")
	}
	http.ServeFile(w, r, fn)
}
