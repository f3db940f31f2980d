package ogpage

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/erikbos/showgraph/collection"
	"github.com/erikbos/showgraph/idhash"
	"github.com/erikbos/showgraph/opengraph"
)

// personImage returns the picture of a person, else the poster of the
// first show with one, else the default image. nil if none exists.
func (p *Pages) personImage(base string, person *collection.Person) *opengraph.Image {
	if person.Thumb != "" {
		return &opengraph.Image{URL: person.Thumb, Alt: person.Name}
	}
	for _, s := range person.Shows {
		if s.Image() != "" {
			return &opengraph.Image{
				URL:      posterURL(base, s.ID),
				Alt:      s.Title(),
				MimeType: mimeType(filepath.Join(s.Path, s.Image())),
			}
		}
	}
	return p.fallbackImage()
}

// hasPersonPage tells if personHandler can serve the person called name.
func (p *Pages) hasPersonPage(name string) bool {
	person := p.collections.GetPerson(idhash.IdHash(name))
	return person != nil && p.personImage("", person) != nil
}

// profile maps a person to a profile object.
func (p *Pages) profile(base string, person *collection.Person) (*opengraph.Profile, error) {
	og, err := opengraph.NewProfile(person.Name, p.personImage(base, person), personURL(base, person.Name))
	if err != nil {
		return nil, err
	}
	og.SiteName = p.siteName
	og.Locale = p.locale
	og.FirstName, og.LastName = splitName(person.Name)
	return og, nil
}

// splitName splits "Kyle MacLachlan" into first and last name. A single
// word is a first name.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	i := strings.LastIndexByte(name, ' ')
	if i < 0 {
		return name, ""
	}
	return strings.TrimSpace(name[:i]), name[i+1:]
}

func (p *Pages) personHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "person") {
		return
	}
	person := p.collections.GetPerson(mux.Vars(r)["person"])
	if person == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	base := p.base(r)
	og, err := p.profile(base, person)
	if err != nil {
		objectError(w, "person", person.ID, err)
		return
	}

	links := make([]link, 0, len(person.Shows))
	for _, s := range person.Shows {
		links = append(links, link{URL: showURL(base, s.ID), Name: s.Title()})
	}
	servePage(w, og, page{
		Title: og.Title,
		Image: og.Image.URL,
		Links: links,
	})
}
