package collection

import (
	"strings"
	"time"
	"unicode"

	"github.com/erikbos/showgraph/nfo"
)

// Show is a tv-show directory.
type Show struct {
	// ID is the unique identifier for the show. Idhash() of the directory name.
	ID string
	// Name is the directory name of the show, e.g. "Twin Peaks (1990)"
	Name string
	// SortName is used to sort on.
	SortName string
	// Path is the full path of the show directory.
	Path string
	// Poster is this show's poster image, often "poster.jpg"
	Poster string
	// Fanart is this show's fanart image, often "fanart.jpg"
	Fanart string
	// Banner is the show's banner image, often "banner.jpg"
	Banner string
	// Created is the creation time of the show directory.
	Created time.Time
	// Nfo is the parsed tvshow.nfo, nil if there is none.
	Nfo *nfo.Nfo
}

// Title returns the title from the nfo, or the directory name.
func (s *Show) Title() string {
	if s.Nfo != nil && strings.TrimSpace(s.Nfo.Title) != "" {
		return strings.TrimSpace(s.Nfo.Title)
	}
	return s.Name
}

func (s *Show) Genres() []string {
	if s.Nfo == nil {
		return nil
	}
	return s.Nfo.Genre
}

// Image returns the path of the best image to represent the show.
func (s *Show) Image() string {
	for _, img := range []string{s.Poster, s.Fanart, s.Banner} {
		if img != "" {
			return img
		}
	}
	return ""
}

// Person is an actor, director or writer credited in one or more shows.
type Person struct {
	// ID is Idhash() of the name.
	ID string
	// Name as written in the nfo.
	Name string
	// Thumb is a URL of a picture, taken from the first nfo that has one.
	Thumb string
	// Shows the person is credited in.
	Shows []*Show
}

// makeSortName returns a name suitable for sorting.
func makeSortName(name string) string {
	// Start with lowercasing and trimming whitespace.
	title := strings.ToLower(strings.TrimSpace(name))

	// Remove leading articles.
	for _, prefix := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(title, prefix) {
			title = strings.TrimSpace(title[len(prefix):])
			break
		}
	}

	// Remove whitespace and punctuation.
	title = strings.TrimLeftFunc(title, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	return title
}
