package opengraph

import (
	"strings"
	"time"
)

const videoNamespace = "video: http://ogp.me/ns/video#"

// Actor is a reference to a profile page of an actor and the role played.
type Actor struct {
	ActorURL string
	Role     string
}

// TvShow is the video.tv_show object type: a series or set of episodes
// produced under the same title. See
// https://developers.facebook.com/docs/reference/opengraph/object-type/video.tv_show/
type TvShow struct {
	*Metadata

	// Actors in the show.
	Actors []Actor
	// DirectorURLs point at profile pages of the directors.
	DirectorURLs []string
	// WriterURLs point at profile pages of the writers.
	WriterURLs []string
	// Duration in seconds. Not validated.
	Duration *int
	// ReleaseDate of the show.
	ReleaseDate *time.Time
	// Tags are words associated with the show.
	Tags []string
}

// NewTvShow returns a video.tv_show object. url may be empty.
func NewTvShow(title string, image *Image, url string) (*TvShow, error) {
	m, err := newMetadata(TypeVideoTvShow, videoNamespace, title, image, url)
	if err != nil {
		return nil, err
	}
	return &TvShow{Metadata: m}, nil
}

// Render appends the base tags followed by the video: tags.
func (s *TvShow) Render(b *strings.Builder) {
	s.Metadata.Render(b)

	for _, a := range s.Actors {
		appendMeta(b, "video:actor", a.ActorURL)
		appendMeta(b, "video:actor:role", a.Role)
	}
	appendMetaValues(b, "video:director", s.DirectorURLs)
	appendMetaValues(b, "video:writer", s.WriterURLs)
	appendMetaInt(b, "video:duration", s.Duration)
	appendMetaTime(b, "video:release_date", s.ReleaseDate)
	appendMetaValues(b, "video:tag", s.Tags)
}
