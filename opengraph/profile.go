package opengraph

import "strings"

const profileNamespace = "profile: http://ogp.me/ns/profile#"

// Profile is the profile object type, a person. The URLs in
// video:actor, video:director and video:writer should point at these.
type Profile struct {
	*Metadata

	FirstName string
	LastName  string
	Username  string
	// Gender is "male" or "female", anything else is emitted as is.
	Gender string
}

func NewProfile(title string, image *Image, url string) (*Profile, error) {
	m, err := newMetadata(TypeProfile, profileNamespace, title, image, url)
	if err != nil {
		return nil, err
	}
	return &Profile{Metadata: m}, nil
}

func (p *Profile) Render(b *strings.Builder) {
	p.Metadata.Render(b)

	appendMeta(b, "profile:first_name", p.FirstName)
	appendMeta(b, "profile:last_name", p.LastName)
	appendMeta(b, "profile:username", p.Username)
	appendMeta(b, "profile:gender", p.Gender)
}
