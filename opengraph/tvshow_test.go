package opengraph

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	property string
	content  string
}

// parseTags returns the meta tags in document order.
func parseTags(t *testing.T, s string) []tag {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	require.NoError(t, err)
	var tags []tag
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		p, _ := sel.Attr("property")
		c, _ := sel.Attr("content")
		tags = append(tags, tag{p, c})
	})
	return tags
}

// videoTags drops the og: base tags.
func videoTags(tags []tag) []tag {
	var out []tag
	for _, tg := range tags {
		if strings.HasPrefix(tg.property, "video:") {
			out = append(out, tg)
		}
	}
	return out
}

func newTestShow(t *testing.T) *TvShow {
	t.Helper()
	s, err := NewTvShow("Twin Peaks", &Image{URL: "https://example.test/poster.jpg"}, "https://example.test/show/1")
	require.NoError(t, err)
	return s
}

func intPtr(i int) *int { return &i }

func TestNewTvShowRequiresTitleAndImage(t *testing.T) {
	img := &Image{URL: "https://example.test/p.jpg"}

	_, err := NewTvShow("", img, "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewTvShow("  ", img, "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewTvShow("Title", nil, "")
	assert.ErrorIs(t, err, ErrImageRequired)

	_, err = NewTvShow("Title", &Image{}, "")
	assert.ErrorIs(t, err, ErrImageRequired)

	s, err := NewTvShow("Title", img, "")
	require.NoError(t, err)
	assert.Equal(t, TypeVideoTvShow, s.Type())
	assert.Equal(t, "video: http://ogp.me/ns/video#", s.Namespace())
	assert.Equal(t, "og: http://ogp.me/ns# video: http://ogp.me/ns/video#", s.Prefix())
}

func TestTvShowEmptyRendersBaseOnly(t *testing.T) {
	s := newTestShow(t)

	var base strings.Builder
	s.Metadata.Render(&base)

	assert.Equal(t, base.String(), String(s))
	assert.Equal(t, []tag{
		{"og:title", "Twin Peaks"},
		{"og:type", "video.tv_show"},
		{"og:url", "https://example.test/show/1"},
		{"og:image", "https://example.test/poster.jpg"},
	}, parseTags(t, String(s)))
}

func TestTvShowActorRoles(t *testing.T) {
	s := newTestShow(t)
	s.Actors = []Actor{
		{ActorURL: "u1", Role: "r1"},
		{ActorURL: "u2"},
	}

	assert.Equal(t, []tag{
		{"video:actor", "u1"},
		{"video:actor:role", "r1"},
		{"video:actor", "u2"},
	}, videoTags(parseTags(t, String(s))))
}

func TestTvShowOrder(t *testing.T) {
	s := newTestShow(t)
	released := time.Date(1990, 4, 8, 21, 0, 0, 0, time.UTC)
	s.Tags = []string{"mystery", "drama"}
	s.ReleaseDate = &released
	s.Duration = intPtr(2820)
	s.WriterURLs = []string{"w1"}
	s.DirectorURLs = []string{"d1", "d2"}
	s.Actors = []Actor{{ActorURL: "a1", Role: "Dale Cooper"}}

	assert.Equal(t, []tag{
		{"video:actor", "a1"},
		{"video:actor:role", "Dale Cooper"},
		{"video:director", "d1"},
		{"video:director", "d2"},
		{"video:writer", "w1"},
		{"video:duration", "2820"},
		{"video:release_date", "1990-04-08T21:00:00Z"},
		{"video:tag", "mystery"},
		{"video:tag", "drama"},
	}, videoTags(parseTags(t, String(s))))
}

func TestTvShowZeroDurationIsEmitted(t *testing.T) {
	s := newTestShow(t)
	s.Duration = intPtr(0)
	assert.Equal(t, []tag{{"video:duration", "0"}}, videoTags(parseTags(t, String(s))))
}

func TestTvShowNegativeDurationIsNotValidated(t *testing.T) {
	s := newTestShow(t)
	s.Duration = intPtr(-5)
	assert.Equal(t, []tag{{"video:duration", "-5"}}, videoTags(parseTags(t, String(s))))
}

func TestTvShowEmptyCollections(t *testing.T) {
	s := newTestShow(t)
	s.Tags = []string{}
	s.DirectorURLs = []string{}
	s.WriterURLs = []string{}
	s.Actors = []Actor{}
	assert.Empty(t, videoTags(parseTags(t, String(s))))
}

func TestTvShowSkipsEmptyValues(t *testing.T) {
	s := newTestShow(t)
	s.Actors = []Actor{{Role: "orphan role"}, {ActorURL: "u1", Role: ""}}
	s.Tags = []string{"", "kept"}

	assert.Equal(t, []tag{
		{"video:actor:role", "orphan role"},
		{"video:actor", "u1"},
		{"video:tag", "kept"},
	}, videoTags(parseTags(t, String(s))))
}

func TestTvShowEscapesValues(t *testing.T) {
	s, err := NewTvShow(`Tom & "Jerry" <live>`, &Image{URL: "https://example.test/p.jpg?a=1&b=2"}, "")
	require.NoError(t, err)
	s.Tags = []string{`a"b`}

	out := String(s)
	assert.Contains(t, out, `content="Tom &amp; &#34;Jerry&#34; &lt;live&gt;"`)
	assert.Contains(t, out, `content="https://example.test/p.jpg?a=1&amp;b=2"`)
	assert.NotContains(t, out, `<live>`)

	tags := parseTags(t, out)
	assert.Equal(t, tag{"og:title", `Tom & "Jerry" <live>`}, tags[0])
	assert.Equal(t, tag{"video:tag", `a"b`}, tags[len(tags)-1])
}

func TestTvShowRenderTwiceDuplicates(t *testing.T) {
	s := newTestShow(t)
	s.DirectorURLs = []string{"d1"}

	once := String(s)

	var b strings.Builder
	s.Render(&b)
	s.Render(&b)
	assert.Equal(t, once+once, b.String())
}

func TestTvShowAppendsToExistingBuffer(t *testing.T) {
	s := newTestShow(t)

	var b strings.Builder
	b.WriteString("<title>x</title>\n")
	s.Render(&b)
	assert.True(t, strings.HasPrefix(b.String(), "<title>x</title>\n<meta property=\"og:title\""))
}

func TestTvShowOneTagPerLine(t *testing.T) {
	s := newTestShow(t)
	s.DirectorURLs = []string{"d1", "d2"}

	lines := strings.Split(strings.TrimSuffix(String(s), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, `<meta property="video:director" content="d1">`, lines[4])
	assert.Equal(t, `<meta property="video:director" content="d2">`, lines[5])
}

func TestTvShowReleaseDateRoundTrips(t *testing.T) {
	for _, released := range []time.Time{
		time.Date(1990, 4, 8, 21, 0, 0, 123456789, time.UTC),
		time.Date(2017, 5, 21, 21, 0, 0, 500000000, time.FixedZone("EDT", -4*60*60)),
		time.Date(1990, 4, 8, 0, 0, 0, 0, time.UTC),
	} {
		s := newTestShow(t)
		s.ReleaseDate = &released

		tags := videoTags(parseTags(t, String(s)))
		require.Len(t, tags, 1)
		assert.Equal(t, "video:release_date", tags[0].property)

		parsed, err := time.Parse(time.RFC3339Nano, tags[0].content)
		require.NoError(t, err)
		assert.True(t, released.Equal(parsed), "%s != %s", tags[0].content, released)
	}
}
