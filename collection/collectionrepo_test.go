package collection

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikbos/showgraph/idhash"
)

const testNfo = `<tvshow>
  <title>Twin Peaks</title>
  <genre>Drama / Mystery</genre>
  <director>David Lynch</director>
  <credits>Mark Frost</credits>
  <credits>David Lynch</credits>
  <actor><name>Kyle MacLachlan</name><role>Dale Cooper</role><thumb>https://img.test/kyle.jpg</thumb></actor>
</tvshow>`

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func testRepo(t *testing.T) (*CollectionRepo, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Twin Peaks", "tvshow.nfo"), testNfo)
	writeFile(t, filepath.Join(root, "Twin Peaks", "poster.jpg"), "jpg")
	writeFile(t, filepath.Join(root, "Twin Peaks", "fanart.jpg"), "jpg")
	writeFile(t, filepath.Join(root, "The Americans", "folder.png"), "png")
	writeFile(t, filepath.Join(root, "Empty", "notes.txt"), "nothing")
	writeFile(t, filepath.Join(root, ".hidden", "tvshow.nfo"), testNfo)
	writeFile(t, filepath.Join(root, "stray.nfo"), testNfo)

	cr := New(&Options{
		Collections: []Collection{{Name: "Drama", Directory: root}},
	})
	cr.Init()
	return cr, root
}

func TestScan(t *testing.T) {
	cr, root := testRepo(t)

	colls := cr.GetCollections()
	require.Len(t, colls, 1)
	assert.Equal(t, idhash.IdHash("Drama"), colls[0].ID)

	shows := colls[0].Shows
	require.Len(t, shows, 2)
	// "The Americans" sorts as "americans"
	assert.Equal(t, "The Americans", shows[0].Name)
	assert.Equal(t, "Twin Peaks", shows[1].Name)

	americans := shows[0]
	assert.Equal(t, "folder.png", americans.Poster)
	assert.Nil(t, americans.Nfo)
	assert.Equal(t, "The Americans", americans.Title())

	peaks := shows[1]
	assert.Equal(t, idhash.IdHash("Twin Peaks"), peaks.ID)
	assert.Equal(t, filepath.Join(root, "Twin Peaks"), peaks.Path)
	assert.Equal(t, "poster.jpg", peaks.Poster)
	assert.Equal(t, "fanart.jpg", peaks.Fanart)
	assert.Equal(t, "poster.jpg", peaks.Image())
	assert.False(t, peaks.Created.IsZero())
	require.NotNil(t, peaks.Nfo)
	assert.Equal(t, []string{"Drama", "Mystery"}, peaks.Genres())

	assert.Equal(t, []string{"Drama", "Mystery"}, colls[0].Genres())
}

func TestGetShow(t *testing.T) {
	cr, _ := testRepo(t)

	c, s := cr.GetShow(idhash.IdHash("Twin Peaks"))
	require.NotNil(t, s)
	assert.Equal(t, "Drama", c.Name)
	assert.Equal(t, "Twin Peaks", s.Title())

	c, s = cr.GetShow("nope")
	assert.Nil(t, c)
	assert.Nil(t, s)

	assert.NotNil(t, cr.GetCollection(idhash.IdHash("Drama")))
	assert.Nil(t, cr.GetCollection("nope"))
	assert.Len(t, cr.Shows(), 2)
}

func TestPeople(t *testing.T) {
	cr, _ := testRepo(t)

	kyle := cr.GetPerson(idhash.IdHash("Kyle MacLachlan"))
	require.NotNil(t, kyle)
	assert.Equal(t, "https://img.test/kyle.jpg", kyle.Thumb)

	// director and writer of the same show is listed once
	lynch := cr.GetPerson(idhash.IdHash("David Lynch"))
	require.NotNil(t, lynch)
	assert.Len(t, lynch.Shows, 1)

	assert.NotNil(t, cr.GetPerson(idhash.IdHash("Mark Frost")))
	assert.Nil(t, cr.GetPerson(idhash.IdHash("Laura Palmer")))
}

func TestBackgroundRescans(t *testing.T) {
	cr, root := testRepo(t)
	writeFile(t, filepath.Join(root, "Fargo", "poster.jpg"), "jpg")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cr.Background(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return len(cr.Shows()) == 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Background did not return after cancel")
	}
}

func TestMakeSortName(t *testing.T) {
	assert.Equal(t, "americans", makeSortName("The Americans"))
	assert.Equal(t, "wire", makeSortName("  The Wire"))
	assert.Equal(t, "allo 'allo!", makeSortName("'Allo 'Allo!"))
}
