// Support for `Kodi' style filesystem layout.
package collection

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/times"

	"github.com/erikbos/showgraph/idhash"
)

var isImage = regexp.MustCompile(`^(banner|fanart|folder|poster)\.(jpg|jpeg|png|tbn)$`)

const nfoName = "tvshow.nfo"

// buildShows builds the shows in a collection. pace is the time to wait
// between processing each show directory, to avoid overloading the filesystem.
// If pace is 0, no waiting is done.
func buildShows(coll *Collection, pace time.Duration) (shows []*Show) {
	entries, err := os.ReadDir(coll.Directory)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "+ ") {
			continue
		}
		if s := buildShow(coll, name); s != nil {
			shows = append(shows, s)
		}
		if pace > 0 {
			time.Sleep(pace)
		}
	}
	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].SortName < shows[j].SortName
	})
	return
}

// buildShow builds a show from a show directory. A directory without
// an nfo and without any image is not a show.
func buildShow(coll *Collection, dir string) *Show {
	d := filepath.Join(coll.Directory, dir)
	entries, err := os.ReadDir(d)
	if err != nil {
		return nil
	}

	show := &Show{
		ID:       idhash.IdHash(dir),
		Name:     dir,
		SortName: makeSortName(dir),
		Path:     d,
		Created:  createTime(d),
	}

	var folder string
	found := false
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(name, nfoName) {
			show.Nfo = loadNfo(filepath.Join(d, name))
			found = true
			continue
		}
		s := isImage.FindStringSubmatch(strings.ToLower(name))
		if len(s) == 0 {
			continue
		}
		found = true
		switch s[1] {
		case "banner":
			show.Banner = name
		case "fanart":
			show.Fanart = name
		case "folder":
			folder = name
		case "poster":
			show.Poster = name
		}
	}
	if !found {
		return nil
	}
	if show.Poster == "" {
		show.Poster = folder
	}
	if show.Nfo != nil && show.Nfo.SortTitle != "" {
		show.SortName = makeSortName(show.Nfo.SortTitle)
	}
	return show
}

// createTime returns the birth time of a file if the filesystem
// records it, else the modification time.
func createTime(path string) time.Time {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}
	}
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}
	return ts.ModTime()
}
