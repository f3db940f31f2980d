// CollectionRepo provides access to tv-show collections.
// It is responsible for managing collections, adding new ones, and updating them
// with the latest content from the filesystem.
package collection

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/erikbos/showgraph/idhash"
)

// CollectionRepo is a repository holding content collections.
type CollectionRepo struct {
	mu          sync.RWMutex
	collections Collections
	people      map[string]*Person
}

type Options struct {
	Collections []Collection
}

// New creates a new CollectionRepo with the provided options.
func New(options *Options) *CollectionRepo {
	cr := &CollectionRepo{
		people: make(map[string]*Person),
	}
	for _, c := range options.Collections {
		cr.AddCollection(c.Name, c.ID, c.Directory)
	}
	return cr
}

// AddCollection adds a new content collection to the repository.
func (cr *CollectionRepo) AddCollection(name string, ID string, directory string) {
	c := Collection{
		Name:      name,
		ID:        ID,
		Directory: directory,
	}
	// If no collection ID is provided, generate one based upon the name.
	if c.ID == "" {
		c.ID = idhash.IdHash(c.Name)
	}

	log.Printf("Adding collection %s, id: %s, directory: %s\n", c.Name, c.ID, c.Directory)

	cr.mu.Lock()
	cr.collections = append(cr.collections, c)
	cr.mu.Unlock()
}

// Init scans the repository for contents for the first time.
func (cr *CollectionRepo) Init() {
	log.Printf("Initializing collections..")
	// scan all collections without delay
	cr.updateCollections(0)
}

// Background keeps scanning the repository for content changes until
// ctx is cancelled. interval is the wait time between two scans.
func (cr *CollectionRepo) Background(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// scan all collections with delay
			cr.updateCollections(100 * time.Millisecond)
		}
	}
}

// updateCollections rebuilds all collections from the file system and
// swaps them in at once, so lookups never see a half-built collection.
// scanInterval can be set as wait time between loading details of individual shows.
func (cr *CollectionRepo) updateCollections(scanInterval time.Duration) {
	cr.mu.RLock()
	colls := make(Collections, len(cr.collections))
	copy(colls, cr.collections)
	cr.mu.RUnlock()

	for i := range colls {
		colls[i].Shows = buildShows(&colls[i], scanInterval)
	}
	people := buildPeople(colls)

	cr.mu.Lock()
	cr.collections = colls
	cr.people = people
	cr.mu.Unlock()
}

// buildPeople indexes everybody credited in the shows of colls.
func buildPeople(colls Collections) map[string]*Person {
	people := make(map[string]*Person)
	add := func(name, thumb string, show *Show) {
		if name == "" {
			return
		}
		id := idhash.IdHash(name)
		p, ok := people[id]
		if !ok {
			p = &Person{ID: id, Name: name}
			people[id] = p
		}
		if p.Thumb == "" {
			p.Thumb = thumb
		}
		if len(p.Shows) == 0 || p.Shows[len(p.Shows)-1] != show {
			p.Shows = append(p.Shows, show)
		}
	}
	for _, c := range colls {
		for _, s := range c.Shows {
			if s.Nfo == nil {
				continue
			}
			for _, a := range s.Nfo.Actor {
				add(a.Name, a.Thumb, s)
			}
			for _, d := range s.Nfo.Director {
				add(d, "", s)
			}
			for _, w := range s.Nfo.Credits {
				add(w, "", s)
			}
		}
	}
	return people
}

// GetCollections returns all collections in the repository.
func (cr *CollectionRepo) GetCollections() Collections {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	colls := make(Collections, len(cr.collections))
	copy(colls, cr.collections)
	return colls
}

// GetCollection returns a collection by its ID.
func (cr *CollectionRepo) GetCollection(collectionID string) *Collection {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	for n := range cr.collections {
		if cr.collections[n].ID == collectionID {
			c := cr.collections[n]
			return &c
		}
	}
	return nil
}

// GetShow returns a show by its ID, and the collection it is in.
func (cr *CollectionRepo) GetShow(showID string) (*Collection, *Show) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	for n := range cr.collections {
		for _, s := range cr.collections[n].Shows {
			if s.ID == showID {
				c := cr.collections[n]
				return &c, s
			}
		}
	}
	return nil, nil
}

// GetPerson returns an actor, director or writer by ID.
func (cr *CollectionRepo) GetPerson(personID string) *Person {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.people[personID]
}

// Shows returns the shows of all collections, sorted by SortName.
func (cr *CollectionRepo) Shows() []*Show {
	cr.mu.RLock()
	var shows []*Show
	for _, c := range cr.collections {
		shows = append(shows, c.Shows...)
	}
	cr.mu.RUnlock()
	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].SortName < shows[j].SortName
	})
	return shows
}
