package collection

import "slices"

type Collection struct {
	// Unique identifier for the collection. Hash of the collection name, or taken from configfile.
	ID string `mapstructure:"id"`
	// Name of the collection, .e.g., "Drama"
	Name string `mapstructure:"name"`
	// Directory where the collection is stored
	Directory string `mapstructure:"directory"`
	// Shows in the collection, sorted by SortName.
	Shows []*Show `mapstructure:"-"`
}

type Collections []Collection

// Genres returns the distinct genres of all shows in the collection.
func (c *Collection) Genres() []string {
	genres := make([]string, 0)
	for _, s := range c.Shows {
		for _, g := range s.Genres() {
			if !slices.Contains(genres, g) {
				genres = append(genres, g)
			}
		}
	}
	slices.Sort(genres)
	return genres
}
