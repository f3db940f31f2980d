package nfo

import (
	"slices"
	"strings"
)

// genreMap maps the spellings scrapers use to one canonical genre.
var genreMap = map[string]string{
	"absurdist":       "Absurdist",
	"action":          "Action",
	"adventure":       "Adventure",
	"animation":       "Animation",
	"biography":       "Biography",
	"children":        "Children",
	"comedy":          "Comedy",
	"crime":           "Crime",
	"documentary":     "Documentary",
	"drama":           "Drama",
	"family":          "Family",
	"fantasy":         "Fantasy",
	"foreign":         "Foreign",
	"game show":       "Game Show",
	"game-show":       "Game Show",
	"historical":      "Historical",
	"history":         "History",
	"holiday":         "Holiday",
	"horror":          "Horror",
	"indie":           "Indie",
	"kids":            "Children",
	"mini series":     "Mini Series",
	"mini-series":     "Mini Series",
	"music":           "Music",
	"musical":         "Musical",
	"mystery":         "Mystery",
	"news":            "News",
	"philosophical":   "Philosophical",
	"political":       "Political",
	"reality":         "Reality",
	"romance":         "Romance",
	"satire":          "Satire",
	"sci fi":          "Sci-Fi",
	"sci-fi":          "Sci-Fi",
	"science fiction": "Sci-Fi",
	"science-fiction": "Sci-Fi",
	"short":           "Short",
	"soap":            "Soap",
	"soap opera":      "Soap",
	"sport":           "Sports",
	"sports":          "Sports",
	"surreal":         "Surreal",
	"suspense":        "Suspense",
	"talk show":       "Talk Show",
	"talk-show":       "Talk Show",
	"telenovela":      "Telenovela",
	"thriller":        "Thriller",
	"urban":           "Urban",
	"war":             "War",
	"western":         "Western",
}

// normalizeGenres canonicalizes genres and drops duplicates, keeping
// the first occurrence.
func normalizeGenres(genres []string) (res []string) {
	for _, g := range genres {
		if normalizedGenre, ok := genreMap[strings.ToLower(g)]; ok {
			g = normalizedGenre
		}
		if !slices.Contains(res, g) && len(g) > 1 {
			res = append(res, g)
		}
	}
	return
}
