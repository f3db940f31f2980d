package collection

import (
	"log"
	"os"

	"github.com/erikbos/showgraph/nfo"
)

// loadNfo reads and parses a tvshow.nfo. Parse errors are logged and
// result in nil, the show is still served based on its directory.
func loadNfo(filename string) *nfo.Nfo {
	file, err := os.Open(filename)
	if err != nil {
		log.Printf("Error opening NFO file %s: %v", filename, err)
		return nil
	}
	defer file.Close()
	n, err := nfo.Decode(file)
	if err != nil {
		log.Printf("Error parsing NFO file %s: %v", filename, err)
		return nil
	}
	return n
}
