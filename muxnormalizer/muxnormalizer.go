// middleware for normalizing request paths and query parameters, so links
// that were mangled while being shared still hit the right page.
//
// E.g. //Show/abc/?fbclid=123 will be normalized to /show/abc
package muxnormalizer

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

type Normalizer struct {
	bySegmentCount map[int][]routeTemplate
}

type routeTemplate struct {
	staticPos map[int]string
}

// New builds a request normalizer from the routes registered on r.
func New(r *mux.Router) (*Normalizer, error) {
	n := &Normalizer{
		bySegmentCount: make(map[int][]routeTemplate),
	}

	err := r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		template, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		staticPos := make(map[int]string)
		segIndex := 0
		for _, part := range strings.Split(template, "/") {
			if part == "" {
				continue
			}
			// Skip path parameters
			if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
				staticPos[segIndex] = part
			}
			segIndex++
		}
		n.bySegmentCount[segIndex] = append(n.bySegmentCount[segIndex], routeTemplate{staticPos: staticPos})
		return nil
	})

	return n, err
}

// Middleware returns an HTTP middleware that normalizes request paths and query parameters
func (n *Normalizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Remove duplicate slashes
		for strings.Contains(path, "//") {
			path = strings.ReplaceAll(path, "//", "/")
		}

		// Remove trailing slash (except for root path)
		if path != "/" && strings.HasSuffix(path, "/") {
			path = path[:len(path)-1]
		}

		if path != r.URL.Path {
			r.URL.RawPath = ""
		}
		// Canonicalize casing using route index
		r.URL.Path = n.normalizePath(path)

		if len(r.URL.RawQuery) > 0 {
			r.URL.RawQuery = normalizeQueryParameters(r.URL.RawQuery)
		}
		next.ServeHTTP(w, r)
	})
}

// normalizePath rewrites the static segments of path to the casing of
// the first route template matching it.
func (n *Normalizer) normalizePath(path string) string {
	segments := make([]string, 0)
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			segments = append(segments, p)
		}
	}

	for _, tpl := range n.bySegmentCount[len(segments)] {
		match := true
		modified := false
		newSegments := make([]string, len(segments))
		copy(newSegments, segments)

		for i, seg := range segments {
			canonical, ok := tpl.staticPos[i]
			if !ok {
				continue
			}
			if !strings.EqualFold(seg, canonical) {
				match = false
				break
			}
			if seg != canonical {
				newSegments[i] = canonical
				modified = true
			}
		}
		if !match {
			continue
		}
		if modified {
			path = "/" + strings.Join(newSegments, "/")
		}
		break
	}
	return path
}

// normalizeQueryParameters removes the click tracking parameters social
// networks and newsletters append to shared links.
func normalizeQueryParameters(rawQuery string) string {
	queryparameters, _ := url.ParseQuery(rawQuery)
	newValues := url.Values{}

	for name, values := range queryparameters {
		k := strings.ToLower(name)
		if _, remove := removeParams[k]; remove || strings.HasPrefix(k, "utm_") {
			continue
		}
		for _, v := range values {
			newValues.Add(name, v)
		}
	}
	return newValues.Encode()
}

// These are the query parameters we remove, next to utm_*.
var removeParams = map[string]struct{}{
	"fbclid":  {},
	"gclid":   {},
	"igshid":  {},
	"mc_cid":  {},
	"mc_eid":  {},
	"msclkid": {},
	"si":      {},
}
