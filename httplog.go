package main

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// previewAgents maps User-Agent substrings of link unfurlers to a short
// name for the access log. Telegram claims to be "like TwitterBot", so it
// goes first.
var previewAgents = []struct{ match, name string }{
	{"telegrambot", "telegram"},
	{"facebookexternalhit", "facebook"},
	{"facebookcatalog", "facebook"},
	{"twitterbot", "twitter"},
	{"slackbot", "slack"},
	{"discordbot", "discord"},
	{"whatsapp", "whatsapp"},
	{"linkedinbot", "linkedin"},
	{"skypeuripreview", "skype"},
	{"mastodon", "mastodon"},
	{"iframely", "iframely"},
}

// previewAgent returns the unfurler name of a User-Agent, or "-".
func previewAgent(ua string) string {
	ua = strings.ToLower(ua)
	for _, a := range previewAgents {
		if strings.Contains(ua, a.match) {
			return a.name
		}
	}
	return "-"
}

// accessWriter records status and body length of a response.
type accessWriter struct {
	http.ResponseWriter
	status int
	length int
}

func (w *accessWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *accessWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.length += n
	return n, err
}

// HttpLog logs one line per request in combined log style, followed by
// the latency in milliseconds and the unfurler that fetched the page.
func HttpLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		aw := &accessWriter{ResponseWriter: w}
		next.ServeHTTP(aw, r)
		if aw.status == 0 {
			aw.status = http.StatusOK
		}

		ua := r.Header.Get("User-Agent")
		log.Printf("%s \"%s %s %s\" %d %d %s %s %dms %s",
			r.RemoteAddr,
			r.Method,
			r.URL.RequestURI(),
			r.Proto,
			aw.status,
			aw.length,
			strconv.Quote(r.Header.Get("Referer")),
			strconv.Quote(ua),
			time.Since(start).Milliseconds(),
			previewAgent(ua))
	})
}
