package ogpage

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/erikbos/showgraph/opengraph"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head prefix="{{.Prefix}}">
<meta charset="utf-8">
<title>{{.Title}}</title>
{{.Tags}}</head>
<body>
<h1>{{.Title}}</h1>
{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">
{{end}}{{if .Description}}<p>{{.Description}}</p>
{{end}}{{if .Links}}<ul>
{{range .Links}}<li><a href="{{.URL}}">{{.Name}}</a></li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type link struct {
	URL  string
	Name string
}

type page struct {
	Prefix      string
	Tags        template.HTML
	Title       string
	Description string
	Image       string
	Links       []link
}

func servePage(w http.ResponseWriter, og opengraph.Object, pg page) {
	pg.Prefix = og.Prefix()
	pg.Tags = opengraph.HTML(og)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pg); err != nil {
		log.Printf("page template: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
