package opengraph

import (
	"html"
	"strconv"
	"strings"
	"time"
)

// appendMeta appends a single meta tag. Empty content is skipped.
func appendMeta(b *strings.Builder, property, content string) {
	if content == "" {
		return
	}
	b.WriteString(`<meta property="`)
	b.WriteString(html.EscapeString(property))
	b.WriteString(`" content="`)
	b.WriteString(html.EscapeString(content))
	b.WriteString("\">\n")
}

// appendMetaValues appends one meta tag per value, in order.
func appendMetaValues(b *strings.Builder, property string, values []string) {
	for _, v := range values {
		appendMeta(b, property, v)
	}
}

// appendMetaInt appends i if set. Zero is a value, not absence.
func appendMetaInt(b *strings.Builder, property string, i *int) {
	if i == nil {
		return
	}
	appendMeta(b, property, strconv.Itoa(*i))
}

// appendMetaDimension appends a pixel dimension, zero meaning unknown.
func appendMetaDimension(b *strings.Builder, property string, px int) {
	if px <= 0 {
		return
	}
	appendMeta(b, property, strconv.Itoa(px))
}

// appendMetaTime appends t in RFC 3339 if set, keeping fractional
// seconds so the value parses back to the same instant.
func appendMetaTime(b *strings.Builder, property string, t *time.Time) {
	if t == nil {
		return
	}
	appendMeta(b, property, t.Format(time.RFC3339Nano))
}
