// Package netscape writes the Netscape Bookmark File HTML format, the
// portable interchange format understood by browsers and bookmark
// managers.
package netscape

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/linkhive/linkhive-server/internal/domain"
)

const header = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

const footer = `</DL><p>
`

// Write renders posts as a Netscape bookmark document. Callers are
// expected to pass posts in the default created-at-descending order so
// exports are reproducible. The direction is lossy: fields the format
// has no slot for are dropped.
func Write(w io.Writer, posts []*domain.Post) error {
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range posts {
		if err := writeEntry(w, p); err != nil {
			return fmt.Errorf("write entry %q: %w", p.URL, err)
		}
	}

	if _, err := io.WriteString(w, footer); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeEntry(w io.Writer, p *domain.Post) error {
	var b strings.Builder
	b.WriteString(`<DT><A HREF="`)
	b.WriteString(html.EscapeString(p.URL))
	// ADD_DATE is epoch seconds, the format's convention.
	fmt.Fprintf(&b, `" ADD_DATE="%d"`, p.CreatedAt.Unix())
	fmt.Fprintf(&b, ` PRIVATE="%s"`, boolAttr(!p.Shared))
	fmt.Fprintf(&b, ` TOREAD="%s"`, boolAttr(p.Unread))
	if len(p.TagNames) > 0 {
		b.WriteString(` TAGS="`)
		b.WriteString(html.EscapeString(strings.Join(p.TagNames, ",")))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(title(p)))
	b.WriteString("</A>\n")

	if p.Description != "" {
		b.WriteString("<DD>")
		b.WriteString(html.EscapeString(p.Description))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// title falls back to the URL for untitled posts so the anchor text is
// never empty.
func title(p *domain.Post) string {
	if p.Title != "" {
		return p.Title
	}
	return p.URL
}

func boolAttr(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
