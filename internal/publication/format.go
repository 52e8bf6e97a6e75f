// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publication

import (
	"strings"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

// FormatHTML renders one publication as an HTML citation fragment:
//
//	Author. "Title." <em>Journal</em> Publisher (Year) <a ...>DOI</a>
//
// Only the parts present contribute, and each part carries its own leading
// separator, so a fragment whose first parts are absent starts with a space.
// Journal wins over booktitle, and a DOI link wins over a plain URL link.
// Field values are emitted as-is: callers embedding the fragment in an
// escaped context are responsible for escaping.
func FormatHTML(p types.Publication) string {
	var b strings.Builder

	if p.Author != "" {
		b.WriteString(p.Author + ".")
	}
	if p.Title != "" {
		b.WriteString(` "` + p.Title + `."`)
	}
	switch {
	case p.Journal != "":
		b.WriteString(" <em>" + p.Journal + "</em>")
	case p.Booktitle != "":
		b.WriteString(" In <em>" + p.Booktitle + "</em>")
	}
	if p.Publisher != "" {
		b.WriteString(" " + p.Publisher)
	}
	if p.Year != "" {
		b.WriteString(" (" + p.Year + ")")
	}
	switch {
	case p.DOI != "":
		b.WriteString(" <a href='https://doi.org/" + p.DOI + "'>DOI</a>")
	case p.URL != "":
		b.WriteString(" <a href='" + p.URL + "'>Link</a>")
	}

	return b.String()
}
