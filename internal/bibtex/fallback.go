// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"regexp"
	"strings"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

// entryStartRegex matches an entry header: @type{key,
var entryStartRegex = regexp.MustCompile(`@(\w+)\s*\{\s*([^,\s{}]*)\s*,`)

// fieldRegex matches one field assignment. Values may be brace-delimited
// (one level of nesting tolerated), quote-delimited, or bare.
var fieldRegex = regexp.MustCompile(`(?is)([a-z]+)\s*=\s*(\{(?:[^{}]|\{[^{}]*\})*\}|"[^"]*"|[^,\n{}]+)`)

// parseFallback is the regex strategy. It scans for entry headers and pulls
// field assignments out of the text between consecutive headers, without
// requiring the input to be well-formed as a whole.
func parseFallback(text string) []types.Publication {
	starts := entryStartRegex.FindAllStringSubmatchIndex(text, -1)

	var pubs []types.Publication
	for i, m := range starts {
		entryType := text[m[2]:m[3]]
		key := text[m[4]:m[5]]

		bodyEnd := len(text)
		if i+1 < len(starts) {
			bodyEnd = starts[i+1][0]
		}
		body := text[m[1]:bodyEnd]

		fields := make(map[string]string)
		for _, f := range fieldRegex.FindAllStringSubmatch(body, -1) {
			fields[strings.ToLower(f[1])] = stripDelimiters(f[2])
		}
		if p, ok := newRecord(entryType, key, fields); ok {
			pubs = append(pubs, p)
		}
	}
	return pubs
}

// stripDelimiters removes one layer of brace or quote delimiters from a
// field value and normalizes its whitespace.
func stripDelimiters(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		switch {
		case v[0] == '{' && v[len(v)-1] == '}':
			v = v[1 : len(v)-1]
		case v[0] == '"' && v[len(v)-1] == '"':
			v = v[1 : len(v)-1]
		}
	}
	return normalizeValue(v)
}
