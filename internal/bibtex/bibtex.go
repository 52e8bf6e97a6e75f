// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex extracts normalized publication records from raw BibTeX text.
//
// Two strategies implement the same extraction contract: the primary strategy
// parses with a structured BibTeX grammar, and a regex-based fallback takes
// over when the grammar rejects the input. Parse never fails; malformed input
// degrades to whatever entries could still be extracted, possibly none.
package bibtex

import (
	"fmt"
	"strings"

	bib "github.com/nickng/bibtex"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

// Parse extracts publication records from raw BibTeX text in source order.
// Entries without a title are dropped. Duplicate citation keys are kept as-is.
func Parse(text string) []types.Publication {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	pubs, err := parseStructured(text)
	if err != nil {
		return parseFallback(text)
	}
	return pubs
}

// parseStructured runs the grammar-based strategy. The grammar library can
// panic on pathological input, so the panic is converted to an error and the
// caller falls back to the regex strategy.
func parseStructured(text string) (pubs []types.Publication, err error) {
	defer func() {
		if r := recover(); r != nil {
			pubs = nil
			err = fmt.Errorf("bibtex grammar: %v", r)
		}
	}()

	parsed, err := bib.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing bibtex: %w", err)
	}

	for _, entry := range parsed.Entries {
		fields := make(map[string]string, len(entry.Fields))
		for name, value := range entry.Fields {
			if value == nil {
				continue
			}
			fields[strings.ToLower(name)] = normalizeValue(value.String())
		}
		if p, ok := newRecord(entry.Type, entry.CiteName, fields); ok {
			pubs = append(pubs, p)
		}
	}
	return pubs, nil
}

// newRecord maps extracted fields into a Publication. Entries lacking a title
// are rejected; unrecognized fields have already been discarded by the caller.
func newRecord(entryType, key string, fields map[string]string) (types.Publication, bool) {
	if fields["title"] == "" {
		return types.Publication{}, false
	}
	return types.Publication{
		Key:       strings.TrimSpace(key),
		Type:      strings.ToLower(strings.TrimSpace(entryType)),
		Title:     fields["title"],
		Author:    fields["author"],
		Year:      fields["year"],
		Journal:   fields["journal"],
		Booktitle: fields["booktitle"],
		Publisher: fields["publisher"],
		Volume:    fields["volume"],
		Pages:     fields["pages"],
		DOI:       fields["doi"],
		URL:       fields["url"],
	}, true
}

// normalizeValue trims a field value and collapses internal whitespace runs,
// so multi-line values come out as a single line.
func normalizeValue(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
