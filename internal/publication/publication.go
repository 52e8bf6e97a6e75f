// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publication renders normalized publication records as HTML citation
// fragments and converts manually entered records into the same shape.
package publication

import (
	"github.com/pdiddy/wxr-generator/pkg/types"
)

// FromManual converts a manually entered record to the normalized shape the
// formatter consumes. The combined journal-or-booktitle field maps to Journal,
// so manual entries always render with the journal styling.
func FromManual(m types.ManualPublication) types.Publication {
	return types.Publication{
		Title:     m.Title,
		Author:    m.Author,
		Year:      m.Year,
		Journal:   m.JournalOrBooktitle,
		Publisher: m.Publisher,
		DOI:       m.DOI,
		URL:       m.URL,
	}
}

// Combine concatenates parsed BibTeX records and manual records, BibTeX
// first. No de-duplication is performed between the two lists.
func Combine(parsed []types.Publication, manual []types.ManualPublication) []types.Publication {
	if len(parsed) == 0 && len(manual) == 0 {
		return nil
	}
	combined := make([]types.Publication, 0, len(parsed)+len(manual))
	combined = append(combined, parsed...)
	for _, m := range manual {
		combined = append(combined, FromManual(m))
	}
	return combined
}
