// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Publication is the normalized bibliographic record shared by the BibTeX
// parser, manual entry, and the citation formatter. All fields are optional
// strings except Title, which is required for a parsed entry to be kept.
type Publication struct {
	// Key is the citation key, taken verbatim from the entry header.
	// Unique within one parse but not enforced globally.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Type is the lowercased BibTeX entry type (e.g. "article").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Year      string `json:"year,omitempty" yaml:"year,omitempty"`
	Journal   string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Booktitle string `json:"booktitle,omitempty" yaml:"booktitle,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Volume    string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pages     string `json:"pages,omitempty" yaml:"pages,omitempty"`
	DOI       string `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}
