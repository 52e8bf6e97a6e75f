// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"reflect"
	"testing"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

// strategies lists both extraction implementations; the contract cases below
// must hold for each of them.
var strategies = map[string]func(string) []types.Publication{
	"structured": func(text string) []types.Publication {
		pubs, err := parseStructured(text)
		if err != nil {
			return nil
		}
		return pubs
	},
	"fallback": parseFallback,
}

func TestExtractionContract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.Publication
	}{
		{
			name:  "single article",
			input: `@article{doe2023, title={A Study}, author={Doe, J.}, year={2023}}`,
			want: []types.Publication{{
				Key:    "doe2023",
				Type:   "article",
				Title:  "A Study",
				Author: "Doe, J.",
				Year:   "2023",
			}},
		},
		{
			name: "quote delimited values",
			input: `@book{smith2020,
  title = "Deep Subjects",
  publisher = "Springer",
  year = "2020"
}`,
			want: []types.Publication{{
				Key:       "smith2020",
				Type:      "book",
				Title:     "Deep Subjects",
				Publisher: "Springer",
				Year:      "2020",
			}},
		},
		{
			name: "bare year value",
			input: `@article{k1,
  title = {T},
  year = 1999
}`,
			want: []types.Publication{{Key: "k1", Type: "article", Title: "T", Year: "1999"}},
		},
		{
			name: "entry without title dropped",
			input: `@article{untitled2021, author={Nobody}, year={2021}}
@article{titled2022, title={Kept}, year={2022}}`,
			want: []types.Publication{{Key: "titled2022", Type: "article", Title: "Kept", Year: "2022"}},
		},
		{
			name: "unknown fields ignored",
			input: `@inproceedings{conf1,
  title = {Paper},
  booktitle = {Proc. of Things},
  month = {June},
  keywords = {a, b},
  pages = {1--10}
}`,
			want: []types.Publication{{
				Key:       "conf1",
				Type:      "inproceedings",
				Title:     "Paper",
				Booktitle: "Proc. of Things",
				Pages:     "1--10",
			}},
		},
		{
			name: "entry type lowercased",
			input: `@ARTICLE{caps, title={Loud}}`,
			want:  []types.Publication{{Key: "caps", Type: "article", Title: "Loud"}},
		},
		{
			name: "multiline value collapsed",
			input: "@article{m1, title={A Very\n    Long Title}, year={2001}}",
			want:  []types.Publication{{Key: "m1", Type: "article", Title: "A Very Long Title", Year: "2001"}},
		},
		{
			name: "entries kept in source order with duplicate keys",
			input: `@article{dup, title={First}}
@article{dup, title={Second}}`,
			want: []types.Publication{
				{Key: "dup", Type: "article", Title: "First"},
				{Key: "dup", Type: "article", Title: "Second"},
			},
		},
		{
			name:  "doi and url fields",
			input: `@article{d1, title={T}, doi={10.1000/x}, url={https://example.org/p}}`,
			want: []types.Publication{{
				Key: "d1", Type: "article", Title: "T",
				DOI: "10.1000/x", URL: "https://example.org/p",
			}},
		},
	}

	for strategyName, parse := range strategies {
		for _, tt := range tests {
			t.Run(strategyName+"/"+tt.name, func(t *testing.T) {
				got := parse(tt.input)
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("got %+v\nwant %+v", got, tt.want)
				}
			})
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		if got := Parse(input); len(got) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", input, got)
		}
	}
}

func TestParseNeverFailsOnMalformedInput(t *testing.T) {
	inputs := []string{
		"not bibtex at all",
		"@article{broken, title={unclosed",
		"@{,}",
		"@article{trailing, title={Ok}, }",
	}
	for _, input := range inputs {
		// Must not panic; partial extraction is acceptable.
		_ = Parse(input)
	}
}

func TestParseFallsBackOnGrammarRejection(t *testing.T) {
	// The stray brace makes the input ill-formed as a whole; the fallback
	// still recovers the well-shaped entry.
	input := "}}garbage{{\n@article{ok2024, title={Salvaged}, year={2024}}"
	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(got), got)
	}
	if got[0].Key != "ok2024" || got[0].Title != "Salvaged" {
		t.Errorf("unexpected record %+v", got[0])
	}
}

func TestStripDelimiters(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{Braced}", "Braced"},
		{`"Quoted"`, "Quoted"},
		{"  bare  ", "bare"},
		{"{Nested {Braces} Kept}", "Nested {Braces} Kept"},
	}
	for _, tt := range tests {
		if got := stripDelimiters(tt.in); got != tt.want {
			t.Errorf("stripDelimiters(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
