// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wxr

import (
	"strings"
	"testing"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

func TestHomeContentEscapesUserText(t *testing.T) {
	step1 := &types.Step1PersonalInfo{
		TitleRole:  `Professor of <Dangerous> "Things"`,
		Department: "R&D",
	}
	step2 := &types.Step2Biography{Biography: "Likes <script>alert(1)</script>"}

	got := homeContent(step1, step2, 0, DefaultBaseURL)

	if strings.Contains(got, "<Dangerous>") || strings.Contains(got, "<script>") {
		t.Errorf("user text not escaped:\n%s", got)
	}
	for _, want := range []string{"&lt;Dangerous&gt;", "R&amp;D", "&lt;script&gt;"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing escaped text %q in:\n%s", want, got)
		}
	}
}

func TestHomeContentOmitsEmptySections(t *testing.T) {
	got := homeContent(&types.Step1PersonalInfo{}, &types.Step2Biography{}, 0, DefaultBaseURL)
	if got != "" {
		t.Errorf("empty steps should produce an empty body, got:\n%s", got)
	}
}

func TestHomeContentProfileImageBlock(t *testing.T) {
	step1 := &types.Step1PersonalInfo{TitleRole: "Professor"}
	got := homeContent(step1, &types.Step2Biography{}, 4, DefaultBaseURL)

	for _, want := range []string{
		`<!-- wp:image {"id":4,"sizeSlug":"large","linkDestination":"none"} -->`,
		`class="wp-image-4"`,
		`<!-- /wp:image -->`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestHomeContentContactLines(t *testing.T) {
	step1 := &types.Step1PersonalInfo{
		Department:  "Biology",
		Email:       "a@b.edu",
		PhoneNumber: "555-0100",
	}
	got := homeContent(step1, &types.Step2Biography{}, 0, DefaultBaseURL)

	if !strings.Contains(got, `<a href="mailto:a@b.edu">a@b.edu</a>`) {
		t.Errorf("missing mailto link in:\n%s", got)
	}
	if strings.Count(got, "<br />") != 2 {
		t.Errorf("three contact lines should be joined by two breaks:\n%s", got)
	}
	if strings.Contains(got, "Office:") || strings.Contains(got, "Field of Study:") {
		t.Errorf("absent fields must not appear:\n%s", got)
	}
}

func TestPublicationsContent(t *testing.T) {
	pubs := []types.Publication{
		{Author: "Doe, J.", Title: "First"},
		{Author: "Roe, R.", Title: "Second", DOI: "10.1/x"},
	}
	got := publicationsContent(pubs)

	if strings.Count(got, "<!-- wp:paragraph -->") != 2 {
		t.Errorf("want one paragraph block per publication:\n%s", got)
	}
	if !strings.Contains(got, `<h2 class="wp-block-heading">Publications</h2>`) {
		t.Errorf("missing heading:\n%s", got)
	}
	if !strings.Contains(got, "doi.org/10.1/x") {
		t.Errorf("missing DOI link:\n%s", got)
	}
}

func TestPublicationsContentEmptyList(t *testing.T) {
	got := publicationsContent(nil)

	if !strings.Contains(got, `<p class="wp-block-paragraph">No publications listed.</p>`) {
		t.Errorf("missing placeholder paragraph:\n%s", got)
	}
	if !strings.Contains(got, `<h2 class="wp-block-heading">Publications</h2>`) {
		t.Errorf("missing heading:\n%s", got)
	}
	if strings.Count(got, "<!-- wp:paragraph -->") != 1 {
		t.Errorf("want exactly the placeholder paragraph:\n%s", got)
	}
}

func TestGalleryContent(t *testing.T) {
	got := galleryContent([]int{2, 3, 5}, DefaultBaseURL)

	if !strings.Contains(got, `"ids":[2,3,5]`) {
		t.Errorf("missing id list:\n%s", got)
	}
	if strings.Count(got, "blocks-gallery-item") != 3 {
		t.Errorf("want one grid item per id:\n%s", got)
	}
	for _, want := range []string{"wp-image-2", "wp-image-3", "wp-image-5", `<!-- /wp:gallery -->`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
