// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

func previewBundle() types.SiteBundle {
	return types.SiteBundle{
		User: types.User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"},
		Site: types.Site{ID: 7, SiteName: "Jane's Lab"},
		Step1: &types.Step1PersonalInfo{
			TitleRole:  "Professor",
			Department: "Biology",
		},
		Step2: &types.Step2Biography{Biography: "Studies things."},
	}
}

func TestRender(t *testing.T) {
	pubs := []types.Publication{
		{Author: "Doe, J.", Title: "A Study", Journal: "Nature", Year: "2023"},
	}

	var buf bytes.Buffer
	if err := Render(&buf, previewBundle(), pubs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Jane&#39;s Lab",
		"Owner: Jane Doe",
		"Title/Role: Professor",
		"Studies things.",
		"Publications (1)",
		"<em>Nature</em>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q", want)
		}
	}
}

func TestRenderSanitizesCitationMarkup(t *testing.T) {
	pubs := []types.Publication{
		{Title: `Tricky<script>alert(1)</script>`, Author: "Doe, J."},
		{Title: "Linked", URL: "javascript:alert(1)"},
	}

	var buf bytes.Buffer
	if err := Render(&buf, previewBundle(), pubs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>") {
		t.Error("script tag survived sanitization")
	}
	if strings.Contains(out, "javascript:") {
		t.Error("javascript URL survived sanitization")
	}
}

func TestRenderEscapesBiography(t *testing.T) {
	bundle := previewBundle()
	bundle.Step2.Biography = "<b>bold claims</b>"

	var buf bytes.Buffer
	if err := Render(&buf, bundle, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<b>bold claims</b>") {
		t.Error("biography embedded without escaping")
	}
}

func TestRenderEmptySections(t *testing.T) {
	bundle := types.SiteBundle{
		User: types.User{Username: "jdoe"},
		Site: types.Site{ID: 1, SiteName: "Bare"},
	}

	var buf bytes.Buffer
	if err := Render(&buf, bundle, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "No publications listed.") {
		t.Error("missing empty-publications message")
	}
	if !strings.Contains(out, "Gallery (0 images)") {
		t.Error("missing gallery count")
	}
	if strings.Contains(out, "Personal Information") {
		t.Error("step 1 section rendered without step data")
	}
}
