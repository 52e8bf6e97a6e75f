// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wxr

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

// fakeFiles is a FileChecker backed by a set of filenames.
type fakeFiles map[string]bool

func (f fakeFiles) Exists(siteID int64, filename string) bool { return f[filename] }

// testBundle returns a minimal complete bundle (steps 1 and 2 present).
func testBundle() types.SiteBundle {
	return types.SiteBundle{
		User: types.User{
			ID:        1,
			Username:  "jdoe",
			Email:     "jdoe@example.edu",
			FirstName: "Jane",
			LastName:  "Doe",
		},
		Site: types.Site{ID: 7, UserID: 1, SiteName: "Jane Doe's Lab"},
		Step1: &types.Step1PersonalInfo{
			SiteID:     7,
			TitleRole:  "Professor",
			Department: "Biology",
			Email:      "jdoe@example.edu",
		},
		Step2: &types.Step2Biography{SiteID: 7, Biography: "Studies things."},
	}
}

var fixedNow = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

func TestBuildMinimalSite(t *testing.T) {
	doc, err := Build(testBundle(), fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Channel.Items) != 1 {
		t.Fatalf("got %d items, want 1 (Home only)", len(doc.Channel.Items))
	}
	home := doc.Channel.Items[0]
	if home.Title != "Home" {
		t.Errorf("page title = %q, want Home", home.Title)
	}
	if home.PostID != 2 {
		t.Errorf("Home post id = %d, want 2", home.PostID)
	}
	if home.Status != "publish" || home.PostType != "page" {
		t.Errorf("unexpected page item %+v", home)
	}
	if home.Content == nil || !strings.Contains(home.Content.Text, "Professor") {
		t.Error("Home body missing personal info")
	}
}

func TestBuildChannelMetadata(t *testing.T) {
	doc, err := Build(testBundle(), fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}

	ch := doc.Channel
	if ch.Title != "Jane Doe's Lab" || ch.BlogName != "Jane Doe's Lab" {
		t.Errorf("channel title/blog_name = %q/%q", ch.Title, ch.BlogName)
	}
	if ch.Description != "WordPress site for Jane Doe" {
		t.Errorf("description = %q", ch.Description)
	}
	if ch.WxrVersion != "1.2" {
		t.Errorf("wxr_version = %q, want 1.2", ch.WxrVersion)
	}
	if ch.Language != "en-us" {
		t.Errorf("language = %q", ch.Language)
	}
	if ch.PubDate != "Sat, 14 Mar 2026 09:26:53 +0000" {
		t.Errorf("pubDate = %q", ch.PubDate)
	}
	if ch.Author.Login != "jdoe" || ch.Author.Email != "jdoe@example.edu" {
		t.Errorf("author block = %+v", ch.Author)
	}
}

func TestBuildAuthorEmailFallsBackToUsername(t *testing.T) {
	bundle := testBundle()
	bundle.User.Email = ""

	doc, err := Build(bundle, fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Channel.Author.Email != "jdoe" {
		t.Errorf("author email = %q, want username fallback", doc.Channel.Author.Email)
	}
}

func TestBuildIncompleteSite(t *testing.T) {
	bundle := testBundle()
	bundle.Step2 = nil

	if _, err := Build(bundle, fakeFiles{}, Options{}); err == nil {
		t.Fatal("expected error for incomplete site")
	}
}

func TestBuildPostIDSequence(t *testing.T) {
	bundle := testBundle()
	bundle.Step3 = &types.Step3Publications{
		SiteID:        7,
		BibtexContent: `@article{doe2023, title={A Study}, author={Doe, J.}, year={2023}}`,
	}
	bundle.Step4 = &types.Step4Gallery{
		SiteID:         7,
		ProfilePicture: "profile.jpg",
		GalleryImages:  []string{"a.jpg", "b.jpg"},
	}
	files := fakeFiles{"profile.jpg": true, "a.jpg": true, "b.jpg": true}

	doc, err := Build(bundle, files, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}

	// a.jpg=2, b.jpg=3, profile=4, Home=5, Publications=6, Gallery=7.
	wantIDs := []int{2, 3, 4, 5, 6, 7}
	if len(doc.Channel.Items) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(doc.Channel.Items), len(wantIDs))
	}
	for i, item := range doc.Channel.Items {
		if item.PostID != wantIDs[i] {
			t.Errorf("item %d post id = %d, want %d", i, item.PostID, wantIDs[i])
		}
	}

	// Attachments precede the pages that reference them.
	for i, wantType := range []string{"attachment", "attachment", "attachment", "page", "page", "page"} {
		if doc.Channel.Items[i].PostType != wantType {
			t.Errorf("item %d type = %q, want %q", i, doc.Channel.Items[i].PostType, wantType)
		}
	}

	home := doc.Channel.Items[3]
	if !strings.Contains(home.Content.Text, `"id":4`) || !strings.Contains(home.Content.Text, "wp-image-4") {
		t.Error("Home body does not reference the profile picture attachment id")
	}
	gallery := doc.Channel.Items[5]
	if !strings.Contains(gallery.Content.Text, `"ids":[2,3]`) {
		t.Errorf("Gallery body does not reference attachment ids: %s", gallery.Content.Text)
	}
}

func TestBuildSkipsMissingGalleryImages(t *testing.T) {
	bundle := testBundle()
	bundle.Step4 = &types.Step4Gallery{SiteID: 7, GalleryImages: []string{"gone.jpg"}}

	doc, err := Build(bundle, fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}

	// No attachments and no Gallery page: only Home remains.
	if len(doc.Channel.Items) != 1 || doc.Channel.Items[0].Title != "Home" {
		t.Fatalf("got items %+v, want only Home", doc.Channel.Items)
	}
}

func TestBuildManualPublicationsOnly(t *testing.T) {
	bundle := testBundle()
	bundle.Step3 = &types.Step3Publications{
		SiteID: 7,
		Manual: []types.ManualPublication{{Author: "Roe, R.", Title: "Manual Entry"}},
	}

	doc, err := Build(bundle, fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("got %d items, want Home + Publications", len(doc.Channel.Items))
	}
	pubPage := doc.Channel.Items[1]
	if pubPage.Title != "Publications" || pubPage.PostID != 3 {
		t.Errorf("publications page = %+v", pubPage)
	}
	if !strings.Contains(pubPage.Content.Text, "Manual Entry") {
		t.Error("publications body missing manual entry")
	}
}

func TestBuildMalformedBibtexDegrades(t *testing.T) {
	bundle := testBundle()
	bundle.Step3 = &types.Step3Publications{SiteID: 7, BibtexContent: "@@@not bibtex"}

	doc, err := Build(bundle, fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	// No parseable publications and no manual ones: no Publications page.
	if len(doc.Channel.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(doc.Channel.Items))
	}
}

func TestSerialize(t *testing.T) {
	bundle := testBundle()
	bundle.Site.SiteName = "Research & Teaching <Lab>"

	doc, err := Build(bundle, fakeFiles{}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	out, err := doc.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)

	if !strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	for _, want := range []string{
		`<rss version="2.0"`,
		`xmlns:wp="http://wordpress.org/export/1.2/"`,
		`xmlns:content="http://purl.org/rss/1.0/modules/content/"`,
		`xmlns:dc="http://purl.org/dc/elements/1.1/"`,
		`<wp:wxr_version>1.2</wp:wxr_version>`,
		`<wp:author_login>jdoe</wp:author_login>`,
		`Research &amp; Teaching &lt;Lab&gt;`,
		`<content:encoded><![CDATA[`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("serialized document missing %q", want)
		}
	}

	// The output must round-trip as well-formed XML.
	var parsed struct {
		XMLName xml.Name `xml:"rss"`
	}
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
}

func TestSerializeIdempotent(t *testing.T) {
	files := fakeFiles{"a.jpg": true}
	bundle := testBundle()
	bundle.Step4 = &types.Step4Gallery{SiteID: 7, GalleryImages: []string{"a.jpg"}}

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		doc, err := Build(bundle, files, Options{Now: fixedNow})
		if err != nil {
			t.Fatal(err)
		}
		out, err := doc.Serialize()
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, out)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("identical inputs and clock produced different documents")
	}
}

func TestBuildAttachmentItemShape(t *testing.T) {
	bundle := testBundle()
	bundle.Step4 = &types.Step4Gallery{SiteID: 7, GalleryImages: []string{"pic.png"}}

	doc, err := Build(bundle, fakeFiles{"pic.png": true}, Options{Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	att := doc.Channel.Items[0]
	if att.Status != "inherit" || att.PostType != "attachment" {
		t.Errorf("attachment item = %+v", att)
	}
	if att.AttachmentURL != "https://example.com/uploads/pic.png" {
		t.Errorf("attachment url = %q", att.AttachmentURL)
	}
	if att.Description == nil || *att.Description != "" {
		t.Error("attachment must carry an empty description element")
	}
	if att.Content != nil {
		t.Error("attachment must not carry a content body")
	}
}
