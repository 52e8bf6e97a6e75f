// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wxr

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/pdiddy/wxr-generator/internal/publication"
	"github.com/pdiddy/wxr-generator/pkg/types"
)

// The page bodies are block-editor ("Gutenberg") markup: HTML annotated with
// wp:* comment delimiters. The whole body ends up inside a CDATA section, so
// freeform user text is HTML-escaped here rather than XML-escaped by the
// serializer.

// homeContent builds the Home page body from the personal-info and biography
// steps. When a profile picture attachment was emitted, its post id is
// referenced by an image block at the top.
func homeContent(step1 *types.Step1PersonalInfo, step2 *types.Step2Biography, profileID int, baseURL string) string {
	var parts []string

	if profileID > 0 {
		parts = append(parts,
			fmt.Sprintf(`<!-- wp:image {"id":%d,"sizeSlug":"large","linkDestination":"none"} -->`, profileID),
			fmt.Sprintf(`<figure class="wp-block-image size-large"><img src="%s/uploads/profile.jpg" alt="Profile Picture" class="wp-image-%d" /></figure>`, baseURL, profileID),
			`<!-- /wp:image -->`,
			``)
	}

	if step1.TitleRole != "" {
		parts = append(parts,
			`<!-- wp:heading {"level":2} -->`,
			fmt.Sprintf(`<h2 class="wp-block-heading">%s</h2>`, html.EscapeString(step1.TitleRole)),
			`<!-- /wp:heading -->`,
			``)
	}

	var contact []string
	if step1.Department != "" {
		contact = append(contact, "<strong>Department:</strong> "+html.EscapeString(step1.Department))
	}
	if step1.FieldOfStudy != "" {
		contact = append(contact, "<strong>Field of Study:</strong> "+html.EscapeString(step1.FieldOfStudy))
	}
	if step1.Email != "" {
		email := html.EscapeString(step1.Email)
		contact = append(contact, fmt.Sprintf(`<strong>Email:</strong> <a href="mailto:%s">%s</a>`, email, email))
	}
	if step1.OfficeAddress != "" {
		contact = append(contact, "<strong>Office:</strong> "+html.EscapeString(step1.OfficeAddress))
	}
	if step1.PhoneNumber != "" {
		contact = append(contact, "<strong>Phone:</strong> "+html.EscapeString(step1.PhoneNumber))
	}
	if len(contact) > 0 {
		parts = append(parts,
			`<!-- wp:paragraph -->`,
			fmt.Sprintf(`<p class="wp-block-paragraph">%s</p>`, strings.Join(contact, "<br />")),
			`<!-- /wp:paragraph -->`,
			``)
	}

	if step2.Biography != "" {
		parts = append(parts,
			`<!-- wp:heading {"level":3} -->`,
			`<h3 class="wp-block-heading">About</h3>`,
			`<!-- /wp:heading -->`,
			``,
			`<!-- wp:paragraph -->`,
			fmt.Sprintf(`<p class="wp-block-paragraph">%s</p>`, html.EscapeString(step2.Biography)),
			`<!-- /wp:paragraph -->`)
	}

	return strings.Join(parts, "\n")
}

// publicationsContent builds the Publications page body: a heading followed
// by one paragraph block per citation.
func publicationsContent(pubs []types.Publication) string {
	parts := []string{
		`<!-- wp:heading {"level":2} -->`,
		`<h2 class="wp-block-heading">Publications</h2>`,
		`<!-- /wp:heading -->`,
		``,
	}

	if len(pubs) == 0 {
		parts = append(parts,
			`<!-- wp:paragraph -->`,
			`<p class="wp-block-paragraph">No publications listed.</p>`,
			`<!-- /wp:paragraph -->`)
		return strings.Join(parts, "\n")
	}

	for _, p := range pubs {
		parts = append(parts,
			`<!-- wp:paragraph -->`,
			fmt.Sprintf(`<p class="wp-block-paragraph">%s</p>`, publication.FormatHTML(p)),
			`<!-- /wp:paragraph -->`)
	}

	return strings.Join(parts, "\n")
}

// galleryContent builds the Gallery page body: one gallery block referencing
// every collected attachment id, with a matching grid of image tags.
func galleryContent(ids []int, baseURL string) string {
	parts := []string{
		`<!-- wp:heading {"level":2} -->`,
		`<h2 class="wp-block-heading">Gallery</h2>`,
		`<!-- /wp:heading -->`,
		``,
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = strconv.Itoa(id)
	}

	parts = append(parts,
		fmt.Sprintf(`<!-- wp:gallery {"ids":[%s],"columns":3,"size":"large","linkTo":"none"} -->`, strings.Join(idStrings, ",")),
		`<figure class="wp-block-gallery has-nested-images columns-3 is-cropped">`,
		`<ul class="blocks-gallery-grid">`)

	for _, id := range ids {
		parts = append(parts,
			fmt.Sprintf(`<li class="blocks-gallery-item"><figure><img src="%s/uploads/image%d.jpg" alt="" class="wp-image-%d" /></figure></li>`, baseURL, id, id))
	}

	parts = append(parts,
		`</ul>`,
		`</figure>`,
		`<!-- /wp:gallery -->`)

	return strings.Join(parts, "\n")
}
