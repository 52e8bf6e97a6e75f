// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders an on-screen HTML summary of a site before export:
// owner and personal info, the combined publication list, and gallery counts.
// Citation fragments derive from untrusted BibTeX input, so they pass through
// an HTML sanitizer before being embedded unescaped.
package preview

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/wxr-generator/internal/publication"
	"github.com/pdiddy/wxr-generator/pkg/types"
)

var (
	citationPolicyOnce sync.Once
	citationPolicy     *bluemonday.Policy
)

// citationSanitizer permits only the markup the citation formatter emits:
// emphasis and plain links.
func citationSanitizer() *bluemonday.Policy {
	citationPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https")
		policy.RequireParseableURLs(true)
		citationPolicy = policy
	})
	return citationPolicy
}

// pageTemplate is the standalone preview document. Citations arrive
// pre-sanitized as template.HTML; everything else is escaped by the
// template engine.
var pageTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Preview: {{.Site.SiteName}}</title>
</head>
<body>
<h1>{{.Site.SiteName}}</h1>
<p>Owner: {{.Owner}}</p>
{{if .Step1}}
<h2>Personal Information</h2>
<ul>
{{if .Step1.TitleRole}}<li>Title/Role: {{.Step1.TitleRole}}</li>{{end}}
{{if .Step1.Department}}<li>Department: {{.Step1.Department}}</li>{{end}}
{{if .Step1.FieldOfStudy}}<li>Field of Study: {{.Step1.FieldOfStudy}}</li>{{end}}
{{if .Step1.Email}}<li>Email: {{.Step1.Email}}</li>{{end}}
{{if .Step1.OfficeAddress}}<li>Office: {{.Step1.OfficeAddress}}</li>{{end}}
{{if .Step1.PhoneNumber}}<li>Phone: {{.Step1.PhoneNumber}}</li>{{end}}
</ul>
{{end}}
{{if .Biography}}
<h2>Biography</h2>
<p>{{.Biography}}</p>
{{end}}
<h2>Publications ({{len .Citations}})</h2>
{{if .Citations}}
<ol>
{{range .Citations}}<li>{{.}}</li>
{{end}}</ol>
{{else}}
<p>No publications listed.</p>
{{end}}
<h2>Gallery ({{len .GalleryImages}} images)</h2>
{{if .ProfilePicture}}<p>Profile picture: {{.ProfilePicture}}</p>{{end}}
{{if .GalleryImages}}
<ul>
{{range .GalleryImages}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
</body>
</html>
`))

// pageData is the template payload.
type pageData struct {
	Site           types.Site
	Owner          string
	Step1          *types.Step1PersonalInfo
	Biography      string
	Citations      []template.HTML
	ProfilePicture string
	GalleryImages  []string
}

// Render writes the preview document for a site. The publication list is the
// same combined list the exporter would put on the Publications page.
func Render(w io.Writer, bundle types.SiteBundle, pubs []types.Publication) error {
	sanitizer := citationSanitizer()
	citations := make([]template.HTML, len(pubs))
	for i, p := range pubs {
		citations[i] = template.HTML(sanitizer.Sanitize(publication.FormatHTML(p)))
	}

	data := pageData{
		Site:      bundle.Site,
		Owner:     bundle.User.FullName(),
		Step1:     bundle.Step1,
		Citations: citations,
	}
	if bundle.Step2 != nil {
		data.Biography = bundle.Step2.Biography
	}
	if bundle.Step4 != nil {
		data.ProfilePicture = bundle.Step4.ProfilePicture
		data.GalleryImages = bundle.Step4.GalleryImages
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	return nil
}
