// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wxr

import (
	"fmt"
	"time"

	"github.com/pdiddy/wxr-generator/internal/bibtex"
	"github.com/pdiddy/wxr-generator/internal/publication"
	"github.com/pdiddy/wxr-generator/pkg/types"
)

// DefaultBaseURL is the placeholder site URL WordPress rewrites on import.
const DefaultBaseURL = "https://example.com"

// generator identifies the producing tool in the channel metadata.
const generator = "https://github.com/pdiddy/wxr-generator"

// Timestamp layouts used in the document. Channel and item dates use the
// RFC-822 style RSS format; wp:post_date uses WordPress's own format.
const (
	rssDateLayout  = "Mon, 02 Jan 2006 15:04:05 +0000"
	postDateLayout = "2006-01-02 15:04:05"
)

// FileChecker reports whether an uploaded file exists for a site. The
// builder never constructs storage paths itself; missing files are skipped
// without error.
type FileChecker interface {
	Exists(siteID int64, filename string) bool
}

// Options tunes a build. The zero value uses the default base URL and the
// current time; fixing Now makes output reproducible.
type Options struct {
	// BaseURL overrides the placeholder site URL.
	BaseURL string

	// Now overrides the document timestamp.
	Now time.Time
}

// Build assembles the export document for one site in a single ordered pass:
// channel metadata, gallery image attachments, the profile picture
// attachment, then the Home, Publications, and Gallery pages. Attachments
// are emitted before the pages that reference their post ids; the post-id
// counter starts at 1 and increments once per emitted item.
//
// Steps 1 and 2 are required; steps 3 and 4 are optional. The returned
// document has not been written anywhere: serialization failures or partial
// writes are the caller's to handle.
func Build(bundle types.SiteBundle, files FileChecker, opts Options) (*Document, error) {
	if !bundle.Complete() {
		return nil, fmt.Errorf("site %d is incomplete: steps 1 and 2 are required", bundle.Site.ID)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	user := bundle.User
	doc := &Document{
		Version:   "2.0",
		ExcerptNS: excerptNS,
		ContentNS: contentNS,
		WfwNS:     wfwNS,
		DcNS:      dcNS,
		WpNS:      wpNS,
		Channel: Channel{
			Title:         bundle.Site.SiteName,
			Link:          baseURL,
			Description:   fmt.Sprintf("WordPress site for %s", user.FullName()),
			Language:      "en-us",
			PubDate:       now.Format(rssDateLayout),
			LastBuildDate: now.Format(rssDateLayout),
			Generator:     generator,
			WxrVersion:    wxrVersion,
			Base:          baseURL + "/index.php/",
			BlogName:      bundle.Site.SiteName,
			Author: Author{
				Login:     user.Username,
				Email:     authorEmail(user),
				FirstName: user.FirstName,
				LastName:  user.LastName,
			},
		},
	}

	postID := 1

	// Gallery images become attachments in stored order; files missing
	// from disk are silently excluded.
	var galleryIDs []int
	if bundle.Step4 != nil {
		for _, filename := range bundle.Step4.GalleryImages {
			if !files.Exists(bundle.Site.ID, filename) {
				continue
			}
			postID++
			doc.Channel.Items = append(doc.Channel.Items,
				newAttachmentItem(user, filename, postID, baseURL, now))
			galleryIDs = append(galleryIDs, postID)
		}
	}

	profileID := 0
	if bundle.Step4 != nil && bundle.Step4.ProfilePicture != "" {
		if files.Exists(bundle.Site.ID, bundle.Step4.ProfilePicture) {
			postID++
			doc.Channel.Items = append(doc.Channel.Items,
				newAttachmentItem(user, bundle.Step4.ProfilePicture, postID, baseURL, now))
			profileID = postID
		}
	}

	postID++
	doc.Channel.Items = append(doc.Channel.Items,
		newPageItem(user, "Home", homeContent(bundle.Step1, bundle.Step2, profileID, baseURL), postID, now))

	var pubs []types.Publication
	if bundle.Step3 != nil {
		pubs = publication.Combine(bibtex.Parse(bundle.Step3.BibtexContent), bundle.Step3.Manual)
	}
	if len(pubs) > 0 {
		postID++
		doc.Channel.Items = append(doc.Channel.Items,
			newPageItem(user, "Publications", publicationsContent(pubs), postID, now))
	}

	if len(galleryIDs) > 0 {
		postID++
		doc.Channel.Items = append(doc.Channel.Items,
			newPageItem(user, "Gallery", galleryContent(galleryIDs, baseURL), postID, now))
	}

	return doc, nil
}

// authorEmail falls back to the username when no address is on record, since
// wp:author_email must not be empty for the importer to create the user.
func authorEmail(u types.User) string {
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}

func newPageItem(user types.User, title, content string, postID int, now time.Time) Item {
	zero := 0
	return Item{
		Title:       title,
		PostID:      postID,
		Status:      "publish",
		PostType:    "page",
		PostParent:  0,
		MenuOrder:   &zero,
		IsSticky:    &zero,
		Content:     &EncodedContent{Text: content},
		Creator:     user.Username,
		PubDate:     now.Format(rssDateLayout),
		PostDate:    now.Format(postDateLayout),
		PostDateGMT: now.Format(postDateLayout),
	}
}

func newAttachmentItem(user types.User, filename string, postID int, baseURL string, now time.Time) Item {
	empty := ""
	return Item{
		Title:         filename,
		Description:   &empty,
		PostID:        postID,
		Status:        "inherit",
		PostType:      "attachment",
		PostParent:    0,
		AttachmentURL: fmt.Sprintf("%s/uploads/%s", baseURL, filename),
		Creator:       user.Username,
		PubDate:       now.Format(rssDateLayout),
		PostDate:      now.Format(postDateLayout),
		PostDateGMT:   now.Format(postDateLayout),
	}
}
