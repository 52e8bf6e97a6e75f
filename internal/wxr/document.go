// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wxr assembles WordPress eXtended RSS (WXR) export documents from
// site wizard records. The document is built fresh per export, serialized to
// UTF-8 XML, and discarded; nothing here persists state between builds.
package wxr

import (
	"encoding/xml"
	"fmt"
)

// WordPress export namespace URIs, declared on the root <rss> element.
// Element names below carry their prefixes literally so the marshalled
// output uses the canonical wp:/dc:/content: spelling WordPress expects.
const (
	excerptNS = "http://wordpress.org/export/1.2/excerpt/"
	contentNS = "http://purl.org/rss/1.0/modules/content/"
	wfwNS     = "http://wellformedweb.org/CommentAPI/"
	dcNS      = "http://purl.org/dc/elements/1.1/"
	wpNS      = "http://wordpress.org/export/1.2/"
)

// wxrVersion is the export format version; WordPress refuses imports
// without it.
const wxrVersion = "1.2"

// Document is the in-memory WXR tree. It holds exactly one channel.
type Document struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	ExcerptNS string   `xml:"xmlns:excerpt,attr"`
	ContentNS string   `xml:"xmlns:content,attr"`
	WfwNS     string   `xml:"xmlns:wfw,attr"`
	DcNS      string   `xml:"xmlns:dc,attr"`
	WpNS      string   `xml:"xmlns:wp,attr"`

	Channel Channel `xml:"channel"`
}

// Channel holds the export metadata, the author block, and all items in
// emission order: attachments first, then the pages that reference them.
type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language"`
	PubDate       string `xml:"pubDate"`
	LastBuildDate string `xml:"lastBuildDate"`
	Generator     string `xml:"generator"`
	WxrVersion    string `xml:"wp:wxr_version"`
	Base          string `xml:"wp:base"`
	BlogName      string `xml:"wp:blog_name"`
	Author        Author `xml:"wp:author"`
	Items         []Item `xml:"item"`
}

// Author is the wp:author block WordPress uses to map imported content to a
// local user.
type Author struct {
	Login     string `xml:"wp:author_login"`
	Email     string `xml:"wp:author_email"`
	FirstName string `xml:"wp:author_first_name"`
	LastName  string `xml:"wp:author_last_name"`
}

// Item is one channel item, either a page or an attachment. Field order
// matches the emitted element order. Attachment-only fields (Description,
// AttachmentURL) and page-only fields (MenuOrder, IsSticky, Content) are
// pointers or omitempty so each kind serializes without the other's
// elements.
type Item struct {
	Title         string          `xml:"title"`
	Description   *string         `xml:"description"`
	PostID        int             `xml:"wp:post_id"`
	Status        string          `xml:"wp:status"`
	PostType      string          `xml:"wp:post_type"`
	PostParent    int             `xml:"wp:post_parent"`
	MenuOrder     *int            `xml:"wp:menu_order"`
	IsSticky      *int            `xml:"wp:is_sticky"`
	AttachmentURL string          `xml:"wp:attachment_url,omitempty"`
	Content       *EncodedContent `xml:"content:encoded"`
	Creator       string          `xml:"dc:creator"`
	PubDate       string          `xml:"pubDate"`
	PostDate      string          `xml:"wp:post_date"`
	PostDateGMT   string          `xml:"wp:post_date_gmt"`
}

// EncodedContent wraps a page body so it marshals as a CDATA section,
// keeping the embedded block markup out of the XML parse.
type EncodedContent struct {
	Text string `xml:",cdata"`
}

// Serialize renders the document as an indented UTF-8 XML byte slice,
// starting with the XML declaration.
func (d *Document) Serialize() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling WXR document: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
