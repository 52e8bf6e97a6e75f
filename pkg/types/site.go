// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// User identifies a site owner. Identity is supplied by the caller, typically
// from web-server environment variables (REMOTE_USER and friends).
type User struct {
	// ID is the database row identifier.
	ID int64 `json:"id" yaml:"-"`

	// Username is the login name and the WXR author login.
	Username string `json:"username" yaml:"username"`

	// Email is optional; the exporter falls back to Username where an
	// address is required.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// FirstName is the user's given name.
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`

	// LastName is the user's family name.
	LastName string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
}

// FullName returns "First Last" when either part is set, or the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Site is one WordPress site configuration owned by a user. The wizard steps
// hang off the site by SiteID.
type Site struct {
	// ID is the database row identifier, used in upload paths and the
	// export filename.
	ID int64 `json:"id" yaml:"-"`

	// UserID references the owning User.
	UserID int64 `json:"user_id" yaml:"-"`

	// SiteName becomes the channel title and wp:blog_name.
	SiteName string `json:"site_name" yaml:"site_name"`

	// CreatedAt and UpdatedAt are maintained by the store.
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// Step1PersonalInfo holds the wizard's personal-information step. All fields
// are optional free text; empty fields are simply left out of the generated
// home page.
type Step1PersonalInfo struct {
	SiteID int64 `json:"site_id" yaml:"-"`

	FirstName     string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	TitleRole     string `json:"title_role,omitempty" yaml:"title_role,omitempty"`
	Department    string `json:"department,omitempty" yaml:"department,omitempty"`
	FieldOfStudy  string `json:"field_of_study,omitempty" yaml:"field_of_study,omitempty"`
	Email         string `json:"email,omitempty" yaml:"email,omitempty"`
	OfficeAddress string `json:"office_address,omitempty" yaml:"office_address,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
}

// Step2Biography holds the wizard's biography step.
type Step2Biography struct {
	SiteID int64 `json:"site_id" yaml:"-"`

	// Biography is plain text; it is HTML-escaped when embedded in the
	// generated page body.
	Biography string `json:"biography,omitempty" yaml:"biography,omitempty"`
}

// Step3Publications holds the wizard's publications step: a raw BibTeX blob
// plus any manually entered records.
type Step3Publications struct {
	SiteID int64 `json:"site_id" yaml:"-"`

	// BibtexContent is the raw BibTeX text as entered; it is parsed at
	// export time, never at save time.
	BibtexContent string `json:"bibtex_content,omitempty" yaml:"bibtex_content,omitempty"`

	// Manual lists manually entered publications in creation order.
	Manual []ManualPublication `json:"manual_publications,omitempty" yaml:"manual_publications,omitempty"`
}

// ManualPublication is a user-entered publication. It carries the same
// semantic fields as a parsed BibTeX entry minus key/type/volume/pages.
type ManualPublication struct {
	ID int64 `json:"id,omitempty" yaml:"-"`

	Author             string `json:"author" yaml:"author"`
	Title              string `json:"title" yaml:"title"`
	Year               string `json:"year,omitempty" yaml:"year,omitempty"`
	JournalOrBooktitle string `json:"journal_or_booktitle,omitempty" yaml:"journal_or_booktitle,omitempty"`
	Publisher          string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	DOI                string `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL                string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Step4Gallery holds the wizard's image step: an optional profile picture and
// an ordered list of gallery image filenames. Filenames are store-generated
// (uuid plus extension) and resolved against the per-site upload directory.
type Step4Gallery struct {
	SiteID int64 `json:"site_id" yaml:"-"`

	ProfilePicture string   `json:"profile_picture,omitempty" yaml:"profile_picture,omitempty"`
	GalleryImages  []string `json:"gallery_images,omitempty" yaml:"gallery_images,omitempty"`
}

// SiteBundle is everything the exporter needs for one site, loaded in a
// single call. Step pointers are nil when the wizard step was never saved.
type SiteBundle struct {
	User  User
	Site  Site
	Step1 *Step1PersonalInfo
	Step2 *Step2Biography
	Step3 *Step3Publications
	Step4 *Step4Gallery
}

// Complete reports whether the required wizard steps (1 and 2) are present.
func (b SiteBundle) Complete() bool {
	return b.Step1 != nil && b.Step2 != nil
}
