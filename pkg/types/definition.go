// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SiteDefinition is the YAML shape accepted by `site import`: a whole wizard
// worth of data in one file. File paths inside the definition are resolved
// relative to the definition file itself.
type SiteDefinition struct {
	SiteName string `yaml:"site_name"`

	// User identifies the owner; empty fields fall back to the web-server
	// environment variables (REMOTE_USER and friends).
	User User `yaml:"user"`

	PersonalInfo *Step1PersonalInfo      `yaml:"personal_info,omitempty"`
	Biography    string                  `yaml:"biography,omitempty"`
	Publications *PublicationsDefinition `yaml:"publications,omitempty"`
	Gallery      *GalleryDefinition      `yaml:"gallery,omitempty"`
}

// PublicationsDefinition carries the publications step of a site definition.
type PublicationsDefinition struct {
	// Bibtex is an inline BibTeX blob.
	Bibtex string `yaml:"bibtex,omitempty"`

	// BibtexFile is a path to a .bib file, used when Bibtex is empty.
	BibtexFile string `yaml:"bibtex_file,omitempty"`

	// Manual lists manually entered publications.
	Manual []ManualPublication `yaml:"manual,omitempty"`
}

// GalleryDefinition carries the image step of a site definition. Paths point
// at source images to be copied into the upload store.
type GalleryDefinition struct {
	ProfilePicture string   `yaml:"profile_picture,omitempty"`
	Images         []string `yaml:"images,omitempty"`
}
