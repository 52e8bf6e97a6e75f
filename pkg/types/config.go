// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StorageConfig holds filesystem settings shared by the store and uploads.
type StorageConfig struct {
	// UploadDir is the root directory for uploaded images; each site gets
	// a subdirectory named after its numeric ID.
	UploadDir string `json:"upload_dir" yaml:"upload_dir"`

	// Database is the path to the SQLite database file.
	Database string `json:"database" yaml:"database"`
}

// ExportConfig holds settings for WXR generation.
type ExportConfig struct {
	// BaseURL is the placeholder site URL written into channel links,
	// attachment URLs, and image sources (default "https://example.com").
	// WordPress rewrites these on import.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// OutputDir is the directory export files are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Config groups all tool configuration.
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Export  ExportConfig  `json:"export" yaml:"export"`
}
