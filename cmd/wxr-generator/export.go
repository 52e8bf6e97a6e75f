// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wxr-generator/internal/wxr"
)

// exportTimestampLayout names export files down to the second, so repeated
// exports of the same site never collide.
const exportTimestampLayout = "20060102_150405"

var exportCmd = &cobra.Command{
	Use:   "export [site-id]",
	Short: "Generate the WordPress WXR import file for a site",
	Long: `Export loads the site's wizard data and writes a WordPress eXtended RSS
(WXR) file into the configured output directory, named
wordpress_export_<site-id>_<timestamp>.wxr. Importing that file into a fresh
WordPress install recreates the site's pages and media attachments.

Steps 1 (personal info) and 2 (biography) must be saved before export;
publications and gallery pages are included only when their steps have
content.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	siteID, err := parseSiteID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	bundle, err := store.LoadBundle(context.Background(), siteID)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	doc, err := wxr.Build(bundle, uploadStore(), wxr.Options{BaseURL: cfg.Export.BaseURL})
	if err != nil {
		return err
	}
	data, err := doc.Serialize()
	if err != nil {
		return fmt.Errorf("serializing export: %w", err)
	}

	name := fmt.Sprintf("wordpress_export_%d_%s.wxr", siteID, time.Now().Format(exportTimestampLayout))
	path := filepath.Join(cfg.Export.OutputDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	var pages, attachments int
	for _, item := range doc.Channel.Items {
		switch item.PostType {
		case "page":
			pages++
		case "attachment":
			attachments++
		}
	}
	fmt.Printf("Exported site %d to %s (%d pages, %d attachments)\n", siteID, path, pages, attachments)
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a failed export never leaves a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wxr-export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
