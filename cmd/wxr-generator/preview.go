// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wxr-generator/internal/bibtex"
	"github.com/pdiddy/wxr-generator/internal/preview"
	"github.com/pdiddy/wxr-generator/internal/publication"
	"github.com/pdiddy/wxr-generator/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview [site-id]",
	Short: "Render an HTML preview of a site",
	Long: `Preview renders a standalone HTML summary of the site as it would be
exported: personal info, biography, the combined publication list, and the
gallery contents. Output goes to stdout unless -o is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
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

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating preview file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return preview.Render(out, bundle, combinedPublications(bundle))
}

// combinedPublications builds the publication list the export would emit:
// parsed BibTeX entries first, then manual entries.
func combinedPublications(bundle types.SiteBundle) []types.Publication {
	if bundle.Step3 == nil {
		return nil
	}
	return publication.Combine(bibtex.Parse(bundle.Step3.BibtexContent), bundle.Step3.Manual)
}

func init() {
	previewCmd.Flags().StringP("output", "o", "", "write preview to a file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}
