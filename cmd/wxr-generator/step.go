// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Fill in a site's wizard steps",
	Long: `Step saves wizard data for a site, one step at a time: personal info,
biography, publications (BibTeX and manual entries), and gallery images.
Saving a step again replaces its previous contents; manual publications and
gallery images accumulate.`,
}

var stepPersonalCmd = &cobra.Command{
	Use:   "personal [site-id]",
	Short: "Save step 1: personal information",
	Args:  cobra.ExactArgs(1),
	RunE:  runStepPersonal,
}

func runStepPersonal(cmd *cobra.Command, args []string) error {
	siteID, err := parseSiteID(args[0])
	if err != nil {
		return err
	}

	step := types.Step1PersonalInfo{SiteID: siteID}
	step.FirstName, _ = cmd.Flags().GetString("first-name")
	step.LastName, _ = cmd.Flags().GetString("last-name")
	step.TitleRole, _ = cmd.Flags().GetString("title-role")
	step.Department, _ = cmd.Flags().GetString("department")
	step.FieldOfStudy, _ = cmd.Flags().GetString("field-of-study")
	step.Email, _ = cmd.Flags().GetString("email")
	step.OfficeAddress, _ = cmd.Flags().GetString("office")
	step.PhoneNumber, _ = cmd.Flags().GetString("phone")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveStep1(context.Background(), step); err != nil {
		return err
	}
	fmt.Printf("Saved personal info for site %d\n", siteID)
	return nil
}

var stepBiographyCmd = &cobra.Command{
	Use:   "biography [site-id]",
	Short: "Save step 2: biography",
	Long: `Biography saves the site's biography text, given inline with --text, from
a file with --file, or from stdin with --file -.`,
	Args: cobra.ExactArgs(1),
	RunE: runStepBiography,
}

func runStepBiography(cmd *cobra.Command, args []string) error {
	siteID, err := parseSiteID(args[0])
	if err != nil {
		return err
	}

	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")
	if text == "" && file != "" {
		data, err := readInput(file)
		if err != nil {
			return fmt.Errorf("reading biography: %w", err)
		}
		text = string(data)
	}
	if text == "" {
		return fmt.Errorf("--text or --file is required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveStep2(context.Background(), types.Step2Biography{SiteID: siteID, Biography: text}); err != nil {
		return err
	}
	fmt.Printf("Saved biography for site %d\n", siteID)
	return nil
}

var stepPublicationsCmd = &cobra.Command{
	Use:   "publications [site-id]",
	Short: "Save step 3: BibTeX publications",
	Long: `Publications saves the site's raw BibTeX blob from a file (--file, with -
for stdin). The blob is parsed at export time; malformed entries degrade to
whatever can still be extracted. Use "step add-publication" for manual
entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runStepPublications,
}

func runStepPublications(cmd *cobra.Command, args []string) error {
	siteID, err := parseSiteID(args[0])
	if err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return fmt.Errorf("--file is required")
	}
	data, err := readInput(file)
	if err != nil {
		return fmt.Errorf("reading bibtex: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveStep3(context.Background(), types.Step3Publications{
		SiteID:        siteID,
		BibtexContent: string(data),
	}); err != nil {
		return err
	}
	fmt.Printf("Saved BibTeX publications for site %d\n", siteID)
	return nil
}

var stepAddPublicationCmd = &cobra.Command{
	Use:   "add-publication [site-id]",
	Short: "Add a manually entered publication",
	Args:  cobra.ExactArgs(1),
	RunE:  runStepAddPublication,
}

func runStepAddPublication(cmd *cobra.Command, args []string) error {
	siteID, err := parseSiteID(args[0])
	if err != nil {
		return err
	}

	var m types.ManualPublication
	m.Author, _ = cmd.Flags().GetString("author")
	m.Title, _ = cmd.Flags().GetString("title")
	m.Year, _ = cmd.Flags().GetString("year")
	m.JournalOrBooktitle, _ = cmd.Flags().GetString("journal")
	m.Publisher, _ = cmd.Flags().GetString("publisher")
	m.DOI, _ = cmd.Flags().GetString("doi")
	m.URL, _ = cmd.Flags().GetString("url")
	if m.Author == "" || m.Title == "" {
		return fmt.Errorf("--author and --title are required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.AddManualPublication(context.Background(), siteID, m); err != nil {
		return err
	}
	fmt.Printf("Added publication %q to site %d\n", m.Title, siteID)
	return nil
}

var stepGalleryCmd = &cobra.Command{
	Use:   "gallery [site-id]",
	Short: "Save step 4: profile picture and gallery images",
	Long: `Gallery copies images into the site's upload directory. --profile sets the
profile picture; each --add appends a gallery image in the order given.
Supported types: png, jpg, jpeg, gif, webp.`,
	Args: cobra.ExactArgs(1),
	RunE: runStepGallery,
}

func runStepGallery(cmd *cobra.Command, args []string) error {
	siteID, err := parseSiteID(args[0])
	if err != nil {
		return err
	}
	profile, _ := cmd.Flags().GetString("profile")
	adds, _ := cmd.Flags().GetStringArray("add")
	if profile == "" && len(adds) == 0 {
		return fmt.Errorf("--profile or --add is required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	bundle, err := store.LoadBundle(ctx, siteID)
	if err != nil {
		return err
	}

	step := types.Step4Gallery{SiteID: siteID}
	if bundle.Step4 != nil {
		step = *bundle.Step4
	}

	files := uploadStore()
	if profile != "" {
		name, err := files.Save(siteID, profile)
		if err != nil {
			return fmt.Errorf("saving profile picture: %w", err)
		}
		if step.ProfilePicture != "" {
			if err := files.Remove(siteID, step.ProfilePicture); err != nil {
				return err
			}
		}
		step.ProfilePicture = name
	}
	for _, src := range adds {
		name, err := files.Save(siteID, src)
		if err != nil {
			return fmt.Errorf("saving gallery image %s: %w", src, err)
		}
		step.GalleryImages = append(step.GalleryImages, name)
	}

	if err := store.SaveStep4(ctx, step); err != nil {
		return err
	}
	fmt.Printf("Saved gallery for site %d (%d images)\n", siteID, len(step.GalleryImages))
	return nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	stepPersonalCmd.Flags().String("first-name", "", "first name")
	stepPersonalCmd.Flags().String("last-name", "", "last name")
	stepPersonalCmd.Flags().String("title-role", "", "title or role (e.g. \"Professor\")")
	stepPersonalCmd.Flags().String("department", "", "department")
	stepPersonalCmd.Flags().String("field-of-study", "", "field of study")
	stepPersonalCmd.Flags().String("email", "", "contact email")
	stepPersonalCmd.Flags().String("office", "", "office address")
	stepPersonalCmd.Flags().String("phone", "", "phone number")

	stepBiographyCmd.Flags().String("text", "", "biography text")
	stepBiographyCmd.Flags().String("file", "", "read biography from file (- for stdin)")

	stepPublicationsCmd.Flags().String("file", "", "read BibTeX from file (- for stdin)")

	stepAddPublicationCmd.Flags().String("author", "", "author list (required)")
	stepAddPublicationCmd.Flags().String("title", "", "title (required)")
	stepAddPublicationCmd.Flags().String("year", "", "publication year")
	stepAddPublicationCmd.Flags().String("journal", "", "journal or book title")
	stepAddPublicationCmd.Flags().String("publisher", "", "publisher")
	stepAddPublicationCmd.Flags().String("doi", "", "DOI")
	stepAddPublicationCmd.Flags().String("url", "", "URL")

	stepGalleryCmd.Flags().String("profile", "", "path to the profile picture")
	stepGalleryCmd.Flags().StringArray("add", nil, "path to a gallery image (repeatable)")

	stepCmd.AddCommand(stepPersonalCmd)
	stepCmd.AddCommand(stepBiographyCmd)
	stepCmd.AddCommand(stepPublicationsCmd)
	stepCmd.AddCommand(stepAddPublicationCmd)
	stepCmd.AddCommand(stepGalleryCmd)

	rootCmd.AddCommand(stepCmd)
}
