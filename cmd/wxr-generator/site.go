// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wxr-generator/pkg/types"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage WordPress site configurations",
	Long: `Site manages the WordPress site configurations the wizard steps attach to.
Create a site, fill in its steps with the step subcommands, then preview and
export it.`,
}

var siteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new site for a user",
	RunE:  runSiteCreate,
}

func runSiteCreate(cmd *cobra.Command, args []string) error {
	user, err := identityFromFlags(cmd)
	if err != nil {
		return err
	}
	siteName, _ := cmd.Flags().GetString("name")
	if siteName == "" {
		return fmt.Errorf("--name is required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	owner, err := store.EnsureUser(ctx, user)
	if err != nil {
		return err
	}
	site, err := store.CreateSite(ctx, owner.ID, siteName)
	if err != nil {
		return err
	}

	fmt.Printf("Created site %d (%s) for %s\n", site.ID, site.SiteName, owner.Username)
	return nil
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sites owned by a user",
	RunE:  runSiteList,
}

func runSiteList(cmd *cobra.Command, args []string) error {
	user, err := identityFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	owner, err := store.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	sites, err := store.ListSites(ctx, owner.ID)
	if err != nil {
		return err
	}

	if len(sites) == 0 {
		fmt.Println("No sites found.")
		return nil
	}
	fmt.Printf("%-6s  %-30s  %s\n", "ID", "Site Name", "Updated")
	for _, s := range sites {
		fmt.Printf("%-6d  %-30s  %s\n", s.ID, s.SiteName, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

var siteShowCmd = &cobra.Command{
	Use:   "show [site-id]",
	Short: "Show a site's wizard progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runSiteShow,
}

func runSiteShow(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("Site %d: %s (owner %s)\n", bundle.Site.ID, bundle.Site.SiteName, bundle.User.Username)
	fmt.Printf("  Step 1 personal info:  %s\n", stepStatus(bundle.Step1 != nil))
	fmt.Printf("  Step 2 biography:      %s\n", stepStatus(bundle.Step2 != nil))
	if bundle.Step3 != nil {
		fmt.Printf("  Step 3 publications:   saved (%d manual, bibtex %d bytes)\n",
			len(bundle.Step3.Manual), len(bundle.Step3.BibtexContent))
	} else {
		fmt.Printf("  Step 3 publications:   %s\n", stepStatus(false))
	}
	if bundle.Step4 != nil {
		fmt.Printf("  Step 4 gallery:        saved (%d images, profile picture: %s)\n",
			len(bundle.Step4.GalleryImages), stepStatus(bundle.Step4.ProfilePicture != ""))
	} else {
		fmt.Printf("  Step 4 gallery:        %s\n", stepStatus(false))
	}
	if bundle.Complete() {
		fmt.Println("Ready to export.")
	} else {
		fmt.Println("Steps 1 and 2 are required before export.")
	}
	return nil
}

var siteImportCmd = &cobra.Command{
	Use:   "import [definition.yaml]",
	Short: "Create and fill a site from a YAML definition file",
	Long: `Import reads a whole site definition from a YAML file: site name, owner,
personal info, biography, publications (inline BibTeX, a .bib file, or manual
entries), and gallery images. Image paths are resolved relative to the
definition file and copied into the upload store.`,
	Args: cobra.ExactArgs(1),
	RunE: runSiteImport,
}

func runSiteImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading definition: %w", err)
	}
	var def types.SiteDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("parsing definition: %w", err)
	}
	if def.SiteName == "" {
		return fmt.Errorf("definition is missing site_name")
	}

	user := def.User
	if user.Username == "" {
		user = userFromEnv()
	}
	if user.Username == "" {
		return fmt.Errorf("definition is missing user.username and REMOTE_USER is unset")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	owner, err := store.EnsureUser(ctx, user)
	if err != nil {
		return err
	}
	site, err := store.CreateSite(ctx, owner.ID, def.SiteName)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(args[0])

	if def.PersonalInfo != nil {
		step := *def.PersonalInfo
		step.SiteID = site.ID
		if err := store.SaveStep1(ctx, step); err != nil {
			return err
		}
	}
	if def.Biography != "" {
		if err := store.SaveStep2(ctx, types.Step2Biography{SiteID: site.ID, Biography: def.Biography}); err != nil {
			return err
		}
	}

	if def.Publications != nil {
		bib := def.Publications.Bibtex
		if bib == "" && def.Publications.BibtexFile != "" {
			data, err := os.ReadFile(resolvePath(baseDir, def.Publications.BibtexFile))
			if err != nil {
				return fmt.Errorf("reading bibtex file: %w", err)
			}
			bib = string(data)
		}
		if bib != "" {
			if err := store.SaveStep3(ctx, types.Step3Publications{SiteID: site.ID, BibtexContent: bib}); err != nil {
				return err
			}
		}
		for _, m := range def.Publications.Manual {
			if _, err := store.AddManualPublication(ctx, site.ID, m); err != nil {
				return err
			}
		}
	}

	if def.Gallery != nil {
		files := uploadStore()
		step := types.Step4Gallery{SiteID: site.ID}
		if def.Gallery.ProfilePicture != "" {
			name, err := files.Save(site.ID, resolvePath(baseDir, def.Gallery.ProfilePicture))
			if err != nil {
				return fmt.Errorf("importing profile picture: %w", err)
			}
			step.ProfilePicture = name
		}
		for _, img := range def.Gallery.Images {
			name, err := files.Save(site.ID, resolvePath(baseDir, img))
			if err != nil {
				return fmt.Errorf("importing gallery image %s: %w", img, err)
			}
			step.GalleryImages = append(step.GalleryImages, name)
		}
		if err := store.SaveStep4(ctx, step); err != nil {
			return err
		}
	}

	fmt.Printf("Imported site %d (%s) for %s\n", site.ID, site.SiteName, owner.Username)
	return nil
}

// identityFromFlags builds the user identity from flags, falling back to the
// web-server environment variables for anything not given.
func identityFromFlags(cmd *cobra.Command) (types.User, error) {
	user := userFromEnv()
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		user.Username = v
	}
	if v, _ := cmd.Flags().GetString("email"); v != "" {
		user.Email = v
	}
	if v, _ := cmd.Flags().GetString("first-name"); v != "" {
		user.FirstName = v
	}
	if v, _ := cmd.Flags().GetString("last-name"); v != "" {
		user.LastName = v
	}
	if user.Username == "" {
		return types.User{}, fmt.Errorf("--user is required when REMOTE_USER is unset")
	}
	return user, nil
}

// parseSiteID parses a numeric site id argument.
func parseSiteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid site id %q", arg)
	}
	return id, nil
}

// resolvePath resolves a possibly-relative path against a base directory.
func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func stepStatus(done bool) string {
	if done {
		return "saved"
	}
	return "missing"
}

func init() {
	for _, c := range []*cobra.Command{siteCreateCmd, siteListCmd} {
		c.Flags().String("user", "", "username (default: REMOTE_USER)")
		c.Flags().String("email", "", "email address (default: HTTP_X_MAIL)")
		c.Flags().String("first-name", "", "first name (default: HTTP_X_FIRSTNAME)")
		c.Flags().String("last-name", "", "last name (default: HTTP_X_LASTNAME)")
	}
	siteCreateCmd.Flags().String("name", "", "site name (required)")

	siteCmd.AddCommand(siteCreateCmd)
	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteShowCmd)
	siteCmd.AddCommand(siteImportCmd)

	rootCmd.AddCommand(siteCmd)
}
