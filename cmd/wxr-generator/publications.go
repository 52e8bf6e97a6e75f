// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wxr-generator/internal/bibtex"
)

var publicationsCmd = &cobra.Command{
	Use:   "publications",
	Short: "Work with publication data outside a site",
}

var publicationsParseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a BibTeX file and print the extracted publications as YAML",
	Long: `Parse reads a BibTeX file (- for stdin) and prints the publications that
would be exported, as YAML. Entries without a title are dropped; malformed
input degrades to whatever can still be extracted. Useful for checking a .bib
file before attaching it to a site.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublicationsParse,
}

func runPublicationsParse(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("reading bibtex: %w", err)
	}

	pubs := bibtex.Parse(string(data))
	if len(pubs) == 0 {
		fmt.Fprintln(os.Stderr, "No publications found.")
		return nil
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(pubs); err != nil {
		return fmt.Errorf("encoding publications: %w", err)
	}
	return enc.Close()
}

func init() {
	publicationsCmd.AddCommand(publicationsParseCmd)
	rootCmd.AddCommand(publicationsCmd)
}
