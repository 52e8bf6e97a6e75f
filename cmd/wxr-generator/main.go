// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wxr-generator CLI.
//
// wxr-generator turns multi-step site wizard data (personal info, biography,
// publications, images) into a WordPress eXtended RSS (WXR) export file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wxr-generator/internal/sitestore"
	"github.com/pdiddy/wxr-generator/internal/uploads"
	"github.com/pdiddy/wxr-generator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the wxr-generator CLI.
var rootCmd = &cobra.Command{
	Use:   "wxr-generator",
	Short: "Generate WordPress import files from site wizard data",
	Long: `wxr-generator collects a faculty site's wizard data step by step (personal
information, biography, publications, gallery images) and generates a
WordPress eXtended RSS (WXR) file that a fresh WordPress install can import
to recreate the site's pages and media.

Wizard state lives in a local SQLite database; uploaded images live under a
per-site upload directory. See the site, step, preview, and export
subcommands.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wxr-generator.yaml or ~/.config/wxr-generator/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wxr-generator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wxr-generator"))
		}
	}

	viper.SetDefault("storage.upload_dir", "uploads")
	viper.SetDefault("storage.database", "wxr-generator.db")
	viper.SetDefault("export.base_url", "https://example.com")
	viper.SetDefault("export.output_dir", ".")

	viper.SetEnvPrefix("WXR_GENERATOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper state into the typed config.
func loadConfig() types.Config {
	return types.Config{
		Storage: types.StorageConfig{
			UploadDir: viper.GetString("storage.upload_dir"),
			Database:  viper.GetString("storage.database"),
		},
		Export: types.ExportConfig{
			BaseURL:   viper.GetString("export.base_url"),
			OutputDir: viper.GetString("export.output_dir"),
		},
	}
}

// openStore opens the wizard database from the configured path.
func openStore() (*sitestore.Store, error) {
	cfg := loadConfig()
	store, err := sitestore.Open(cfg.Storage.Database)
	if err != nil {
		return nil, fmt.Errorf("opening wizard database %s: %w", cfg.Storage.Database, err)
	}
	return store, nil
}

// uploadStore returns the upload store rooted at the configured directory.
func uploadStore() *uploads.Store {
	return uploads.NewStore(loadConfig().Storage.UploadDir)
}

// userFromEnv reads identity from the environment variables a fronting web
// server sets: REMOTE_USER (or HTTP_X_REMOTE_USER) plus the HTTP_X_* detail
// headers. Missing variables leave the fields empty.
func userFromEnv() types.User {
	username := os.Getenv("REMOTE_USER")
	if username == "" {
		username = os.Getenv("HTTP_X_REMOTE_USER")
	}
	return types.User{
		Username:  username,
		Email:     os.Getenv("HTTP_X_MAIL"),
		FirstName: os.Getenv("HTTP_X_FIRSTNAME"),
		LastName:  os.Getenv("HTTP_X_LASTNAME"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
