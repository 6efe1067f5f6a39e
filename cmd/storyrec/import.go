package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storyrec-dev/storyrec/internal/catalog"
	"github.com/storyrec-dev/storyrec/internal/config"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import stories from a JSON file",
	Long: `Import stories from a JSON catalog file into the database.
Existing stories with the same identifier are updated in place.

Example:
  storyrec import stories.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the catalog to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	stories, err := catalog.ReadFile(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := store.Save(ctx, stories); err != nil {
		return fmt.Errorf("save stories: %w", err)
	}

	fmt.Printf("Imported %d stories from %s\n", len(stories), args[0])
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := catalog.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	stories, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stories: %w", err)
	}

	if err := catalog.WriteFile(args[0], stories); err != nil {
		return err
	}

	fmt.Printf("Exported %d stories to %s\n", len(stories), args[0])
	return nil
}
