package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/http"
	"github.com/matt-dz/foodgram/internal/importer"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/setup"
)

var source string

var rootCmd = &cobra.Command{
	Use:          "foodgram-import",
	Short:        "Load the ingredient and tag catalogs from CSV",
	SilenceUsage: true,
}

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "Import ingredients from a CSV with columns name, measurement_unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.KindIngredients)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Import tags from a CSV with columns name, color, slug",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.KindTags)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&source, "source", "s", "", "CSV file path or http(s) URL")
	_ = rootCmd.MarkPersistentFlagRequired("source")
	rootCmd.AddCommand(ingredientsCmd, tagsCmd)
}

func runImport(cmd *cobra.Command, kind importer.Kind) error {
	ctx := cmd.Context()

	conf, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := log.New(conf.LogLevel.Level())

	db, err := setup.Database(ctx, conf)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		return err
	}
	defer db.Close()

	im := importer.New(db, http.New(http.DefaultConfig(logger)), logger)
	res, err := im.Import(ctx, kind, source)
	if err != nil {
		logger.Error("Import failed", slog.Any("error", err))
		return err
	}

	cmd.Printf("%s: %d inserted, %d already present, %d invalid\n", kind, res.Inserted, res.Skipped, res.Invalid)
	return nil
}
