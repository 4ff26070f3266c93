package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium"
)

var dbTimeout time.Duration

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Compendium database maintenance",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the compendium tables and indexes",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store compendium.Store) error {
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			fmt.Printf("Schema ready (%s)\n", cfg.Database.Driver)
			return nil
		})
	},
}

var dbImportCmd = &cobra.Command{
	Use:   "import [entity] [file.json]",
	Short: "Insert or replace records from a JSON array",
	Long: `Load a JSON array of records into one compendium table. Examples:

  zen db import spells spells.json
  zen db import feat feats.json`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	dbCmd.PersistentFlags().String("driver", "", "postgres or sqlite (overrides database.driver)")
	dbCmd.PersistentFlags().DurationVar(&dbTimeout, "timeout", 5*time.Minute, "operation timeout")

	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbImportCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	entityType, err := entities.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	var records []*entities.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[1], err)
	}

	return withStore(func(ctx context.Context, store compendium.Store) error {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		out, err := store.Upsert(ctx, compendium.UpsertInput{
			EntityType: entityType,
			Records:    records,
		})
		if err != nil {
			return err
		}
		log.Info("import finished",
			zap.String("entity_type", entityType.String()),
			zap.Int("written", out.Written))
		fmt.Printf("Imported %d %s into %s\n", out.Written, entityType.Table(), cfg.Database.Driver)
		return nil
	})
}

func withStore(fn func(ctx context.Context, store compendium.Store) error) error {
	if v, _ := dbCmd.PersistentFlags().GetString("driver"); v != "" {
		cfg.Database.Driver = v
	}

	store, err := openStore(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	return fn(ctx, store)
}
