// Import command: loads catalog rows from CSV files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/internal/store"
	"github.com/nestfit/nestfit/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import {furniture|rental} <file.csv>",
	Short: "Import catalog rows from a CSV file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, path := args[0], args[1]
		if kind != "furniture" && kind != "rental" {
			return fmt.Errorf("unknown import kind %q (want furniture or rental)", kind)
		}

		logger := newLogger()

		cfg, err := storageConfig()
		if err != nil {
			return err
		}
		st, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.InitSchema(cmd.Context()); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}

		fixtureDir := config.GetString(cfgKeyFixtureDir)
		furniture, err := types.LoadFurnitureConditions(filepath.Join(fixtureDir, "furniture_condition.json"))
		if err != nil {
			return fmt.Errorf("load furniture conditions: %w", err)
		}
		rentals, err := types.LoadRentalConditions(filepath.Join(fixtureDir, "rental_condition.json"))
		if err != nil {
			return fmt.Errorf("load rental conditions: %w", err)
		}

		service := catalog.NewService(st, furniture, rentals, catalog.Options{Logger: logger})

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()

		var n int
		switch kind {
		case "furniture":
			n, err = service.ImportFurnitureCSV(cmd.Context(), f)
		case "rental":
			n, err = service.ImportRentalCSV(cmd.Context(), f)
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", kind, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s rows\n", n, kind)
		return nil
	},
}
