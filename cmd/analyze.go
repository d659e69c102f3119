package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/menuintel/internal/seasonality"
)

type menuFile struct {
	Items []seasonality.DishInput `json:"items"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Seasonal ingredient analysis of a menu file",
	Long: `analyze reads a JSON file of the form {"items":[{"name":..,"description":..}]}
and prints the seasonal ingredient report for the given month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		rawDate, _ := cmd.Flags().GetString("date")
		if path == "" {
			return errors.New("--file is required")
		}
		date, err := parseDate(rawDate)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read menu file: %w", err)
		}
		var menu menuFile
		if err := json.Unmarshal(data, &menu); err != nil {
			return fmt.Errorf("decode menu file: %w", err)
		}

		engine, err := newEngine(nil, nil)
		if err != nil {
			return err
		}
		report := engine.AnalyzeMenuIngredients(menu.Items, date)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("file", "", "menu JSON file")
	analyzeCmd.Flags().String("date", "", "reference date YYYY-MM-DD (default today)")
}
