package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/menuintel/internal/metrics"
)

var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Predict demand for a restaurant",
	RunE: func(cmd *cobra.Command, args []string) error {
		restaurantID, _ := cmd.Flags().GetString("restaurant")
		rawDate, _ := cmd.Flags().GetString("date")
		days, _ := cmd.Flags().GetInt("days")
		if restaurantID == "" {
			return errors.New("--restaurant is required")
		}
		date, err := parseDate(rawDate)
		if err != nil {
			return err
		}

		// demand needs only the weather provider, not the stores
		engine, err := newEngine(nil, metrics.NewCollector())
		if err != nil {
			return err
		}
		forecast, err := engine.ForecastDemand(cmd.Context(), restaurantID, date, days)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(forecast)
	},
}

func init() {
	rootCmd.AddCommand(demandCmd)
	demandCmd.Flags().String("restaurant", "", "restaurant ID")
	demandCmd.Flags().String("date", "", "first date YYYY-MM-DD (default today)")
	demandCmd.Flags().Int("days", 1, "number of days to forecast")
}
