package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seasonalCmd = &cobra.Command{
	Use:   "seasonal",
	Short: "Print what to feature and what to avoid this month",
	RunE: func(cmd *cobra.Command, args []string) error {
		rawDate, _ := cmd.Flags().GetString("date")
		date, err := parseDate(rawDate)
		if err != nil {
			return err
		}
		engine, err := newEngine(nil, nil)
		if err != nil {
			return err
		}
		for _, line := range engine.SeasonalMenuSuggestions(date) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seasonalCmd)
	seasonalCmd.Flags().String("date", "", "reference date YYYY-MM-DD (default today)")
}
