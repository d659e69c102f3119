package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/metrics"
	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/optimizer"
	"github.com/chrisdamba/menuintel/internal/output"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate and publish a suggestion report",
	Long: `suggest runs the optimizer for one restaurant (--restaurant) or every known
restaurant (--all) and publishes each report to the configured output
destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		restaurantID, _ := cmd.Flags().GetString("restaurant")
		all, _ := cmd.Flags().GetBool("all")
		rawDate, _ := cmd.Flags().GetString("date")

		if restaurantID == "" && !all {
			return errors.New("either --restaurant or --all is required")
		}
		date, err := parseDate(rawDate)
		if err != nil {
			return err
		}

		s, err := openStores(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		engine, err := newEngine(s, metrics.NewCollector())
		if err != nil {
			return err
		}

		dest, err := output.NewDestination(ctx, cfg.Output, logger)
		if err != nil {
			return err
		}
		publisher := output.NewPublisher(dest, cfg.Output.Topic, logger)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close output destination", zap.Error(err))
			}
		}()

		ids := []string{restaurantID}
		if all {
			restaurants, err := s.restaurants.GetAll(ctx)
			if err != nil {
				return err
			}
			ids = ids[:0]
			for _, r := range restaurants {
				ids = append(ids, r.ID)
			}
		}

		for _, id := range ids {
			suggestions, err := engine.GenerateSuggestions(ctx, id, date)
			if err != nil {
				return err
			}
			report := optimizer.NewReport(id, date, time.Now(), suggestions)
			if err := publisher.PublishReport(report); err != nil {
				return err
			}
			logImpactSummary(id, suggestions)
		}
		return nil
	},
}

func logImpactSummary(restaurantID string, suggestions []models.OptimizationSuggestion) {
	byImpact := map[models.Impact]int{}
	var revenue float64
	for _, s := range suggestions {
		byImpact[s.Impact]++
		revenue += s.PredictedRevenue
	}
	logger.Info("suggestion summary",
		zap.String("restaurant_id", restaurantID),
		zap.Int("high", byImpact[models.ImpactHigh]),
		zap.Int("medium", byImpact[models.ImpactMedium]),
		zap.Int("low", byImpact[models.ImpactLow]),
		zap.Float64("predicted_revenue", revenue),
	)
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().String("restaurant", "", "restaurant ID")
	suggestCmd.Flags().Bool("all", false, "run for every restaurant in the store")
	suggestCmd.Flags().String("date", "", "reference date YYYY-MM-DD (default today)")
}
