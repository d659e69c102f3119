package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/factories"
	"github.com/chrisdamba/menuintel/internal/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with generated demo restaurants, menus and orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		migrate, _ := cmd.Flags().GetBool("migrate")

		db, err := storage.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if migrate {
			if err := storage.RunMigrations(ctx, db.SQL.DB); err != nil {
				return err
			}
		}

		s := postgresStores(db)
		gen := factories.NewGenerator(cfg.Seed.Seed)
		bar := progressbar.NewOptions(cfg.Seed.Restaurants,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("seeding restaurants"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		var items, orders int
		for i := 0; i < cfg.Seed.Restaurants; i++ {
			data := gen.RestaurantDataset(cfg.Seed)
			if err := data.Load(ctx, s.sinks); err != nil {
				return fmt.Errorf("seed restaurant %d: %w", i+1, err)
			}
			items += len(data.MenuItems)
			orders += len(data.Orders)
			_ = bar.Add(1)
		}
		_ = bar.Finish()

		logger.Info("seed complete",
			zap.Int("restaurants", cfg.Seed.Restaurants),
			zap.Int("menu_items", items),
			zap.Int("orders", orders),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Bool("migrate", true, "apply migrations before seeding")
	seedCmd.Flags().Int("restaurants", 3, "number of restaurants")
	seedCmd.Flags().Int64("seed", 42, "random seed")
	cobra.CheckErr(viper.BindPFlag("seed.restaurants", seedCmd.Flags().Lookup("restaurants")))
	cobra.CheckErr(viper.BindPFlag("seed.seed", seedCmd.Flags().Lookup("seed")))
}
