package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rentaldesk/internal/app"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog with sample cars and images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cmd)
		},
	}
}

func runSeed(ctx context.Context, cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.Seed(ctx, app.SeedRequest{
		Media:       mediaFromConfig(),
		CatalogPath: viper.GetString("catalog"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, car := range result.Created {
		fmt.Fprintf(out, "created: %s (%s) %.2f/day\n", car.Category, car.RegistrationNumber, car.Price)
	}
	for _, registration := range result.Skipped {
		fmt.Fprintf(out, "skipped: %s already exists\n", registration)
	}
	fmt.Fprintf(out, "total cars: %d, created: %d, skipped: %d\n",
		result.Total, len(result.Created), len(result.Skipped))
	return nil
}
