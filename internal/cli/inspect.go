package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rentaldesk/internal/app"
)

type inspectOptions struct {
	Output string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show which image every catalog car resolves to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Directory to write image.report into")
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		Media:       mediaFromConfig(),
		CatalogPath: viper.GetString("catalog"),
		OutputDir:   resolveString(cmd, opts.Output, "report_dir", "output"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cars: %d\n", len(result.Cars))
	for _, inspected := range result.Cars {
		registration := inspected.Car.RegistrationNumber
		if registration == "" {
			registration = "-"
		}
		fmt.Fprintf(out, "- %s (%s): %s %s\n",
			registration, inspected.Car.Category, inspected.Resolution.Tier, inspected.Resolution.URL)
	}
	fmt.Fprintln(out, "tiers:")
	for _, summary := range result.Tiers {
		fmt.Fprintf(out, "- %s: %d\n", summary.Tier, summary.Count)
	}
	if result.ReportPath != "" {
		fmt.Fprintf(out, "report: %s\n", result.ReportPath)
	}
	return nil
}
