package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rentaldesk/internal/app"
)

type resolveOptions struct {
	Registration string
	Image        string
	Category     string
	Explain      bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the image URL shown for a car",
		Long: "Resolve the display image for a car. With --catalog and --registration the car\n" +
			"is looked up in the catalog; otherwise --image, --registration and --category\n" +
			"describe the car directly.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Registration, "registration", "", "Registration number")
	cmd.Flags().StringVar(&opts.Image, "image", "", "Stored image path relative to the media root")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Car category")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "Also print the tier that produced the URL")
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.ResolveImage(ctx, app.ResolveImageRequest{
		Media:        mediaFromConfig(),
		CatalogPath:  viper.GetString("catalog"),
		Registration: opts.Registration,
		Image:        opts.Image,
		Category:     opts.Category,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.URL)
	if opts.Explain {
		fmt.Fprintf(out, "tier: %s\n", result.Tier)
		if result.Match != "" {
			fmt.Fprintf(out, "match: %s\n", result.Match)
		}
	}
	return nil
}
