package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rentaldesk/internal/app"
	"rentaldesk/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "RENTALDESK"

var newAppService = app.NewService

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Media      types.MediaLocation
	Catalog    string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "rentaldesk",
		Short:         "Vehicle rental back office tools",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.Media.MediaRoot, "media-root", "", "Media root directory")
	flags.StringVar(&cfg.Media.MediaURLPrefix, "media-url", types.DefaultMediaURLPrefix, "URL prefix for media files")
	flags.StringVar(&cfg.Media.StaticURLPrefix, "static-url", types.DefaultStaticURLPrefix, "URL prefix for static files")
	flags.StringVar(&cfg.Media.CarsSubdirectory, "cars-dir", types.DefaultCarsSubdirectory, "Car image subdirectory under the media root")
	flags.StringVar(&cfg.Media.PlaceholderPath, "placeholder", types.DefaultPlaceholderPath, "Placeholder image path under the static prefix")
	flags.StringVar(&cfg.Catalog, "catalog", "", "Car catalog file")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("media_root", flags.Lookup("media-root"))
	_ = viper.BindPFlag("media_url", flags.Lookup("media-url"))
	_ = viper.BindPFlag("static_url", flags.Lookup("static-url"))
	_ = viper.BindPFlag("cars_dir", flags.Lookup("cars-dir"))
	_ = viper.BindPFlag("placeholder", flags.Lookup("placeholder"))
	_ = viper.BindPFlag("catalog", flags.Lookup("catalog"))

	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newServeCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("rentaldesk")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/rentaldesk")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// mediaFromConfig assembles the media location from flags, environment
// and config file, in that order of precedence.
func mediaFromConfig() types.MediaLocation {
	return types.MediaLocation{
		MediaRoot:        viper.GetString("media_root"),
		MediaURLPrefix:   viper.GetString("media_url"),
		StaticURLPrefix:  viper.GetString("static_url"),
		CarsSubdirectory: viper.GetString("cars_dir"),
		PlaceholderPath:  viper.GetString("placeholder"),
	}.WithDefaults()
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
