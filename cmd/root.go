package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codemateteam/php-handbook-sub005/internal/config"
	"github.com/codemateteam/php-handbook-sub005/internal/logging"
)

var cfgFile string
var appConfig config.Config
var logs *logging.Provider

var rootCmd = &cobra.Command{
	Use:   "handbook",
	Short: "Builds the PHP handbook documentation site",
	Long: `handbook turns the Markdown chapters under ./content/ and the
navigation declared in site.yaml into a static HTML site with a sidebar,
previous/next page links and an outline per page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the CLI. Invalid site configs exit with status 2, every
// other failure with 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if goerrors.IsCategory(err, goerrors.CategoryValidation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "tool config file (default is ./handbook.yaml)")
	flags.String("site", "", "site config file (default is ./site.yaml)")
	flags.String("content", "", "content directory (default is ./content)")
	flags.String("out", "", "output directory (default is ./public)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.Bool("strict-links", false, "fail on dead internal links even when the site ignores them")
}

var flagKeys = map[string]string{
	"site":         "siteConfig",
	"content":      "contentDir",
	"out":          "outputDir",
	"log-level":    "log.level",
	"strict-links": "strictLinks",
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", flag, err)
			}
		}
	}

	cfg, found, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	logs, err = logging.NewProvider(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	logger := logs.GetLogger("config")
	if found {
		logger.Debug("config.loaded", "file", v.ConfigFileUsed())
	} else {
		logger.Debug("config.defaults", "reason", "no handbook.yaml found")
	}
	return nil
}
