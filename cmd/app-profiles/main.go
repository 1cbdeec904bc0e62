package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/David-Botos/app-profiles/pkg/config"
)

func main() {
	a := &app{out: os.Stdout}

	rootCmd := &cobra.Command{
		Use:   "app-profiles",
		Short: "Profile free Google Play and App Store apps",
		Long: `Cleans the Google Play and App Store exports (malformed rows, duplicate
names, non-English names, paid apps) and reports genre shares and average
popularity per genre.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional .env file with configuration")
	rootCmd.PersistentFlags().StringVar(&a.androidPath, "android", "", "path to the Google Play CSV (overrides ANDROID_PATH)")
	rootCmd.PersistentFlags().StringVar(&a.iosPath, "ios", "", "path to the App Store CSV (overrides IOS_PATH)")

	rootCmd.AddCommand(createAnalyzeCmd(a))
	rootCmd.AddCommand(createExploreCmd(a))
	rootCmd.AddCommand(createFreqCmd(a))
	rootCmd.AddCommand(createAvgCmd(a))
	rootCmd.AddCommand(createDuplicatesCmd(a))
	rootCmd.AddCommand(createListCmd(a))
	rootCmd.AddCommand(createMeanCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger before any subcommand runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFrom(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.androidPath != "" {
		cfg.Android.Path = a.androidPath
	}
	if a.iosPath != "" {
		cfg.IOS.Path = a.iosPath
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// newLogger builds a JSON production logger or a console development logger
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}

	return zcfg.Build()
}
