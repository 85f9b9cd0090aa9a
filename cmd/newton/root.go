package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "newton",
	Short: "Convex minimization with Newton's method",
	Long: `newton minimizes smooth convex functions with Newton's method:
a univariate solver using forward-difference derivatives with Armijo
backtracking, and a multivariate solver using exact derivatives from
automatic differentiation with full Newton steps.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file with solver defaults")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func setupLogger() {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// loadConfig seeds the solver defaults and overlays an optional config
// file. A missing file is only an error when it was named explicitly.
func loadConfig() error {
	viper.SetDefault("max-iter", 100)
	viper.SetDefault("eps", 1e-5)
	viper.SetDefault("tol", 1e-5)
	viper.SetDefault("alpha", 0.25)
	viper.SetDefault("beta", 0.5)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return viper.ReadInConfig()
	}

	viper.SetConfigName("newton")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
