// Package cli implements the retailsales command line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/config"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "retailsales",
		Short: "Retail sales analytics backend",
		Long: `retailsales serves filtered, sorted, paginated retail transaction data
and aggregate KPIs over PostgreSQL, and loads the transaction dataset
into the database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./retailsales.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func initConfig() error {
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logging.Init(cfg.LogLevel, cfg.IsDev())
	return nil
}
