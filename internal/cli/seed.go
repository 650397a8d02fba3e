package cli

import (
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/app"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/ingest"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/logging"
)

var (
	seedFile string
	seedRows int
	seedSeed uint64

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load the transaction dataset into the database",
		Long: `Load a CSV or XLSX dataset into the database, deduplicating customers
and products by their natural keys. Without --file, a reproducible
sample dataset is generated instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd)
		},
	}
)

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "",
		"dataset file to load (.csv or .xlsx)")
	seedCmd.Flags().IntVar(&seedRows, "rows", 10000,
		"transactions to generate when no file is given")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 1,
		"random seed for generated data")
}

func runSeed(cmd *cobra.Command) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return err
	}

	application := app.New(db, cfg)
	if err := application.Migrate(); err != nil {
		return err
	}

	var ds *ingest.Dataset
	if seedFile != "" {
		logging.Info().Str("file", seedFile).Msg("reading dataset")
		if ds, err = ingest.ReadFile(seedFile); err != nil {
			return err
		}
	} else {
		logging.Info().Int("rows", seedRows).Uint64("seed", seedSeed).Msg("generating sample dataset")
		ds = ingest.Generate(seedRows, seedSeed)
	}

	return ingest.Insert(cmd.Context(), db, ds)
}
