package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/maturity-backend/internal/data/db"
	"github.com/yungbote/maturity-backend/internal/data/repos/surveys"
	"github.com/yungbote/maturity-backend/internal/migration"
	"github.com/yungbote/maturity-backend/internal/platform/envutil"
	"github.com/yungbote/maturity-backend/internal/platform/gcp"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

var (
	source    string
	sheet     string
	assumeYes bool
	dryRun    bool
	batchSize int

	rootCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Replace the survey_responses collection with the rows of an Excel workbook",
		Long: `migrate reads the "Données" sheet of a survey workbook and rewrites the
whole survey_responses collection. Existing documents are deleted first.
There is no rollback.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMigrate,
	}
)

func init() {
	rootCmd.Flags().StringVar(&source, "source", envutil.String("MIGRATION_SOURCE", ".docs"), "workbook file, directory holding one, or gs://bucket/object")
	rootCmd.Flags().StringVar(&sheet, "sheet", migration.SheetName, "sheet to read")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the workbook without writing")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", defaultBatchSize(), "documents per write batch (max 500)")
}

func defaultBatchSize() int {
	return envutil.Int("MIGRATION_BATCH_SIZE", surveys.MaxBatchSize)
}

// openRepo connects to the document store and ensures its schema. A dry run
// never touches the store and gets a nil repo.
func openRepo(log *logger.Logger, dryRun bool) (surveys.ResponseRepo, func(), error) {
	if dryRun {
		return nil, func() {}, nil
	}
	store, err := db.NewService(log, db.ConfigFromEnv())
	if err != nil {
		return nil, nil, fmt.Errorf("init document store: %w", err)
	}
	closeFn := func() { _ = store.Close() }
	if err := db.AutoMigrateAll(store.DB()); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("document store automigrate: %w", err)
	}
	return surveys.NewResponseRepo(store.DB(), log), closeFn, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	repo, closeRepo, err := openRepo(log, dryRun)
	if err != nil {
		return err
	}
	defer closeRepo()

	var objects migration.ObjectOpener
	if gcp.IsObjectURI(source) {
		reader, err := gcp.NewObjectReader(ctx, log)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		defer reader.Close()
		objects = reader
	}

	m := migration.NewMigrator(repo, objects, log)
	res, err := m.Run(ctx, migration.Options{
		Source:    source,
		Sheet:     sheet,
		Yes:       assumeYes,
		DryRun:    dryRun,
		BatchSize: batchSize,
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if !dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Migration complete: %d deleted, %d created in %s\n", res.Deleted, res.Written, res.Duration)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, migration.ErrAborted):
		fmt.Println("Operation cancelled")
	default:
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}
