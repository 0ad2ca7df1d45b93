package migration

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yungbote/maturity-backend/internal/data/repos/surveys"
	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// ErrAborted is returned when the operator declines the confirmation.
var ErrAborted = errors.New("migration aborted by operator")

// ErrNoStore is returned when a writing run has no repo to write to.
var ErrNoStore = errors.New("migration has no document store")

type Options struct {
	Source    string
	Sheet     string
	Yes       bool
	DryRun    bool
	BatchSize int

	In  io.Reader
	Out io.Writer
}

type Migrator struct {
	repo    surveys.ResponseRepo
	objects ObjectOpener
	log     *logger.Logger
}

func NewMigrator(repo surveys.ResponseRepo, objects ObjectOpener, baseLog *logger.Logger) *Migrator {
	return &Migrator{repo: repo, objects: objects, log: baseLog.With("component", "Migrator")}
}

// Load resolves, reads and transforms the workbook without touching the store.
func (m *Migrator) Load(ctx context.Context, opts Options) (Source, Transformed, error) {
	src, err := ResolveSource(opts.Source)
	if err != nil {
		return Source{}, Transformed{}, err
	}
	rc, err := src.Open(ctx, m.objects)
	if err != nil {
		return src, Transformed{}, err
	}
	defer rc.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = SheetName
	}
	table, err := ReadTable(rc, sheet)
	if err != nil {
		return src, Transformed{}, err
	}
	out := Transform(table)
	m.log.Info("Workbook loaded", "source", src.Location, "responses", len(out.Responses), "trailing_blank_rows", out.Blank)
	if len(out.Missing) > 0 {
		m.log.Warn("Workbook is missing expected columns", "missing", out.Missing)
	}
	return src, out, nil
}

// Run performs the full destructive replace after confirmation.
func (m *Migrator) Run(ctx context.Context, opts Options) (Result, error) {
	src, data, err := m.Load(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	if opts.DryRun {
		m.log.Info("Dry run, store untouched")
		return Result{}, nil
	}
	if m.repo == nil {
		return Result{}, ErrNoStore
	}

	if !opts.Yes {
		prompt := fmt.Sprintf(
			"This will DELETE every document in %q and upload %d responses from %s.\nContinue? (oui/non): ",
			survey.CollectionName, len(data.Responses), src.Location,
		)
		if !Confirm(opts.In, opts.Out, prompt) {
			return Result{}, ErrAborted
		}
	}

	res, err := NewUploader(m.repo, m.log, opts.BatchSize).Replace(ctx, data.Responses)
	if err != nil {
		return res, err
	}
	m.log.Info("Migration complete",
		"deleted", res.Deleted,
		"written", res.Written,
		"collection", survey.CollectionName,
		"duration", res.Duration,
	)
	return res, nil
}
