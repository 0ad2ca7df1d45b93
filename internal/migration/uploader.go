package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/maturity-backend/internal/data/repos/surveys"
	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type Result struct {
	Deleted  int
	Written  int
	Duration time.Duration
}

// Uploader replaces the whole response collection. Batches are committed one
// by one with no rollback; a failure leaves whatever was already applied.
type Uploader struct {
	repo      surveys.ResponseRepo
	log       *logger.Logger
	batchSize int
}

func NewUploader(repo surveys.ResponseRepo, baseLog *logger.Logger, batchSize int) *Uploader {
	if batchSize <= 0 || batchSize > surveys.MaxBatchSize {
		batchSize = surveys.MaxBatchSize
	}
	return &Uploader{
		repo:      repo,
		log:       baseLog.With("component", "Uploader"),
		batchSize: batchSize,
	}
}

func (u *Uploader) Replace(ctx context.Context, responses []*survey.Response) (Result, error) {
	start := time.Now()
	var res Result

	docs := make([]*survey.Document, 0, len(responses))
	for _, r := range responses {
		doc, err := survey.NewDocument(r)
		if err != nil {
			return res, err
		}
		docs = append(docs, doc)
	}

	existing, err := u.repo.Count(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("count existing documents: %w", err)
	}
	u.log.Info("Deleting existing documents...", "collection", survey.CollectionName, "existing", existing)
	deleted, err := u.repo.DeleteAll(ctx, nil, u.batchSize, func(n int) {
		u.log.Debug("delete batch committed", "deleted", n)
	})
	res.Deleted = deleted
	if err != nil {
		return res, fmt.Errorf("delete existing documents (%d removed before failure): %w", deleted, err)
	}
	u.log.Info("Existing documents deleted", "deleted", deleted)

	u.log.Info("Uploading documents...", "count", len(docs))
	written, err := u.repo.CreateBatched(ctx, nil, docs, u.batchSize, func(n int) {
		u.log.Info("documents uploaded", "written", n)
	})
	res.Written = written
	res.Duration = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("upload documents (%d written before failure): %w", written, err)
	}
	return res, nil
}
