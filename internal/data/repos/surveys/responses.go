package surveys

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// MaxBatchSize caps the operations sent to the store in one write batch.
const MaxBatchSize = 500

type ResponseRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*survey.Document, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteAll(ctx context.Context, tx *gorm.DB, batchSize int, progress func(deleted int)) (int, error)
	CreateBatched(ctx context.Context, tx *gorm.DB, docs []*survey.Document, batchSize int, progress func(written int)) (int, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	repoLog := baseLog.With("repo", "ResponseRepo")
	return &responseRepo{db: db, log: repoLog}
}

func (r *responseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ListAll returns every stored document ordered by id.
func (r *responseRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*survey.Document, error) {
	var results []*survey.Document
	if err := r.conn(tx).WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *responseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&survey.Document{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll removes every document, batchSize ids at a time. Batches already
// committed stay deleted if a later batch fails.
func (r *responseRepo) DeleteAll(ctx context.Context, tx *gorm.DB, batchSize int, progress func(deleted int)) (int, error) {
	batchSize = clampBatch(batchSize)
	transaction := r.conn(tx)

	var ids []string
	if err := transaction.WithContext(ctx).
		Model(&survey.Document{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("list document ids: %w", err)
	}

	deleted := 0
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		res := transaction.WithContext(ctx).
			Where("id IN ?", ids[start:end]).
			Delete(&survey.Document{})
		if res.Error != nil {
			return deleted, fmt.Errorf("delete batch at %d: %w", start, res.Error)
		}
		deleted += int(res.RowsAffected)
		if progress != nil {
			progress(deleted)
		}
	}
	return deleted, nil
}

// CreateBatched inserts docs batchSize at a time, reporting progress after
// each committed batch.
func (r *responseRepo) CreateBatched(ctx context.Context, tx *gorm.DB, docs []*survey.Document, batchSize int, progress func(written int)) (int, error) {
	batchSize = clampBatch(batchSize)
	transaction := r.conn(tx)

	written := 0
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]
		if err := transaction.WithContext(ctx).Create(&batch).Error; err != nil {
			return written, fmt.Errorf("insert batch at %d: %w", start, err)
		}
		written += len(batch)
		if progress != nil {
			progress(written)
		}
	}
	return written, nil
}

func clampBatch(n int) int {
	if n <= 0 || n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}
