package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

func Level(v int) *int { return &v }

func Text(s string) *string { return &s }

// SeedResponses stores responses as documents.
func SeedResponses(tb testing.TB, ctx context.Context, tx *gorm.DB, responses ...*survey.Response) []*survey.Document {
	tb.Helper()
	docs := make([]*survey.Document, 0, len(responses))
	for _, r := range responses {
		doc, err := survey.NewDocument(r)
		if err != nil {
			tb.Fatalf("encode response: %v", err)
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return docs
	}
	if err := tx.WithContext(ctx).Create(&docs).Error; err != nil {
		tb.Fatalf("seed responses: %v", err)
	}
	return docs
}
