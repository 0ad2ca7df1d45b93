package migration

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/data/repos/surveys"
	"github.com/yungbote/maturity-backend/internal/data/repos/testutil"
	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

func seededStore(t *testing.T) (*gorm.DB, surveys.ResponseRepo) {
	t.Helper()
	db := testutil.DB(t)
	testutil.SeedResponses(t, context.Background(), db,
		&survey.Response{ID: "old_a"},
		&survey.Response{ID: "old_b"},
	)
	return db, surveys.NewResponseRepo(db, testutil.Logger(t))
}

func storedIDs(t *testing.T, repo surveys.ResponseRepo) []string {
	t.Helper()
	docs, err := repo.ListAll(context.Background(), nil)
	require.NoError(t, err)
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestMigratorReplacesCollection(t *testing.T) {
	_, repo := seededStore(t)
	dir := t.TempDir()
	writeWorkbook(t, dir, "survey.xlsx", sheetRows(
		surveyRow("A", "x", "N1"),
		surveyRow("B", "y", "N3"),
		surveyRow("C", "z", "N2"),
	))

	m := NewMigrator(repo, nil, testutil.Logger(t))
	res, err := m.Run(context.Background(), Options{Source: dir, Yes: true, BatchSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 3, res.Written)
	assert.Equal(t, []string{"response_000", "response_001", "response_002"}, storedIDs(t, repo))
}

func TestMigratorConfirmation(t *testing.T) {
	_, repo := seededStore(t)
	dir := t.TempDir()
	writeWorkbook(t, dir, "survey.xlsx", sheetRows(surveyRow("A", "x", "N1")))
	m := NewMigrator(repo, nil, testutil.Logger(t))

	var out bytes.Buffer
	_, err := m.Run(context.Background(), Options{Source: dir, In: strings.NewReader("non\n"), Out: &out})
	assert.True(t, errors.Is(err, ErrAborted))
	assert.Contains(t, out.String(), survey.CollectionName)
	assert.Equal(t, []string{"old_a", "old_b"}, storedIDs(t, repo))

	out.Reset()
	res, err := m.Run(context.Background(), Options{Source: dir, In: strings.NewReader("oui\n"), Out: &out})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)
	assert.Equal(t, []string{"response_000"}, storedIDs(t, repo))
}

func TestMigratorDryRunLeavesStore(t *testing.T) {
	_, repo := seededStore(t)
	dir := t.TempDir()
	writeWorkbook(t, dir, "survey.xlsx", sheetRows(surveyRow("A", "x", "N1")))

	m := NewMigrator(repo, nil, testutil.Logger(t))
	_, err := m.Run(context.Background(), Options{Source: dir, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"old_a", "old_b"}, storedIDs(t, repo))
}

func TestMigratorDryRunWithoutStore(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "survey.xlsx", sheetRows(surveyRow("A", "x", "N1")))

	m := NewMigrator(nil, nil, testutil.Logger(t))
	_, err := m.Run(context.Background(), Options{Source: dir, DryRun: true})
	require.NoError(t, err)

	_, err = m.Run(context.Background(), Options{Source: dir, Yes: true})
	assert.ErrorIs(t, err, ErrNoStore)
}

type failingRepo struct {
	surveys.ResponseRepo
}

func (failingRepo) Count(context.Context, *gorm.DB) (int64, error) { return 3, nil }

func (failingRepo) DeleteAll(context.Context, *gorm.DB, int, func(int)) (int, error) {
	return 0, errors.New("permission denied")
}

func TestUploaderSurfacesStoreFailure(t *testing.T) {
	u := NewUploader(failingRepo{}, testutil.Logger(t), 0)
	_, err := u.Replace(context.Background(), []*survey.Response{{ID: "response_000"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}
