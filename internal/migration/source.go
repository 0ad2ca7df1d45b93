package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yungbote/maturity-backend/internal/platform/gcp"
)

var ErrNoWorkbook = errors.New("no .xlsx workbook found")

// ObjectOpener reads gs:// objects.
type ObjectOpener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Source is a resolved workbook location.
type Source struct {
	Location string
	Remote   bool
}

// ResolveSource maps --source to a workbook. A directory yields its first
// .xlsx file in name order, skipping "~" lock files; a file path or gs:// URI
// is used as is.
func ResolveSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("empty source")
	}
	if gcp.IsObjectURI(raw) {
		if _, _, err := gcp.ParseObjectURI(raw); err != nil {
			return Source{}, err
		}
		return Source{Location: raw, Remote: true}, nil
	}

	info, err := os.Stat(raw)
	if err != nil {
		return Source{}, fmt.Errorf("stat source %s: %w", raw, err)
	}
	if !info.IsDir() {
		return Source{Location: raw}, nil
	}

	entries, err := os.ReadDir(raw)
	if err != nil {
		return Source{}, fmt.Errorf("read source dir %s: %w", raw, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~") || !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return Source{}, fmt.Errorf("%w in %s", ErrNoWorkbook, raw)
	}
	sort.Strings(names)
	return Source{Location: filepath.Join(raw, names[0])}, nil
}

// Open returns the workbook bytes. objects may be nil for local sources.
func (s Source) Open(ctx context.Context, objects ObjectOpener) (io.ReadCloser, error) {
	if s.Remote {
		if objects == nil {
			return nil, fmt.Errorf("object storage not configured for %s", s.Location)
		}
		return objects.Open(ctx, s.Location)
	}
	f, err := os.Open(s.Location)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return f, nil
}
