package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/maturity-backend/internal/data/repos/surveys"
	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

var ErrDataSourceUnavailable = errors.New("data source unavailable")

const fillKey = "survey_responses"

// ResponseCache holds the full response collection for the process lifetime.
// The slice returned by Load is shared and must not be mutated.
type ResponseCache struct {
	repo    surveys.ResponseRepo
	log     *logger.Logger
	metrics *observability.Metrics

	mu         sync.RWMutex
	loaded     bool
	generation uint64
	responses  []*survey.Response

	fills singleflight.Group
}

func NewResponseCache(repo surveys.ResponseRepo, baseLog *logger.Logger, metrics *observability.Metrics) *ResponseCache {
	return &ResponseCache{
		repo:    repo,
		log:     baseLog.With("service", "ResponseCache"),
		metrics: metrics,
	}
}

func (c *ResponseCache) cached() ([]*survey.Response, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.responses, c.generation, c.loaded
}

// Load returns the cached collection, filling it on first use. Concurrent
// callers share a single fill. A caller whose ctx ends stops waiting but the
// fill keeps running for the others.
func (c *ResponseCache) Load(ctx context.Context) ([]*survey.Response, error) {
	if rs, _, ok := c.cached(); ok {
		return rs, nil
	}

	fillCtx := context.WithoutCancel(ctx)
	ch := c.fills.DoChan(fillKey, func() (interface{}, error) {
		rs, gen, ok := c.cached()
		if ok {
			return rs, nil
		}
		rs, err := c.fill(fillCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation == gen {
			c.responses = rs
			c.loaded = true
		}
		c.mu.Unlock()
		return rs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*survey.Response), nil
	}
}

func (c *ResponseCache) fill(ctx context.Context) ([]*survey.Response, error) {
	ctx, span := observability.Tracer("maturity/services").Start(ctx, "ResponseCache.fill")
	defer span.End()

	start := time.Now()
	docs, err := c.repo.ListAll(ctx, nil)
	if err != nil {
		c.metrics.ObserveCacheFill(0, time.Since(start), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list documents")
		c.log.Error("load survey responses failed", "error", err)
		return nil, apierr.New(
			http.StatusServiceUnavailable,
			"data_source_unavailable",
			fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err),
		)
	}

	out := make([]*survey.Response, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		r, derr := doc.Response()
		if derr != nil {
			skipped++
			c.log.Warn("skipping undecodable survey document", "id", doc.ID, "error", derr)
			continue
		}
		out = append(out, r)
	}

	dur := time.Since(start)
	c.metrics.ObserveCacheFill(len(out), dur, nil)
	span.SetAttributes(
		attribute.Int("maturity.responses", len(out)),
		attribute.Int("maturity.skipped", skipped),
	)
	c.log.Info("survey responses cached", "count", len(out), "skipped", skipped, "duration", dur)
	return out, nil
}

// Reset drops the cached collection. A fill already in flight finishes for its
// waiters but does not repopulate the cache.
func (c *ResponseCache) Reset() {
	c.mu.Lock()
	c.responses = nil
	c.loaded = false
	c.generation++
	c.mu.Unlock()
	c.fills.Forget(fillKey)
	c.log.Info("survey response cache reset")
}
