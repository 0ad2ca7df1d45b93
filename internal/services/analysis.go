package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/modules/maturity"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// ResponseSource is the read side of ResponseCache.
type ResponseSource interface {
	Load(ctx context.Context) ([]*survey.Response, error)
	Reset()
}

type AnalysisService interface {
	GlobalStats(ctx context.Context) (maturity.GlobalStats, error)
	StatsByGroup(ctx context.Context, dim survey.Dimension) (map[string]maturity.GroupStats, error)
	Correlations(ctx context.Context) (maturity.CorrelationReport, error)
	StrengthsWeaknesses(ctx context.Context) (maturity.StrengthsWeaknesses, error)
	FilterOptions(ctx context.Context) (maturity.FilterOptions, error)
	Axes() []string
	ResetCache()
}

type analysisService struct {
	source  ResponseSource
	themes  maturity.ThemeCatalog
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

func NewAnalysisService(source ResponseSource, themes maturity.ThemeCatalog, baseLog *logger.Logger, metrics *observability.Metrics) AnalysisService {
	return &analysisService{
		source:  source,
		themes:  themes,
		log:     baseLog.With("service", "AnalysisService"),
		metrics: metrics,
		tracer:  observability.Tracer("maturity/services"),
	}
}

// run loads the collection and times fn under a span named after kind.
func run[T any](ctx context.Context, s *analysisService, kind string, fn func([]*survey.Response) T) (T, error) {
	var zero T
	ctx, span := s.tracer.Start(ctx, "analysis."+kind)
	defer span.End()

	responses, err := s.source.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}
	start := time.Now()
	out := fn(responses)
	dur := time.Since(start)
	s.metrics.ObserveAnalysis(kind, dur)
	span.SetAttributes(attribute.Int("maturity.responses", len(responses)))
	s.log.Debug("analysis computed", "kind", kind, "responses", len(responses), "duration", dur)
	return out, nil
}

func (s *analysisService) GlobalStats(ctx context.Context) (maturity.GlobalStats, error) {
	return run(ctx, s, "global_stats", maturity.ComputeGlobalStats)
}

func (s *analysisService) StatsByGroup(ctx context.Context, dim survey.Dimension) (map[string]maturity.GroupStats, error) {
	return run(ctx, s, "stats_by_group", func(rs []*survey.Response) map[string]maturity.GroupStats {
		return maturity.ComputeStatsByGroup(rs, dim)
	})
}

func (s *analysisService) Correlations(ctx context.Context) (maturity.CorrelationReport, error) {
	return run(ctx, s, "correlations", maturity.ComputeCorrelations)
}

func (s *analysisService) StrengthsWeaknesses(ctx context.Context) (maturity.StrengthsWeaknesses, error) {
	return run(ctx, s, "strengths_weaknesses", func(rs []*survey.Response) maturity.StrengthsWeaknesses {
		return maturity.ComputeStrengthsWeaknesses(rs, s.themes)
	})
}

func (s *analysisService) FilterOptions(ctx context.Context) (maturity.FilterOptions, error) {
	return run(ctx, s, "filter_options", maturity.ComputeFilterOptions)
}

func (s *analysisService) Axes() []string {
	return survey.ShortNames()
}

func (s *analysisService) ResetCache() {
	s.source.Reset()
}
