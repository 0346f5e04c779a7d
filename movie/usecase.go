package movie

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Service is the movie gateway. None of its operations fail: any problem
// with the catalog is logged and turned into an empty list.
type Service interface {
	SearchByTitle(ctx context.Context, query string) []Summary
	ListPopular(ctx context.Context) []Summary
	ListTrending(ctx context.Context) []Summary
	ListUpcoming(ctx context.Context) []Summary
	ListByCategory(ctx context.Context, c Category) []Summary
}

// Reporter forwards failures to an error tracker.
type Reporter interface {
	Report(ctx context.Context, err error, tags map[string]string)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, error, map[string]string) {}

type Option func(uc *Usecase)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(uc *Usecase) {
		if l != nil {
			uc.logger = l
		}
	}
}

func WithReporter(r Reporter) Option {
	return func(uc *Usecase) {
		if r != nil {
			uc.reporter = r
		}
	}
}

type Usecase struct {
	c        Catalog
	logger   *zap.SugaredLogger
	reporter Reporter
}

func NewUsecase(c Catalog, opts ...Option) *Usecase {
	uc := &Usecase{
		c:        c,
		logger:   zap.NewNop().Sugar(),
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) SearchByTitle(ctx context.Context, query string) []Summary {
	if !uc.configured(ctx, "search") {
		return []Summary{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []Summary{}
	}

	return uc.collect(ctx, "search", func(ctx context.Context) ([]Summary, error) {
		return uc.c.Search(ctx, query)
	})
}

func (uc *Usecase) ListPopular(ctx context.Context) []Summary {
	if !uc.configured(ctx, "popular") {
		return []Summary{}
	}
	return uc.collect(ctx, "popular", uc.c.Popular)
}

func (uc *Usecase) ListTrending(ctx context.Context) []Summary {
	if !uc.configured(ctx, "trending") {
		return []Summary{}
	}
	return uc.collect(ctx, "trending", uc.c.Trending)
}

func (uc *Usecase) ListUpcoming(ctx context.Context) []Summary {
	if !uc.configured(ctx, "upcoming") {
		return []Summary{}
	}
	return uc.collect(ctx, "upcoming", uc.c.Upcoming)
}

func (uc *Usecase) ListByCategory(ctx context.Context, c Category) []Summary {
	switch c {
	case CategoryTrending:
		return uc.ListTrending(ctx)
	case CategoryUpcoming:
		return uc.ListUpcoming(ctx)
	case CategoryPopular:
		return uc.ListPopular(ctx)
	default:
		uc.logger.Warnw("unknown movie category", "category", string(c))
		return []Summary{}
	}
}

func (uc *Usecase) configured(ctx context.Context, op string) bool {
	if uc.c != nil && uc.c.Configured() {
		return true
	}
	uc.fail(ctx, op, &CatalogError{Kind: FailureConfiguration, Op: op, Err: ErrNotConfigured})
	return false
}

func (uc *Usecase) collect(ctx context.Context, op string, fetch func(context.Context) ([]Summary, error)) []Summary {
	results, err := fetch(ctx)
	if err != nil {
		uc.fail(ctx, op, err)
		return []Summary{}
	}
	if results == nil {
		return []Summary{}
	}
	return results
}

func (uc *Usecase) fail(ctx context.Context, op string, err error) {
	kind := KindOf(err)
	fields := []interface{}{"op", op, "kind", string(kind), "error", err.Error()}

	var ce *CatalogError
	if errors.As(err, &ce) && ce.StatusCode != 0 {
		fields = append(fields, "status", ce.StatusCode, "reason", ce.Status)
	}

	if kind == FailureConfiguration {
		uc.logger.Warnw(ErrNotConfigured.Error(), fields...)
		return
	}

	uc.logger.Errorw("catalog request failed", fields...)
	uc.reporter.Report(ctx, err, map[string]string{
		"catalog.op":   op,
		"catalog.kind": string(kind),
	})
}
