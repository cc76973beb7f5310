package estimate

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"crawlreceipt/internal/estimate/providers"
	"crawlreceipt/pkg/domain"
)

const (
	resultOK    = "ok"
	resultEmpty = "empty"
)

// maxBlocks queries every provider in parallel under one deadline and returns
// the largest block count seen. Failed, cancelled or late lookups count as 0.
func (s *Service) maxBlocks(ctx context.Context, key domain.Key) int {
	if len(s.providers) == 0 {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan indexResult, len(s.providers))

	for _, p := range s.providers {
		// Tasks never return an error, so one failure cannot cancel its siblings.
		g.Go(func() error {
			results <- s.queryIndex(gctx, p, key)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	best := 0
	received := 0
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return best
			}
			received++
			best = max(best, r.blocks)
		case <-ctx.Done():
			// Keep whatever already arrived; stop waiting for the rest.
			for {
				select {
				case r, ok := <-results:
					if !ok {
						return best
					}
					received++
					best = max(best, r.blocks)
				default:
					s.logger.DebugContext(ctx, "index fan-out deadline reached",
						"domain", key.String(),
						"answered", received,
						"pending", len(s.providers)-received,
					)
					return best
				}
			}
		}
	}
}

// queryIndex asks one provider for its block count, mapping every failure,
// including a panic inside the provider, to zero.
func (s *Service) queryIndex(ctx context.Context, p providers.Provider, key domain.Key) (res indexResult) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "estimate.QueryIndex",
		trace.WithAttributes(attribute.String("domain", key.String())))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("index lookup panic: %v", r)
			s.logger.ErrorContext(ctx, "index lookup panicked",
				"index", res.index,
				"domain", key.String(),
				"error", err,
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "index lookup fault")
			s.metrics.ObserveIndexQuery(res.index, string(providers.ErrorInternal), time.Since(start))
			res.blocks = 0
		}
	}()

	res.index = p.ID()
	span.SetAttributes(attribute.String("index", res.index))

	blocks, err := p.BlockCount(ctx, key)
	if err != nil {
		category, categorised := providers.CategoryOf(err)
		if ctx.Err() != nil && !categorised {
			category = providers.ErrorTimeout
		}
		s.logger.DebugContext(ctx, "index lookup failed",
			"index", res.index,
			"domain", key.String(),
			"category", string(category),
			"error", err,
		)
		span.RecordError(err)
		span.SetAttributes(attribute.String("result", string(category)))
		s.metrics.ObserveIndexQuery(res.index, string(category), time.Since(start))
		return res
	}

	if blocks <= 0 {
		span.SetAttributes(attribute.String("result", resultEmpty))
		s.metrics.ObserveIndexQuery(res.index, resultEmpty, time.Since(start))
		return res
	}

	span.SetAttributes(attribute.String("result", resultOK), attribute.Int("blocks", blocks))
	s.metrics.ObserveIndexQuery(res.index, resultOK, time.Since(start))
	res.blocks = blocks
	return res
}
