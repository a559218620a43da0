package usecase

import (
	"context"
	"log/slog"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
	holdingentity "portfolio_backend/internal/feature/holdings/domain/entity"
)

// EnrichStats counts how each holding was resolved during a batch run.
type EnrichStats struct {
	Total        int
	AlreadyDone  int
	BySource     map[string]int
	Unclassified int
}

// EnrichUsecase applies the classification chain to parsed holdings.
type EnrichUsecase struct {
	resolver ClassificationResolver
}

// NewEnrichUsecase creates an EnrichUsecase over the given resolver
// (typically the chain wrapped in the Redis cache decorator).
func NewEnrichUsecase(resolver ClassificationResolver) *EnrichUsecase {
	return &EnrichUsecase{resolver: resolver}
}

// EnrichAll classifies every holding that is not yet classified, mutating
// the slice in place and returning run statistics. A resolver error on one
// holding is logged and the batch continues.
func (u *EnrichUsecase) EnrichAll(ctx context.Context, holdings []holdingentity.Holding) (EnrichStats, error) {
	stats := EnrichStats{Total: len(holdings), BySource: map[string]int{}}

	for i := range holdings {
		h := &holdings[i]
		if h.IsClassified() {
			stats.AlreadyDone++
			continue
		}

		c, err := u.resolver.Resolve(ctx, h.Symbol, h.Name, h.Product)
		if err != nil {
			if ctx.Err() != nil {
				return stats, err
			}
			slog.Error("failed to classify holding", "symbol", h.Symbol, "error", err)
			c = entity.Unknown(h.Symbol, h.Name)
		}

		h.Sector = c.Sector
		h.Region = c.Region
		h.Country = c.Country
		h.Industry = c.Industry
		h.Confidence = c.Confidence
		h.Source = c.Source

		stats.BySource[c.Source]++
		if c.Source == entity.SourceNone {
			stats.Unclassified++
		}
	}

	slog.Info("enrichment completed",
		"total", stats.Total,
		"already_classified", stats.AlreadyDone,
		"by_source", stats.BySource,
		"unclassified", stats.Unclassified)
	return stats, nil
}
