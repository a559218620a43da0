// Package usecase implements the tiered classification logic of the
// enrichment feature.
package usecase

import (
	"context"
	"log/slog"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
	"portfolio_backend/internal/shared/ratelimiter"
)

// CuratedTable is the hand-maintained symbol lookup, the first tier.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type CuratedTable interface {
	Lookup(symbol string) (entity.Classification, bool)
}

// ProfileRepository abstracts the external financial data API, the second tier.
type ProfileRepository interface {
	GetProfile(ctx context.Context, symbol string) (*entity.SecurityProfile, error)
}

// NameClassifier derives a classification from an ETF/ETN name, the third tier.
type NameClassifier interface {
	ClassifyName(symbol, name string) (entity.Classification, bool)
}

// LLMClassifier asks a language model for a classification, the last tier.
type LLMClassifier interface {
	Classify(ctx context.Context, symbol, name, product string) (entity.Classification, error)
}

// ClassificationResolver resolves one holding to a classification. The Redis
// cache decorates this interface so reruns skip the external tiers.
type ClassificationResolver interface {
	Resolve(ctx context.Context, symbol, name, product string) (entity.Classification, error)
}

// ChainResolver walks the tiers in trust order and returns the first
// confident answer. Tiers may be nil, in which case they are skipped; a
// holding no tier can place resolves to the Unknown classification.
type ChainResolver struct {
	curated     CuratedTable
	profiles    ProfileRepository
	names       NameClassifier
	llm         LLMClassifier
	rateLimiter ratelimiter.RateLimiterInterface
}

var _ ClassificationResolver = (*ChainResolver)(nil)

// NewChainResolver creates a ChainResolver. The rate limiter guards the
// tiers that call external services (profile API and LLM).
func NewChainResolver(curated CuratedTable, profiles ProfileRepository, names NameClassifier, llm LLMClassifier, rateLimiter ratelimiter.RateLimiterInterface) *ChainResolver {
	return &ChainResolver{
		curated:     curated,
		profiles:    profiles,
		names:       names,
		llm:         llm,
		rateLimiter: rateLimiter,
	}
}

// isETFProduct gates the name rules tier: keyword parsing of company names
// produces junk, so it only runs for exchange-traded products.
func isETFProduct(product string) bool {
	return product == "ETFs and ETNs" || product == "ETF" || product == "ETN"
}

// Resolve classifies one holding. A tier failure is logged and the chain
// falls through to the next tier; Resolve itself only errors on context
// cancellation.
func (r *ChainResolver) Resolve(ctx context.Context, symbol, name, product string) (entity.Classification, error) {
	// Tier 1: curated table.
	if r.curated != nil {
		if c, ok := r.curated.Lookup(symbol); ok {
			c.Name = name
			return c, nil
		}
	}

	// Tier 2: profile API.
	if r.profiles != nil {
		if err := ctx.Err(); err != nil {
			return entity.Classification{}, err
		}
		r.rateLimiter.WaitIfNeeded()
		profile, err := r.profiles.GetProfile(ctx, symbol)
		if err != nil {
			slog.Warn("profile lookup failed", "symbol", symbol, "error", err)
		} else if c := FromProfile(symbol, name, profile); c.Confident() {
			return c, nil
		}
	}

	// Tier 3: ETF name rules.
	if r.names != nil && isETFProduct(product) {
		if c, ok := r.names.ClassifyName(symbol, name); ok && c.Confident() {
			return c, nil
		}
	}

	// Tier 4: LLM.
	if r.llm != nil {
		if err := ctx.Err(); err != nil {
			return entity.Classification{}, err
		}
		r.rateLimiter.WaitIfNeeded()
		c, err := r.llm.Classify(ctx, symbol, name, product)
		if err != nil {
			slog.Warn("llm classification failed", "symbol", symbol, "error", err)
		} else if c.Confident() {
			return c, nil
		}
	}

	return entity.Unknown(symbol, name), nil
}
