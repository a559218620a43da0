// Package usecase orchestrates the batch pipeline: statement import,
// enrichment, benefits merge and persistence. Stages run sequentially and
// hand data to the next stage in memory; a dated JSON stage file is written
// after import so intermediate results survive a failed run.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	enrichusecase "portfolio_backend/internal/feature/enrichment/usecase"
	"portfolio_backend/internal/feature/holdings/domain/entity"
	statementsusecase "portfolio_backend/internal/feature/statements/usecase"
	"portfolio_backend/internal/shared/stagefile"
)

// combinedPrefix names the stage file written after statement parsing.
const combinedPrefix = "holdings_combined"

// Importer parses the statement directory.
// Following Go convention: interfaces are defined by the consumer.
type Importer interface {
	ImportAll() (*statementsusecase.ImportResult, error)
}

// Enricher classifies parsed holdings in place.
type Enricher interface {
	EnrichAll(ctx context.Context, holdings []entity.Holding) (enrichusecase.EnrichStats, error)
}

// BenefitsMerger merges scraped retirement balances into the store.
type BenefitsMerger interface {
	IntegrateLatest(ctx context.Context) (int, error)
}

// HoldingStore is the persistence surface the pipeline writes to.
type HoldingStore interface {
	UpsertBatch(ctx context.Context, holdings []entity.Holding) error
	UpsertCashBalances(ctx context.Context, balances []entity.CashBalance) error
}

// PipelineUsecase runs the batch stages in order.
type PipelineUsecase struct {
	importer  Importer
	enricher  Enricher
	benefits  BenefitsMerger
	store     HoldingStore
	outputDir string
}

// NewPipelineUsecase creates a PipelineUsecase. benefits may be nil when no
// benefits data source is configured.
func NewPipelineUsecase(importer Importer, enricher Enricher, benefits BenefitsMerger, store HoldingStore, outputDir string) *PipelineUsecase {
	return &PipelineUsecase{
		importer:  importer,
		enricher:  enricher,
		benefits:  benefits,
		store:     store,
		outputDir: outputDir,
	}
}

// stageDocument is the JSON shape of the combined stage file.
type stageDocument struct {
	RunID    string               `json:"run_id"`
	Holdings []stageHolding       `json:"holdings"`
	Cash     []entity.CashBalance `json:"cash_balances"`
}

// stageHolding mirrors entity.Holding with the stage file's field names.
type stageHolding struct {
	Account        string  `json:"account"`
	Product        string  `json:"product"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Quantity       int64   `json:"quantity"`
	LastPrice      float64 `json:"last_price"`
	Currency       string  `json:"currency"`
	ChangeDollar   float64 `json:"change_dollar"`
	ChangePercent  string  `json:"change_percent"`
	BookCost       float64 `json:"total_book_cost"`
	MarketValue    float64 `json:"total_market_value"`
	GainLoss       float64 `json:"unrealized_gain_loss"`
	GainLossPct    string  `json:"unrealized_gain_loss_pct"`
	AverageCost    float64 `json:"average_cost"`
	AnnualDividend float64 `json:"annual_dividend"`
	Sector         string  `json:"sector,omitempty"`
	Region         string  `json:"region,omitempty"`
	Country        string  `json:"country,omitempty"`
	Industry       string  `json:"industry,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	Source         string  `json:"source,omitempty"`
}

// Run executes one pipeline pass. Every run gets a UUID that tags its log
// lines and the stage file it writes.
func (p *PipelineUsecase) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)
	log.Info("pipeline run started")

	// Stage 1: parse statements.
	imported, err := p.importer.ImportAll()
	if err != nil {
		return fmt.Errorf("statement import: %w", err)
	}
	log.Info("statements imported",
		"files", imported.FilesSelected,
		"files_skipped", imported.FilesSkipped,
		"holdings", len(imported.Holdings),
		"cash_balances", len(imported.Cash))

	// Stage file so a failed later stage can be rerun from here.
	if path, err := p.writeStageFile(runID, imported); err != nil {
		log.Error("failed to write stage file", "error", err)
	} else {
		log.Info("stage file written", "path", path)
	}

	// Stage 2: enrichment.
	stats, err := p.enricher.EnrichAll(ctx, imported.Holdings)
	if err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}
	log.Info("holdings enriched", "unclassified", stats.Unclassified)

	// Stage 3: persist.
	if err := p.store.UpsertBatch(ctx, imported.Holdings); err != nil {
		return fmt.Errorf("store holdings: %w", err)
	}
	if err := p.store.UpsertCashBalances(ctx, imported.Cash); err != nil {
		return fmt.Errorf("store cash balances: %w", err)
	}

	// Stage 4: benefits merge.
	if p.benefits != nil {
		merged, err := p.benefits.IntegrateLatest(ctx)
		if err != nil {
			return fmt.Errorf("benefits merge: %w", err)
		}
		log.Info("benefits merged", "entries", merged)
	}

	log.Info("pipeline run finished")
	return nil
}

func (p *PipelineUsecase) writeStageFile(runID string, imported *statementsusecase.ImportResult) (string, error) {
	doc := stageDocument{RunID: runID, Cash: imported.Cash}
	doc.Holdings = make([]stageHolding, 0, len(imported.Holdings))
	for _, h := range imported.Holdings {
		doc.Holdings = append(doc.Holdings, stageHolding{
			Account:        h.Account,
			Product:        h.Product,
			Symbol:         h.Symbol,
			Name:           h.Name,
			Quantity:       h.Quantity,
			LastPrice:      h.LastPrice,
			Currency:       h.Currency,
			ChangeDollar:   h.ChangeDollar,
			ChangePercent:  h.ChangePercent,
			BookCost:       h.BookCost,
			MarketValue:    h.MarketValue,
			GainLoss:       h.GainLoss,
			GainLossPct:    h.GainLossPct,
			AverageCost:    h.AverageCost,
			AnnualDividend: h.AnnualDividend,
			Sector:         h.Sector,
			Region:         h.Region,
			Country:        h.Country,
			Industry:       h.Industry,
			Confidence:     h.Confidence,
			Source:         h.Source,
		})
	}
	return stagefile.WriteDated(p.outputDir, combinedPrefix, doc)
}
