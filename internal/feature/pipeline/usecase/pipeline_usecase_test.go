package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enrichusecase "portfolio_backend/internal/feature/enrichment/usecase"
	"portfolio_backend/internal/feature/holdings/domain/entity"
	statementsusecase "portfolio_backend/internal/feature/statements/usecase"
	"portfolio_backend/internal/shared/stagefile"
)

type mockImporter struct {
	result *statementsusecase.ImportResult
	err    error
}

func (m *mockImporter) ImportAll() (*statementsusecase.ImportResult, error) {
	return m.result, m.err
}

type mockEnricher struct {
	err    error
	called bool
	// enrich marks each holding so persistence order can be asserted
	enrich func(holdings []entity.Holding)
}

func (m *mockEnricher) EnrichAll(ctx context.Context, holdings []entity.Holding) (enrichusecase.EnrichStats, error) {
	m.called = true
	if m.enrich != nil {
		m.enrich(holdings)
	}
	return enrichusecase.EnrichStats{Total: len(holdings)}, m.err
}

type mockMerger struct {
	count  int
	err    error
	called bool
}

func (m *mockMerger) IntegrateLatest(ctx context.Context) (int, error) {
	m.called = true
	return m.count, m.err
}

type mockStore struct {
	holdings []entity.Holding
	cash     []entity.CashBalance

	upsertErr error
	cashErr   error
}

func (m *mockStore) UpsertBatch(ctx context.Context, holdings []entity.Holding) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.holdings = append(m.holdings, holdings...)
	return nil
}

func (m *mockStore) UpsertCashBalances(ctx context.Context, balances []entity.CashBalance) error {
	if m.cashErr != nil {
		return m.cashErr
	}
	m.cash = append(m.cash, balances...)
	return nil
}

func sampleImport() *statementsusecase.ImportResult {
	return &statementsusecase.ImportResult{
		Holdings: []entity.Holding{
			{Account: "49815000", Symbol: "RY", Name: "Royal Bank of Canada", MarketValue: 4250.0},
			{Account: "49815000", Symbol: "AAPL", Name: "APPLE INC", MarketValue: 2750.0},
		},
		Cash: []entity.CashBalance{
			{Account: "49815000", Currency: "CAD", Cash: 500.0, CashCAD: 500.0},
		},
		FilesSelected: 1,
	}
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	t.Run("success: all stages run in order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := &mockStore{}
		enricher := &mockEnricher{
			enrich: func(holdings []entity.Holding) {
				for i := range holdings {
					holdings[i].Sector = "Enriched"
				}
			},
		}
		merger := &mockMerger{count: 2}
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, enricher, merger, store, dir)

		err := p.Run(context.Background())
		require.NoError(t, err)

		assert.True(t, enricher.called, "enricher should run")
		assert.True(t, merger.called, "benefits merge should run")
		require.Len(t, store.holdings, 2)
		assert.Equal(t, "Enriched", store.holdings[0].Sector,
			"enrichment must happen before persistence")
		assert.Len(t, store.cash, 1)
	})

	t.Run("success: stage file written with run id and holdings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{}, nil, &mockStore{}, dir)

		err := p.Run(context.Background())
		require.NoError(t, err)

		path, err := stagefile.Latest(dir, "holdings_combined")
		require.NoError(t, err, "a combined stage file should exist")

		var doc struct {
			RunID    string `json:"run_id"`
			Holdings []struct {
				Symbol      string  `json:"symbol"`
				MarketValue float64 `json:"total_market_value"`
			} `json:"holdings"`
			Cash []entity.CashBalance `json:"cash_balances"`
		}
		require.NoError(t, stagefile.Load(path, &doc))
		assert.NotEmpty(t, doc.RunID)
		require.Len(t, doc.Holdings, 2)
		assert.Equal(t, "RY", doc.Holdings[0].Symbol)
		assert.Equal(t, 4250.0, doc.Holdings[0].MarketValue)
		assert.Len(t, doc.Cash, 1)
	})

	t.Run("success: nil benefits merger is skipped", func(t *testing.T) {
		t.Parallel()

		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{}, nil, &mockStore{}, t.TempDir())

		err := p.Run(context.Background())
		assert.NoError(t, err)
	})

	t.Run("success: stage file failure is only logged", func(t *testing.T) {
		t.Parallel()

		// A file where the stage directory should be makes WriteDated fail.
		dir := filepath.Join(t.TempDir(), "stage")
		require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o644))

		store := &mockStore{}
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{}, nil, store, dir)

		err := p.Run(context.Background())
		require.NoError(t, err, "a failed stage file write must not abort the run")
		assert.Len(t, store.holdings, 2, "persistence should still happen")
	})

	t.Run("error: import failure aborts the run", func(t *testing.T) {
		t.Parallel()

		enricher := &mockEnricher{}
		p := NewPipelineUsecase(&mockImporter{err: errors.New("no statements")}, enricher, nil, &mockStore{}, t.TempDir())

		err := p.Run(context.Background())
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "statement import"), "error should name the stage")
		assert.False(t, enricher.called, "later stages must not run")
	})

	t.Run("error: enrichment failure aborts before persistence", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{err: errors.New("resolver down")}, nil, store, t.TempDir())

		err := p.Run(context.Background())
		require.Error(t, err)
		assert.Empty(t, store.holdings, "nothing should be persisted")
	})

	t.Run("error: holding persistence failure", func(t *testing.T) {
		t.Parallel()

		merger := &mockMerger{}
		store := &mockStore{upsertErr: errors.New("db down")}
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{}, merger, store, t.TempDir())

		err := p.Run(context.Background())
		require.Error(t, err)
		assert.False(t, merger.called, "benefits merge must not run after a store failure")
	})

	t.Run("error: cash persistence failure", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{cashErr: errors.New("db down")}
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{}, nil, store, t.TempDir())

		err := p.Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("error: benefits merge failure", func(t *testing.T) {
		t.Parallel()

		merger := &mockMerger{err: errors.New("stage file corrupt")}
		p := NewPipelineUsecase(&mockImporter{result: sampleImport()}, &mockEnricher{}, merger, &mockStore{}, t.TempDir())

		err := p.Run(context.Background())
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "benefits merge"))
	})
}
