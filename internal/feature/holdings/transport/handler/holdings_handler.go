// Package handler provides the HTTP handlers for the holdings feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/feature/holdings/domain/entity"
	"portfolio_backend/internal/feature/holdings/transport/http/dto"
	"portfolio_backend/internal/feature/holdings/usecase"
)

// HoldingsUsecase defines the read operations the dashboard needs.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type HoldingsUsecase interface {
	ListHoldings(ctx context.Context, account string) ([]entity.Holding, error)
	ListAccounts(ctx context.Context) ([]string, error)
	GetSummary(ctx context.Context) (*usecase.Summary, error)
	GetAllocation(ctx context.Context, by string) ([]usecase.AllocationBucket, error)
}

// HoldingsHandler handles the dashboard's HTTP requests.
type HoldingsHandler struct {
	uc HoldingsUsecase
}

// NewHoldingsHandler creates a new HoldingsHandler.
func NewHoldingsHandler(uc HoldingsUsecase) *HoldingsHandler {
	return &HoldingsHandler{uc: uc}
}

// List handles GET /holdings. An optional ?account= query parameter
// restricts the result to one account.
func (h *HoldingsHandler) List(c *gin.Context) {
	holdings, err := h.uc.ListHoldings(c.Request.Context(), c.Query("account"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.HoldingItem, 0, len(holdings))
	for _, hd := range holdings {
		out = append(out, dto.HoldingItem{
			Account:        hd.Account,
			Product:        hd.Product,
			Symbol:         hd.Symbol,
			Name:           hd.Name,
			Quantity:       hd.Quantity,
			LastPrice:      hd.LastPrice,
			Currency:       hd.Currency,
			BookCost:       hd.BookCost,
			MarketValue:    hd.MarketValue,
			GainLoss:       hd.GainLoss,
			GainLossPct:    hd.GainLossPct,
			AnnualDividend: hd.AnnualDividend,
			Sector:         hd.Sector,
			Region:         hd.Region,
			Country:        hd.Country,
			Industry:       hd.Industry,
			Confidence:     hd.Confidence,
			Source:         hd.Source,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Accounts handles GET /accounts.
func (h *HoldingsHandler) Accounts(c *gin.Context) {
	accounts, err := h.uc.ListAccounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// Summary handles GET /summary.
func (h *HoldingsHandler) Summary(c *gin.Context) {
	s, err := h.uc.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{
		MarketValueCAD: s.MarketValue,
		BookCostCAD:    s.BookCost,
		GainLossCAD:    s.GainLoss,
		AnnualDividend: s.AnnualDividend,
		HoldingCount:   s.HoldingCount,
		AccountCount:   s.AccountCount,
		CashByCurrency: s.CashByCurrency,
		CashCAD:        s.CashCAD,
	})
}

// Allocation handles GET /allocation?by=sector|region|account.
// The grouping defaults to sector.
func (h *HoldingsHandler) Allocation(c *gin.Context) {
	by := c.DefaultQuery("by", usecase.GroupBySector)

	buckets, err := h.uc.GetAllocation(c.Request.Context(), by)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidGrouping) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "by must be one of sector, region, account"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := dto.AllocationResponse{By: by, Buckets: make([]dto.AllocationItem, 0, len(buckets))}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, dto.AllocationItem{
			Label:          b.Label,
			MarketValueCAD: b.MarketValue,
			Percent:        b.Percent,
			Count:          b.Count,
		})
	}
	c.JSON(http.StatusOK, out)
}
