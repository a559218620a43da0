package profileapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
	"portfolio_backend/internal/feature/enrichment/usecase"
	"portfolio_backend/internal/platform/externalapi/profileapi/dto"
)

// ProfileAPI is a ProfileRepository implementation backed by the external
// security profile endpoint.
type ProfileAPI struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that ProfileAPI implements ProfileRepository.
var _ usecase.ProfileRepository = (*ProfileAPI)(nil)

// NewProfileAPI creates a new ProfileAPI with the given configuration and
// HTTP client.
func NewProfileAPI(cfg Config, client *http.Client) *ProfileAPI {
	return &ProfileAPI{cfg: cfg, client: client}
}

// GetProfile fetches the profile for a symbol and returns it as a
// SecurityProfile. Symbols with Canadian class suffixes are normalized to
// the API's Toronto listing format before lookup.
func (p *ProfileAPI) GetProfile(ctx context.Context, symbol string) (*entity.SecurityProfile, error) {
	q := url.Values{}
	q.Set("symbol", normalizeCanadianSymbol(symbol))
	q.Set("apikey", p.cfg.APIKey)

	u := fmt.Sprintf("%s/profile?%s", p.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("profileapi http %d", res.StatusCode)
	}

	var body dto.ProfileResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("profileapi: %s", body.Message)
	}
	// An empty name means the API has no data for the symbol.
	if body.Name == "" {
		return nil, fmt.Errorf("profileapi: no data for %q", symbol)
	}

	return &entity.SecurityProfile{
		Symbol:   symbol,
		Name:     body.Name,
		Sector:   body.Sector,
		Industry: body.Industry,
		Country:  body.Country,
		Exchange: body.Exchange,
		Currency: body.Currency,
	}, nil
}

// normalizeCanadianSymbol rewrites Canadian dual-class suffixes (".A"/".B")
// to the ".TO" listing suffix the API expects. Other symbols pass through.
func normalizeCanadianSymbol(symbol string) string {
	if strings.HasSuffix(symbol, ".A") || strings.HasSuffix(symbol, ".B") {
		return strings.TrimSuffix(strings.TrimSuffix(symbol, ".A"), ".B") + ".TO"
	}
	return symbol
}
