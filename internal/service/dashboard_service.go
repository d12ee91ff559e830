package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/analytics"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const recentTransactions = 10

type DashboardService struct {
	source StoreSource
}

func NewDashboardService(source StoreSource) *DashboardService {
	return &DashboardService{source: source}
}

type StoreSummary struct {
	Store        string                      `json:"store"`
	Range        string                      `json:"range"`
	Empty        bool                        `json:"empty"`
	Stores       access.Options              `json:"stores"`
	Summary      model.Summary               `json:"summary"`
	Transactions []model.EnrichedTransaction `json:"transactions"`
	Hourly       []model.Bucket              `json:"hourlySeries"`
	Daily        []model.Bucket              `json:"dailySeries"`
	Series       []model.Bucket              `json:"series"`
	Recent       []model.EnrichedTransaction `json:"recent"`
}

// GetStoreSummary builds the dashboard for one authorized store, or for all
// of them when storeID is empty or "All Branch". rangeToken defaults to 1D.
func (s *DashboardService) GetStoreSummary(ctx context.Context, user model.User, storeID, rangeToken string) (*StoreSummary, error) {
	rangeToken = strings.ToUpper(strings.TrimSpace(rangeToken))
	if rangeToken == "" {
		rangeToken = analytics.Range1D
	}
	if !analytics.ValidRange(rangeToken) {
		return nil, fmt.Errorf("range %q: %w", rangeToken, ErrInvalidInput)
	}

	sc, err := loadScope(ctx, s.source, user, storeID)
	if err != nil {
		return nil, err
	}

	out := &StoreSummary{
		Store:  sc.options.Selected,
		Range:  rangeToken,
		Empty:  sc.empty(),
		Stores: sc.options,
	}
	if out.Empty {
		log.Info().Str("user_id", user.ID).Msg("user has no authorized stores")
	}

	results := make([]analytics.StoreResult, 0, len(sc.selected))
	for _, store := range sc.selected {
		results = append(results, analytics.SummarizeStore(store))
	}
	if len(results) == 1 {
		out.Summary = results[0].Summary
	} else {
		out.Summary = analytics.CombineStoreSummaries(results)
	}

	txs := analytics.Enrich(sc.selected)
	out.Transactions = txs
	out.Hourly = analytics.BucketByHour(txs)
	out.Daily = analytics.BucketByDay(txs)
	out.Series, err = analytics.SeriesForRange(out.Hourly, out.Daily, rangeToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	out.Recent = analytics.Recent(txs, recentTransactions)
	return out, nil
}
