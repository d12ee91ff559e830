// Package analytics turns store snapshots into dashboard figures. Everything
// here is a pure function of its input.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

// ComputeSummary totals a transaction set. Only successful transactions
// contribute to TotalAmount; TerminalsOnline is left zero.
func ComputeSummary(txs []model.EnrichedTransaction) model.Summary {
	var s model.Summary
	s.TotalAmount = decimal.Zero

	for _, t := range txs {
		s.TotalTransactions++
		if !t.Succeeded() {
			continue
		}
		s.SuccessTransactions++
		s.TotalAmount = s.TotalAmount.Add(t.Amount)
	}

	s.SuccessRate = SuccessRate(s.SuccessTransactions, s.TotalTransactions)
	return s
}

// SuccessRate is success/total as a percentage rounded to 2 places, 0 when total is 0.
func SuccessRate(success, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(success)/float64(total)*10000) / 100
}

func ComputeTerminalAvailability(terminals []model.Terminal) model.Availability {
	a := model.Availability{Total: len(terminals)}
	for _, t := range terminals {
		if t.Online() {
			a.Online++
		}
	}
	return a
}

// StoreResult is one store's contribution to a combined summary.
type StoreResult struct {
	StoreID      string
	Summary      model.Summary
	Availability model.Availability
}

// SummarizeStore computes the summary and terminal availability of a single store.
func SummarizeStore(store model.Store) StoreResult {
	summary := ComputeSummary(Enrich([]model.Store{store}))
	availability := ComputeTerminalAvailability(store.Terminals)
	summary.TerminalsOnline = availability

	return StoreResult{
		StoreID:      store.ID,
		Summary:      summary,
		Availability: availability,
	}
}

// CombineStoreSummaries sums per-store results. The success rate is derived
// again from the combined counts rather than averaged.
func CombineStoreSummaries(results []StoreResult) model.Summary {
	combined := model.Summary{TotalAmount: decimal.Zero}

	for _, r := range results {
		combined.TotalAmount = combined.TotalAmount.Add(r.Summary.TotalAmount)
		combined.SuccessTransactions += r.Summary.SuccessTransactions
		combined.TotalTransactions += r.Summary.TotalTransactions
		combined.TerminalsOnline.Online += r.Availability.Online
		combined.TerminalsOnline.Total += r.Availability.Total
	}

	combined.SuccessRate = SuccessRate(combined.SuccessTransactions, combined.TotalTransactions)
	return combined
}
