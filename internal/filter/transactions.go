// Package filter narrows transaction, terminal and user lists by the
// dashboard's filter controls and slices them into pages.
package filter

import (
	"strings"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const (
	AllStatus    = "All Status"
	AllTerminals = "All Terminals"
)

// TransactionFilter is a conjunction of optional predicates. Empty fields
// and the "All ..." placeholders impose no constraint.
type TransactionFilter struct {
	Search   string
	Status   string
	Terminal string
	// Date matches the YYYY-MM-DD part of the timestamp exactly.
	Date string
	// DateFrom and DateTo are inclusive YYYY-MM-DD bounds.
	DateFrom string
	DateTo   string
}

func Transactions(txs []model.EnrichedTransaction, f TransactionFilter) []model.EnrichedTransaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.TrimSpace(f.Status)
	if strings.EqualFold(status, AllStatus) || strings.EqualFold(status, "all") {
		status = ""
	}
	terminal := strings.TrimSpace(f.Terminal)
	if terminal == AllTerminals {
		terminal = ""
	}

	out := make([]model.EnrichedTransaction, 0, len(txs))
	for _, t := range txs {
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if status != "" && !strings.EqualFold(t.Status, status) {
			continue
		}
		if terminal != "" && t.TerminalID != terminal {
			continue
		}
		if !matchesDate(t.Datetime, f) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t model.EnrichedTransaction, term string) bool {
	for _, field := range []string{t.TransactionID, t.MerchantID, t.StoreID, t.TerminalID, t.Status, t.PaymentMethod} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesDate(datetime string, f TransactionFilter) bool {
	if f.Date == "" && f.DateFrom == "" && f.DateTo == "" {
		return true
	}
	if len(datetime) < 10 {
		return false
	}
	day := datetime[:10]

	if f.Date != "" && day != f.Date {
		return false
	}
	if f.DateFrom != "" && day < f.DateFrom {
		return false
	}
	if f.DateTo != "" && day > f.DateTo {
		return false
	}
	return true
}

// TerminalOptions lists the terminal selector: AllTerminals followed by each
// distinct terminal id in first-seen order.
func TerminalOptions(txs []model.EnrichedTransaction) []string {
	seen := make(map[string]bool)
	opts := []string{AllTerminals}
	for _, t := range txs {
		if t.TerminalID == "" || seen[t.TerminalID] {
			continue
		}
		seen[t.TerminalID] = true
		opts = append(opts, t.TerminalID)
	}
	return opts
}
