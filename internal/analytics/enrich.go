package analytics

import (
	"sort"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

// Enrich flattens the stores' transactions into one list, stamping each with
// its owning store, newest first.
func Enrich(stores []model.Store) []model.EnrichedTransaction {
	var n int
	for _, s := range stores {
		n += len(s.Transactions)
	}

	out := make([]model.EnrichedTransaction, 0, n)
	for _, s := range stores {
		for _, t := range s.Transactions {
			out = append(out, model.EnrichedTransaction{
				Transaction: t,
				MerchantID:  s.MerchantID,
				StoreID:     s.ID,
				StoreName:   s.Name,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out
}

// Recent returns at most n transactions from a newest-first list.
func Recent(txs []model.EnrichedTransaction, n int) []model.EnrichedTransaction {
	if len(txs) <= n {
		return txs
	}
	return txs[:n]
}

// FindTransaction looks a transaction up by id and joins it with its terminal.
func FindTransaction(stores []model.Store, id string) (model.TransactionDetail, bool) {
	for _, s := range stores {
		for _, t := range s.Transactions {
			if t.TransactionID != id {
				continue
			}

			detail := model.TransactionDetail{
				EnrichedTransaction: model.EnrichedTransaction{
					Transaction: t,
					MerchantID:  s.MerchantID,
					StoreID:     s.ID,
					StoreName:   s.Name,
				},
				TerminalModel:    "-",
				TerminalSerial:   "-",
				TerminalStatus:   "-",
				TerminalLastSeen: "-",
			}
			for _, term := range s.Terminals {
				if term.TerminalID == t.TerminalID {
					detail.TerminalModel = orDash(term.Model)
					detail.TerminalSerial = orDash(term.Serial)
					detail.TerminalStatus = orDash(term.Status)
					detail.TerminalLastSeen = orDash(term.LastSeen)
					break
				}
			}
			return detail, true
		}
	}
	return model.TransactionDetail{}, false
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
