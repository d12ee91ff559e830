package analytics

import (
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const (
	DisplayOnline  = "Online"
	DisplayOffline = "Offline"
)

// BuildTerminalInfos produces one row per terminal, in store then terminal
// order, with the timestamp of the terminal's latest transaction or "-".
func BuildTerminalInfos(stores []model.Store) []model.TerminalInfo {
	out := []model.TerminalInfo{}
	for _, s := range stores {
		latest := latestByTerminal(s.Transactions)
		for _, t := range s.Terminals {
			out = append(out, terminalInfo(s, t, latest))
		}
	}
	return out
}

// FindTerminal returns the first terminal with the given id across stores.
func FindTerminal(stores []model.Store, terminalID string) (model.TerminalInfo, bool) {
	for _, s := range stores {
		for _, t := range s.Terminals {
			if t.TerminalID == terminalID {
				return terminalInfo(s, t, latestByTerminal(s.Transactions)), true
			}
		}
	}
	return model.TerminalInfo{}, false
}

// CountByStatus counts rows per display status.
func CountByStatus(infos []model.TerminalInfo) (online, offline int) {
	for _, t := range infos {
		if t.Status == DisplayOnline {
			online++
		} else {
			offline++
		}
	}
	return online, offline
}

func terminalInfo(s model.Store, t model.Terminal, latest map[string]model.Transaction) model.TerminalInfo {
	status := DisplayOffline
	if t.Online() {
		status = DisplayOnline
	}

	last := "-"
	if tx, ok := latest[t.TerminalID]; ok {
		last = tx.Datetime
	}

	return model.TerminalInfo{
		TerminalID:      t.TerminalID,
		StoreID:         s.ID,
		MerchantID:      s.MerchantID,
		Status:          status,
		Model:           t.Model,
		Serial:          t.Serial,
		LastSeen:        t.LastSeen,
		LastTransaction: last,
	}
}

func latestByTerminal(txs []model.Transaction) map[string]model.Transaction {
	latest := make(map[string]model.Transaction)
	for _, tx := range txs {
		cur, ok := latest[tx.TerminalID]
		if !ok || tx.OccurredAt.After(cur.OccurredAt) {
			latest[tx.TerminalID] = tx
		}
	}
	return latest
}
