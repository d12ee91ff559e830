package filter

import (
	"strings"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

type TerminalFilter struct {
	// Status is "Online" or "Offline"; "All" or empty means any.
	Status string
	Store  string
	Search string
}

func Terminals(infos []model.TerminalInfo, f TerminalFilter) []model.TerminalInfo {
	status := strings.TrimSpace(f.Status)
	if strings.EqualFold(status, "all") {
		status = ""
	}
	store := strings.TrimSpace(f.Store)
	if access.IsAllSelection(store) {
		store = ""
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.TerminalInfo, 0, len(infos))
	for _, t := range infos {
		if status != "" && !strings.EqualFold(t.Status, status) {
			continue
		}
		if store != "" && t.StoreID != store {
			continue
		}
		if search != "" && !terminalMatches(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func terminalMatches(t model.TerminalInfo, term string) bool {
	for _, field := range []string{t.TerminalID, t.Serial, t.Model, t.StoreID, t.Status} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
