package filter

import (
	"slices"
	"strings"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

type UserFilter struct {
	Search string
	Role   string
	Store  string
	Status string
}

func Users(users []model.User, f UserFilter) []model.User {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if search != "" && !strings.Contains(userHaystack(u), search) {
			continue
		}
		if active(f.Role) && string(u.Role) != f.Role {
			continue
		}
		if active(f.Store) && !slices.Contains(u.StoreBranches, f.Store) {
			continue
		}
		if active(f.Status) && u.Status != f.Status {
			continue
		}
		out = append(out, u)
	}
	return out
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "all"
}

func userHaystack(u model.User) string {
	return strings.ToLower(strings.Join([]string{
		u.FirstName,
		u.LastName,
		u.Email,
		string(u.Role),
		u.Role.Label(),
		strings.Join(u.StoreBranches, ","),
		u.Status,
	}, " "))
}

type UserStats struct {
	Total    int      `json:"total"`
	Admins   int      `json:"admins"`
	Managers int      `json:"managers"`
	Viewers  int      `json:"viewers"`
	Branches []string `json:"branches"`
}

// CountUsers tallies roles over the filtered list; Branches is collected
// from the full list so the branch selector does not shrink while filtering.
func CountUsers(filtered, all []model.User) UserStats {
	stats := UserStats{Total: len(filtered), Branches: []string{}}
	for _, u := range filtered {
		switch u.Role {
		case model.RoleAdmin:
			stats.Admins++
		case model.RoleManager:
			stats.Managers++
		case model.RoleViewer:
			stats.Viewers++
		}
	}

	seen := make(map[string]bool)
	for _, u := range all {
		for _, b := range u.StoreBranches {
			if !seen[b] {
				seen[b] = true
				stats.Branches = append(stats.Branches, b)
			}
		}
	}
	return stats
}
