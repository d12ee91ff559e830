// Package access decides which store branches a signed-in user may see and
// which actions their role allows.
package access

import (
	"errors"
	"slices"
	"strings"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

// AllBranch is the synthetic store option meaning "every authorized store".
const AllBranch = "All Branch"

// aggregateStoreID is a roll-up record the data source publishes next to
// the real branches.
const aggregateStoreID = "all-stores"

var ErrStoreNotAuthorized = errors.New("store not authorized")

// isBranch reports whether id names a real branch rather than the data
// source's roll-up record.
func isBranch(id string) bool {
	return !strings.EqualFold(strings.TrimSpace(id), aggregateStoreID)
}

// ResolveAuthorizedStoreIDs lists the store ids the user may view, in the
// order of stores. Admins see every branch.
func ResolveAuthorizedStoreIDs(user model.User, stores []model.Store) []string {
	ids := make([]string, 0, len(stores))
	for _, s := range stores {
		if !isBranch(s.ID) {
			continue
		}
		if user.Role == model.RoleAdmin || slices.Contains(user.StoreBranches, s.ID) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

type Options struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// StoreOptions builds the branch selector. A single authorized store is
// selected outright; several get the AllBranch option first.
func StoreOptions(ids []string) Options {
	switch len(ids) {
	case 0:
		return Options{Options: []string{}}
	case 1:
		return Options{Options: []string{ids[0]}, Selected: ids[0]}
	}

	opts := make([]string, 0, len(ids)+1)
	opts = append(opts, AllBranch)
	opts = append(opts, ids...)
	return Options{Options: opts, Selected: AllBranch}
}

// IsAllSelection reports whether a store selection means the union of
// authorized stores.
func IsAllSelection(selection string) bool {
	switch strings.TrimSpace(selection) {
	case "", AllBranch, "All Stores", "all":
		return true
	}
	return false
}

// SelectStores narrows stores to the selection within the authorized set.
func SelectStores(stores []model.Store, authorized []string, selection string) ([]model.Store, error) {
	all := IsAllSelection(selection)
	if !all && !slices.Contains(authorized, selection) {
		return nil, ErrStoreNotAuthorized
	}

	var out []model.Store
	for _, s := range stores {
		if !slices.Contains(authorized, s.ID) {
			continue
		}
		if all || s.ID == selection {
			out = append(out, s)
		}
	}
	return out, nil
}

// AuthorizedStores is SelectStores over every authorized store.
func AuthorizedStores(user model.User, stores []model.Store) []model.Store {
	out, _ := SelectStores(stores, ResolveAuthorizedStoreIDs(user, stores), AllBranch)
	return out
}

func CanExport(role model.Role) bool {
	return role == model.RoleAdmin || role == model.RoleManager
}

func CanManageUsers(role model.Role) bool {
	return role == model.RoleAdmin
}
