package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

// StoreSource yields one consistent snapshot of all stores.
type StoreSource interface {
	FetchStores(ctx context.Context) ([]model.Store, error)
}

type scope struct {
	all        []model.Store
	authorized []string
	selected   []model.Store
	options    access.Options
}

func (s scope) empty() bool {
	return len(s.authorized) == 0
}

// loadScope fetches the snapshot and narrows it to the user's stores and the
// requested selection. Any fetch failure fails the whole request.
func loadScope(ctx context.Context, src StoreSource, user model.User, selection string) (scope, error) {
	stores, err := src.FetchStores(ctx)
	if err != nil {
		return scope{}, err
	}

	ids := access.ResolveAuthorizedStoreIDs(user, stores)
	opts := access.StoreOptions(ids)
	if len(ids) == 1 && access.IsAllSelection(selection) {
		selection = ids[0]
	}

	selected, err := access.SelectStores(stores, ids, selection)
	if errors.Is(err, access.ErrStoreNotAuthorized) {
		return scope{}, fmt.Errorf("store %q: %w", selection, ErrForbidden)
	}
	if err != nil {
		return scope{}, err
	}
	if !access.IsAllSelection(selection) {
		opts.Selected = selection
	}

	return scope{all: stores, authorized: ids, selected: selected, options: opts}, nil
}
