package service

import (
	"context"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

type StoreService struct {
	source StoreSource
}

func NewStoreService(source StoreSource) *StoreService {
	return &StoreService{source: source}
}

type StoreRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MerchantID string `json:"merchant_id"`
	Terminals  int    `json:"terminals"`
}

type AuthorizedStores struct {
	IDs     []string       `json:"ids"`
	Stores  []StoreRef     `json:"stores"`
	Options access.Options `json:"options"`
}

// GetAuthorizedStores lists the stores the user may view, in upstream order.
func (s *StoreService) GetAuthorizedStores(ctx context.Context, user model.User) (*AuthorizedStores, error) {
	stores, err := s.source.FetchStores(ctx)
	if err != nil {
		return nil, err
	}

	ids := access.ResolveAuthorizedStoreIDs(user, stores)
	refs := make([]StoreRef, 0, len(ids))
	for _, st := range access.AuthorizedStores(user, stores) {
		refs = append(refs, StoreRef{
			ID:         st.ID,
			Name:       st.Name,
			MerchantID: st.MerchantID,
			Terminals:  len(st.Terminals),
		})
	}

	return &AuthorizedStores{IDs: ids, Stores: refs, Options: access.StoreOptions(ids)}, nil
}
