package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/analytics"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

type TerminalService struct {
	source StoreSource
}

func NewTerminalService(source StoreSource) *TerminalService {
	return &TerminalService{source: source}
}

type TerminalPage struct {
	Items      []model.TerminalInfo `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalCount int                  `json:"total_count"`
	TotalPages int                  `json:"total_pages"`
	Pages      []int                `json:"pages"`
	Online     int                  `json:"online"`
	Offline    int                  `json:"offline"`
	Total      int                  `json:"total"`
	Stores     access.Options       `json:"stores"`
}

// List pages through the terminals of the user's stores. Online/Offline/Total
// count every authorized terminal regardless of the filter.
func (s *TerminalService) List(ctx context.Context, user model.User, f filter.TerminalFilter, page, pageSize int) (*TerminalPage, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size %d: %w", pageSize, ErrInvalidInput)
	}

	sc, err := loadScope(ctx, s.source, user, access.AllBranch)
	if err != nil {
		return nil, err
	}
	if !access.IsAllSelection(f.Store) && !slices.Contains(sc.authorized, f.Store) {
		return nil, fmt.Errorf("store %q: %w", f.Store, ErrForbidden)
	}

	infos := analytics.BuildTerminalInfos(sc.selected)
	online, offline := analytics.CountByStatus(infos)

	p := filter.Paginate(filter.Terminals(infos, f), page, pageSize)
	return &TerminalPage{
		Items:      p.Items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		Pages:      filter.PageWindow(p.Page, p.TotalPages, filter.DefaultWindowSize),
		Online:     online,
		Offline:    offline,
		Total:      len(infos),
		Stores:     sc.options,
	}, nil
}

func (s *TerminalService) Get(ctx context.Context, user model.User, terminalID string) (*model.TerminalInfo, error) {
	sc, err := loadScope(ctx, s.source, user, access.AllBranch)
	if err != nil {
		return nil, err
	}

	info, ok := analytics.FindTerminal(sc.selected, terminalID)
	if !ok {
		return nil, fmt.Errorf("terminal %s: %w", terminalID, ErrNotFound)
	}
	return &info, nil
}
