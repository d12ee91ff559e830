package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/analytics"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const exportCurrency = "THB"

type TransactionService struct {
	source StoreSource
}

func NewTransactionService(source StoreSource) *TransactionService {
	return &TransactionService{source: source}
}

type TransactionPage struct {
	Items           []model.EnrichedTransaction `json:"items"`
	Page            int                         `json:"page"`
	PageSize        int                         `json:"page_size"`
	TotalCount      int                         `json:"total_count"`
	TotalPages      int                         `json:"total_pages"`
	Pages           []int                       `json:"pages"`
	Summary         model.Summary               `json:"summary"`
	FilteredSummary model.Summary               `json:"filtered_summary"`
	TerminalOptions []string                    `json:"terminal_options"`
	Stores          access.Options              `json:"stores"`
	Empty           bool                        `json:"empty"`
}

// FilterAndPaginate applies f to txs and returns the requested page of the
// result together with its page window.
func FilterAndPaginate(txs []model.EnrichedTransaction, f filter.TransactionFilter, page, pageSize int) TransactionPage {
	filtered := filter.Transactions(txs, f)
	p := filter.Paginate(filtered, page, pageSize)

	return TransactionPage{
		Items:           p.Items,
		Page:            p.Page,
		PageSize:        p.PageSize,
		TotalCount:      p.TotalCount,
		TotalPages:      p.TotalPages,
		Pages:           filter.PageWindow(p.Page, p.TotalPages, filter.DefaultWindowSize),
		Summary:         analytics.ComputeSummary(txs),
		FilteredSummary: analytics.ComputeSummary(filtered),
		TerminalOptions: filter.TerminalOptions(txs),
	}
}

// List returns one page of the user's transactions in the selected store.
func (s *TransactionService) List(ctx context.Context, user model.User, store string, f filter.TransactionFilter, page, pageSize int) (*TransactionPage, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size %d: %w", pageSize, ErrInvalidInput)
	}

	sc, err := loadScope(ctx, s.source, user, store)
	if err != nil {
		return nil, err
	}

	out := FilterAndPaginate(analytics.Enrich(sc.selected), f, page, pageSize)
	out.Stores = sc.options
	out.Empty = sc.empty()
	return &out, nil
}

// Get returns a transaction from one of the user's stores. Transactions in
// other stores are reported as not found.
func (s *TransactionService) Get(ctx context.Context, user model.User, id string) (*model.TransactionDetail, error) {
	sc, err := loadScope(ctx, s.source, user, access.AllBranch)
	if err != nil {
		return nil, err
	}

	detail, ok := analytics.FindTransaction(sc.selected, id)
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return &detail, nil
}

// ExportCSV renders a transaction as Field,Value rows.
func (s *TransactionService) ExportCSV(ctx context.Context, user model.User, id string) ([]byte, error) {
	if !access.CanExport(user.Role) {
		return nil, fmt.Errorf("export as %s: %w", user.Role, ErrForbidden)
	}

	d, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	datetime := d.Datetime
	if !d.OccurredAt.IsZero() {
		datetime = d.OccurredAt.Format("2006-01-02 15:04:05")
	}

	rows := [][]string{
		{"Field", "Value"},
		{"Transaction ID", d.TransactionID},
		{"Status", d.Status},
		{"Amount", d.Amount.String()},
		{"Currency", exportCurrency},
		{"Payment Method", d.PaymentMethod},
		{"Authorization ID", orDash(d.AuthID)},
		{"Provider", orDash(d.Provider)},
		{"Merchant ID", d.MerchantID},
		{"Store ID", d.StoreID},
		{"Store Name", d.StoreName},
		{"Terminal ID", d.TerminalID},
		{"Terminal Model", d.TerminalModel},
		{"Terminal Serial", d.TerminalSerial},
		{"Date Time", datetime},
	}

	for _, row := range rows[1:] {
		if row[0] != "Amount" {
			row[1] = csvSafe(row[1])
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
