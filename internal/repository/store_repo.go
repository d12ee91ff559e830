package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

var ErrUpstream = errors.New("store data source unavailable")

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// StoreRepository reads the store snapshot from the external data source.
// Every call fetches afresh.
type StoreRepository struct {
	baseURL string
	client  *http.Client
}

func NewStoreRepository(baseURL string, timeout time.Duration) *StoreRepository {
	return &StoreRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type rawStore struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	MerchantID   string           `json:"merchant_id"`
	Terminals    []rawTerminal    `json:"terminals"`
	Transactions []rawTransaction `json:"transactions"`
}

type rawTerminal struct {
	TerminalID string `json:"terminal_id"`
	Status     string `json:"status"`
	Model      string `json:"model"`
	Serial     string `json:"serial"`
	LastSeen   string `json:"lastSeen"`
}

type rawTransaction struct {
	TransactionID string    `json:"transaction_id"`
	Amount        rawAmount `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	TerminalID    string    `json:"terminal_id"`
	Datetime      string    `json:"datetime"`
	AuthID        string    `json:"auth_id"`
	Provider      string    `json:"provider"`
}

// rawAmount accepts a JSON number or a numeric string. Unparseable input is
// remembered rather than failing the whole payload.
type rawAmount struct {
	value   decimal.Decimal
	present bool
	invalid string
}

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		a.invalid = s
		return nil
	}
	a.value = d
	a.present = true
	return nil
}

func (r *StoreRepository) FetchStores(ctx context.Context) ([]model.Store, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/stores", nil)
	if err != nil {
		return nil, fmt.Errorf("build stores request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch stores: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: fetch stores: status %d", ErrUpstream, resp.StatusCode)
	}

	var raw []rawStore
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode stores: %v", ErrUpstream, err)
	}

	return parseStores(ctx, raw)
}

// Ping checks that the data source answers. It asks for a single store so
// the probe stays cheap.
func (r *StoreRepository) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/stores?page=1&limit=1", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return nil
}

// parseStores validates the upstream payload. A store without an id, or
// with an id already seen, fails the whole snapshot; individual malformed
// transactions are skipped.
func parseStores(ctx context.Context, raw []rawStore) ([]model.Store, error) {
	stores := make([]model.Store, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rs := range raw {
		id := strings.TrimSpace(rs.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: store %d has no id", ErrUpstream, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate store id %q", ErrUpstream, id)
		}
		seen[id] = struct{}{}

		store := model.Store{
			ID:           id,
			Name:         rs.Name,
			MerchantID:   rs.MerchantID,
			Terminals:    make([]model.Terminal, 0, len(rs.Terminals)),
			Transactions: make([]model.Transaction, 0, len(rs.Transactions)),
		}
		if store.Name == "" {
			store.Name = id
		}

		for _, rt := range rs.Terminals {
			store.Terminals = append(store.Terminals, model.Terminal{
				TerminalID: rt.TerminalID,
				Status:     normalizeTerminalStatus(rt.Status),
				Model:      rt.Model,
				Serial:     rt.Serial,
				LastSeen:   rt.LastSeen,
			})
		}

		for _, rt := range rs.Transactions {
			tx, err := parseTransaction(rt)
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Err(err).
					Str("store_id", id).
					Str("transaction_id", rt.TransactionID).
					Msg("skipping malformed transaction")
				continue
			}
			store.Transactions = append(store.Transactions, tx)
		}

		stores = append(stores, store)
	}
	return stores, nil
}

func parseTransaction(rt rawTransaction) (model.Transaction, error) {
	if rt.Amount.invalid != "" {
		return model.Transaction{}, fmt.Errorf("unparseable amount %q", rt.Amount.invalid)
	}
	amount := decimal.Zero
	if rt.Amount.present {
		amount = rt.Amount.value
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("negative amount %s", amount)
	}

	at, err := ParseDatetime(rt.Datetime)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		TransactionID: rt.TransactionID,
		Amount:        amount,
		Status:        strings.ToLower(strings.TrimSpace(rt.Status)),
		PaymentMethod: rt.PaymentMethod,
		TerminalID:    rt.TerminalID,
		Datetime:      strings.TrimSpace(rt.Datetime),
		AuthID:        rt.AuthID,
		Provider:      rt.Provider,
		OccurredAt:    at,
	}, nil
}

func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", s)
}

func normalizeTerminalStatus(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), model.TerminalOnline) {
		return model.TerminalOnline
	}
	return model.TerminalOffline
}
