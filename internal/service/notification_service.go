package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/analytics"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

type Notification struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Type     string          `json:"type"`
	StoreID  string          `json:"store_id"`
	Amount   decimal.Decimal `json:"amount"`
	Datetime string          `json:"datetime"`
	Href     string          `json:"href"`
}

type NotificationFeed struct {
	Items []Notification `json:"items"`
	// Total counts every notification in scope, not just the returned ones.
	Total int `json:"total"`
}

// NotificationService turns the transactions of a user's stores into a
// newest-first payment feed.
type NotificationService struct {
	source StoreSource
}

func NewNotificationService(source StoreSource) *NotificationService {
	return &NotificationService{source: source}
}

// List returns up to limit notifications. A zero limit means the default.
func (s *NotificationService) List(ctx context.Context, user model.User, limit int) (*NotificationFeed, error) {
	switch {
	case limit == 0:
		limit = DefaultNotificationLimit
	case limit < 0 || limit > MaxNotificationLimit:
		return nil, fmt.Errorf("limit must be between 1 and %d: %w", MaxNotificationLimit, ErrInvalidInput)
	}

	sc, err := loadScope(ctx, s.source, user, access.AllBranch)
	if err != nil {
		return nil, err
	}

	txs := analytics.Enrich(sc.selected)
	recent := analytics.Recent(txs, limit)
	items := make([]Notification, 0, len(recent))
	for _, tx := range recent {
		items = append(items, notificationFor(tx))
	}
	return &NotificationFeed{Items: items, Total: len(txs)}, nil
}

func notificationFor(tx model.EnrichedTransaction) Notification {
	n := Notification{
		ID:       tx.TransactionID,
		Title:    "Payment Failed",
		Type:     NotificationError,
		StoreID:  tx.StoreID,
		Amount:   tx.Amount,
		Datetime: tx.Datetime,
		Href:     "/api/v1/transactions/" + url.PathEscape(tx.TransactionID),
	}
	if tx.Status == model.TxStatusSuccess {
		n.Title = "Payment Success!"
		n.Type = NotificationSuccess
	}
	n.Message = fmt.Sprintf("ID: %s\nBranch: %s\nAmount: ฿%s", tx.TransactionID, tx.StoreID, money(tx.Amount))
	return n
}
