package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"

	TerminalOnline  = "online"
	TerminalOffline = "offline"
)

type Store struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MerchantID   string        `json:"merchant_id"`
	Terminals    []Terminal    `json:"terminals"`
	Transactions []Transaction `json:"transactions"`
}

type Terminal struct {
	TerminalID string `json:"terminal_id"`
	Status     string `json:"status"`
	Model      string `json:"model,omitempty"`
	Serial     string `json:"serial,omitempty"`
	LastSeen   string `json:"lastSeen,omitempty"`
}

func (t Terminal) Online() bool {
	return t.Status == TerminalOnline
}

// Transaction keeps the upstream timestamp string verbatim; bucket keys are
// cut from it directly. OccurredAt is the parsed value, used for ordering.
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	TerminalID    string          `json:"terminal_id"`
	Datetime      string          `json:"datetime"`
	AuthID        string          `json:"auth_id,omitempty"`
	Provider      string          `json:"provider,omitempty"`
	OccurredAt    time.Time       `json:"-"`
}

func (t Transaction) Succeeded() bool {
	return t.Status == TxStatusSuccess
}

type EnrichedTransaction struct {
	Transaction
	MerchantID string `json:"merchant_id"`
	StoreID    string `json:"store_id"`
	StoreName  string `json:"store_name"`
}

// Availability is the online/total terminal pair. It renders as "online / total".
type Availability struct {
	Online int
	Total  int
}

func (a Availability) String() string {
	return fmt.Sprintf("%d / %d", a.Online, a.Total)
}

func (a Availability) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

type Summary struct {
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	SuccessTransactions int             `json:"successTransactions"`
	TotalTransactions   int             `json:"totalTransactions"`
	SuccessRate         float64         `json:"successRate"`
	TerminalsOnline     Availability    `json:"terminalsOnline"`
}

func (s Summary) FailedTransactions() int {
	return s.TotalTransactions - s.SuccessTransactions
}

type Bucket struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// TerminalInfo is a terminal row joined with its store and most recent transaction.
type TerminalInfo struct {
	TerminalID      string `json:"terminal_id"`
	StoreID         string `json:"storeId"`
	MerchantID      string `json:"merchant_id"`
	Status          string `json:"terminalStatus"`
	Model           string `json:"model,omitempty"`
	Serial          string `json:"serial,omitempty"`
	LastSeen        string `json:"lastSeen,omitempty"`
	LastTransaction string `json:"lastTransaction"`
}

type TransactionDetail struct {
	EnrichedTransaction
	TerminalModel    string `json:"terminal_model"`
	TerminalSerial   string `json:"terminal_serial"`
	TerminalStatus   string `json:"terminal_status"`
	TerminalLastSeen string `json:"terminal_lastSeen"`
}
