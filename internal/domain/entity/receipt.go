package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptPayment is one payment line on a settlement receipt.
type ReceiptPayment struct {
	PaidAt time.Time       `json:"paidAt"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// SettlementReceipt is the printable view of a settlement. It is composed at
// print time and never stored.
type SettlementReceipt struct {
	BusinessName     string           `json:"businessName"`
	SettlementID     uuid.UUID        `json:"settlementId"`
	Date             string           `json:"date"`
	SaleType         string           `json:"saleType"`
	DriverName       string           `json:"driverName,omitempty"`
	TotalBags        int              `json:"totalBags"`
	ExpectedAmount   decimal.Decimal  `json:"expectedAmount"`
	SettledAmount    decimal.Decimal  `json:"settledAmount"`
	RemainingBalance decimal.Decimal  `json:"remainingBalance"`
	IsSettled        bool             `json:"isSettled"`
	Payments         []ReceiptPayment `json:"payments"`
	PrintedAt        time.Time        `json:"printedAt"`
}
