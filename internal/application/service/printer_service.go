package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/pkg/printer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	settlements  *SettlementService
	businessName string
	printerType  string
	width        int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, settlements *SettlementService, businessName, printerType string, width int) *PrinterService {
	if width <= 0 {
		width = printer.DefaultWidth
	}
	return &PrinterService{
		printer:      p,
		settlements:  settlements,
		businessName: businessName,
		printerType:  printerType,
		width:        width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.Available(),
		Type:       s.printerType,
	}
}

// PrintResult is the receipt and whether it reached a printer.
type PrintResult struct {
	Receipt *entity.SettlementReceipt `json:"receipt"`
	Printed bool                      `json:"printed"`
}

// TestPrint sends a sample receipt to the printer.
func (s *PrinterService) TestPrint(ctx context.Context) (*PrintResult, error) {
	receipt := &entity.SettlementReceipt{
		BusinessName:     s.businessName,
		Date:             time.Now().UTC().Format("2006-01-02"),
		SaleType:         "test",
		TotalBags:        10,
		ExpectedAmount:   decimal.NewFromInt(2500),
		SettledAmount:    decimal.NewFromInt(2500),
		RemainingBalance: decimal.Zero,
		IsSettled:        true,
		Payments: []entity.ReceiptPayment{
			{PaidAt: time.Now().UTC(), Amount: decimal.NewFromInt(2500)},
		},
		PrintedAt: time.Now().UTC(),
	}
	return s.send(ctx, receipt)
}

// PrintSettlementReceipt prints a settlement with its payments. Without a
// printer the receipt is only returned.
func (s *PrinterService) PrintSettlementReceipt(ctx context.Context, settlementID uuid.UUID) (*PrintResult, error) {
	receipt, err := s.settlements.Receipt(ctx, settlementID, s.businessName)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, receipt)
}

func (s *PrinterService) send(ctx context.Context, receipt *entity.SettlementReceipt) (*PrintResult, error) {
	result := &PrintResult{Receipt: receipt}
	if !s.GetStatus().Configured {
		return result, nil
	}
	if err := s.printer.Print(ctx, FormatSettlementReceipt(receipt, s.width)); err != nil {
		log.Printf("Printer error (settlement %s): %v", receipt.SettlementID, err)
		return result, fmt.Errorf("failed to print receipt: %w", err)
	}
	result.Printed = true
	return result, nil
}

// FormatSettlementReceipt converts a receipt into ESC/POS bytes.
func FormatSettlementReceipt(r *entity.SettlementReceipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.Center).
		Bold(true).
		Size(printer.Double).
		Line(r.BusinessName).
		Size(printer.Normal).
		Line("SETTLEMENT RECEIPT").
		Bold(false).
		Align(printer.Left).
		Rule('-')

	doc.Pair("Date:", r.Date)
	if r.SaleType != "" {
		doc.Pair("Sale:", r.SaleType)
	}
	if r.DriverName != "" {
		doc.Pair("Driver:", r.DriverName)
	}
	doc.Pair("Bags:", fmt.Sprintf("%d", r.TotalBags)).
		Rule('-')

	for _, p := range r.Payments {
		doc.Pair(p.PaidAt.Format("02 Jan 15:04"), p.Amount.StringFixed(2))
		if p.Notes != "" {
			doc.Linef("  %s", p.Notes)
		}
	}
	if len(r.Payments) > 0 {
		doc.Rule('-')
	}

	doc.Pair("Expected:", r.ExpectedAmount.StringFixed(2)).
		Pair("Paid:", r.SettledAmount.StringFixed(2)).
		Bold(true).
		Pair("Balance:", r.RemainingBalance.StringFixed(2)).
		Bold(false)

	status := "OUTSTANDING"
	if r.IsSettled {
		status = "SETTLED"
	}
	doc.Rule('-').
		Align(printer.Center).
		Bold(true).
		Line(status).
		Bold(false).
		Linef("Printed %s", r.PrintedAt.Format("2006-01-02 15:04")).
		Align(printer.Left).
		Cut()

	return doc.Bytes()
}
