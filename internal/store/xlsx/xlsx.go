// Package xlsx persists the sales ledger as a single-sheet workbook, the
// canonical store for a single-register deployment. Every mutation is a
// whole-file read-modify-write: read the full history, change exactly one
// record at the tail, rewrite the workbook. That keeps each call atomic from
// the caller's perspective but assumes one writer per file.
package xlsx

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/money"
	"hotdogstand/backend/internal/store"
)

const sheetName = "Sales"

// header is the canonical current schema, in column order. Older files may
// lack some of these columns (the schema before discounts/tips/card fees);
// reads map columns by name and treat absent ones as zero, and the next
// append rewrites the file with this header without dropping any row.
var header = []string{
	"Timestamp", "Date", "Items", "Subtotal", "Discount", "Tax", "Tip",
	"Card Fee", "Total", "Payment Method", "Notes", "Cash Received", "Change",
}

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Append(ctx context.Context, record domain.SaleRecord) error {
	if record.Timestamp == "" || record.Date == "" {
		return store.ErrInvalidSale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAllLocked()
	records = append(records, record)
	return s.writeAllLocked(records)
}

func (s *Store) RemoveLast(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAllLocked()
	if len(records) == 0 {
		return false, nil
	}
	if err := s.writeAllLocked(records[:len(records)-1]); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ReadAll(ctx context.Context) ([]domain.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAllLocked(), nil
}

// readAllLocked never fails: a missing, unopenable or malformed workbook is
// an empty history.
func (s *Store) readAllLocked() []domain.SaleRecord {
	if _, err := os.Stat(s.path); err != nil {
		return []domain.SaleRecord{}
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		log.Printf("[xlsx-ledger] unreadable workbook %s, treating as empty: %v", s.path, err)
		return []domain.SaleRecord{}
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		// Fall back to whatever sheet the workbook leads with.
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return []domain.SaleRecord{}
		}
		rows, err = f.GetRows(sheets[0])
		if err != nil {
			return []domain.SaleRecord{}
		}
	}
	if len(rows) < 2 {
		return []domain.SaleRecord{}
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIdx[strings.TrimSpace(name)] = i
	}

	records := make([]domain.SaleRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := colIdx[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		record := domain.SaleRecord{
			Timestamp:         cell("Timestamp"),
			Date:              cell("Date"),
			Items:             cell("Items"),
			SubtotalCents:     money.ParseOrZero(cell("Subtotal")),
			DiscountCents:     money.ParseOrZero(cell("Discount")),
			TaxCents:          money.ParseOrZero(cell("Tax")),
			TipCents:          money.ParseOrZero(cell("Tip")),
			CardFeeCents:      money.ParseOrZero(cell("Card Fee")),
			TotalCents:        money.ParseOrZero(cell("Total")),
			PaymentMethod:     cell("Payment Method"),
			Notes:             cell("Notes"),
			CashReceivedCents: money.ParseOrZero(cell("Cash Received")),
			ChangeCents:       money.ParseOrZero(cell("Change")),
		}
		if record.Timestamp == "" && record.Date == "" && record.Items == "" {
			continue
		}
		records = append(records, record)
	}
	return records
}

func (s *Store) writeAllLocked(records []domain.SaleRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range header {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cellRef, name); err != nil {
			return err
		}
	}

	for i, record := range records {
		values := []any{
			record.Timestamp,
			record.Date,
			record.Items,
			record.SubtotalCents.Dollars(),
			record.DiscountCents.Dollars(),
			record.TaxCents.Dollars(),
			record.TipCents.Dollars(),
			record.CardFeeCents.Dollars(),
			record.TotalCents.Dollars(),
			record.PaymentMethod,
			record.Notes,
			record.CashReceivedCents.Dollars(),
			record.ChangeCents.Dollars(),
		}
		for col, value := range values {
			cellRef, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cellRef, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save ledger %s: %w", s.path, err)
	}
	return nil
}
