package report

import (
	"fmt"
	"testing"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/money"
)

func cashSale(date string, total money.Cents, received money.Cents, change money.Cents, items string) domain.SaleRecord {
	return domain.SaleRecord{
		Timestamp:         date + " 12:00:00",
		Date:              date,
		Items:             items,
		TotalCents:        total,
		PaymentMethod:     "cash",
		CashReceivedCents: received,
		ChangeCents:       change,
	}
}

func TestSummarizeEmptyDay(t *testing.T) {
	summary := Summarize(nil, "2026-08-29")

	if summary.Transactions != 0 || summary.RevenueTotalCents != 0 {
		t.Fatalf("empty day should be all zeroes, got %+v", summary)
	}
	if len(summary.ByPayment) != 3 {
		t.Fatalf("expected 3 payment buckets, got %d", len(summary.ByPayment))
	}
	if len(summary.TopItems) != 0 {
		t.Fatalf("expected no top items, got %+v", summary.TopItems)
	}
}

func TestSummarizeFiltersByDate(t *testing.T) {
	records := []domain.SaleRecord{
		cashSale("2026-08-28", 918, 1000, 82, "2x Hotdog @ 3.50"),
		cashSale("2026-08-29", 918, 1000, 82, "2x Hotdog @ 3.50"),
	}

	summary := Summarize(records, "2026-08-29")
	if summary.Transactions != 1 {
		t.Fatalf("expected 1 transaction on the date, got %d", summary.Transactions)
	}
	if summary.RevenueTotalCents != 918 {
		t.Fatalf("revenue = %d, want 918", summary.RevenueTotalCents)
	}
}

func TestSummarizePaymentPartitions(t *testing.T) {
	records := []domain.SaleRecord{
		cashSale("2026-08-29", 918, 1000, 82, ""),
		{Date: "2026-08-29", TotalCents: 937, PaymentMethod: "Card", CardFeeCents: 27},
		{Date: "2026-08-29", TotalCents: 500, PaymentMethod: "voucher"},
	}

	summary := Summarize(records, "2026-08-29")

	byMethod := make(map[string]domain.PaymentBreakdown)
	for _, bucket := range summary.ByPayment {
		byMethod[bucket.PaymentMethod] = bucket
	}

	if got := byMethod["cash"]; got.Transactions != 1 || got.TotalCents != 918 {
		t.Fatalf("cash bucket wrong: %+v", got)
	}
	if got := byMethod["card"]; got.Transactions != 1 || got.TotalCents != 937 {
		t.Fatalf("card bucket should match case-insensitively: %+v", got)
	}
	if got := byMethod["other"]; got.Transactions != 1 || got.TotalCents != 500 {
		t.Fatalf("unknown methods should land in other: %+v", got)
	}
	if summary.CardFeesCents != 27 {
		t.Fatalf("card fees = %d, want 27", summary.CardFeesCents)
	}
}

func TestSummarizeExpectedDrawer(t *testing.T) {
	records := []domain.SaleRecord{
		// Normal cash sale: drawer keeps received minus change.
		cashSale("2026-08-29", 918, 1000, 82, ""),
		// Legacy record without a captured cash amount: falls back to total.
		{Date: "2026-08-29", TotalCents: 500, PaymentMethod: "cash"},
		// Card sales never touch the drawer.
		{Date: "2026-08-29", TotalCents: 937, PaymentMethod: "card"},
	}

	summary := Summarize(records, "2026-08-29")
	if summary.ExpectedCashDrawerCents != 918+500 {
		t.Fatalf("expected drawer = %d, want %d", summary.ExpectedCashDrawerCents, 918+500)
	}
}

func TestSummarizeTopItems(t *testing.T) {
	records := []domain.SaleRecord{
		cashSale("2026-08-29", 0, 0, 0, "2x Hotdog @ 3.50; 1x Soda @ 1.50"),
		cashSale("2026-08-29", 0, 0, 0, "1x Hotdog @ 3.50; 1x Chips @ 1.25"),
	}

	summary := Summarize(records, "2026-08-29")
	if len(summary.TopItems) != 3 {
		t.Fatalf("expected 3 items, got %+v", summary.TopItems)
	}
	if summary.TopItems[0].Item != "Hotdog" || summary.TopItems[0].Qty != 3 {
		t.Fatalf("top item wrong: %+v", summary.TopItems[0])
	}
	// Soda and Chips tie at 1; Soda was seen first.
	if summary.TopItems[1].Item != "Soda" || summary.TopItems[2].Item != "Chips" {
		t.Fatalf("tie should break by first encounter: %+v", summary.TopItems)
	}
}

func TestSummarizeTopItemsTruncatesToTen(t *testing.T) {
	var items string
	for i := 0; i < 12; i++ {
		if i > 0 {
			items += "; "
		}
		items += fmt.Sprintf("%dx Item-%02d @ 1.00", i+1, i)
	}

	summary := Summarize([]domain.SaleRecord{cashSale("2026-08-29", 0, 0, 0, items)}, "2026-08-29")
	if len(summary.TopItems) != 10 {
		t.Fatalf("expected top list truncated to 10, got %d", len(summary.TopItems))
	}
	if summary.TopItems[0].Item != "Item-11" || summary.TopItems[0].Qty != 12 {
		t.Fatalf("highest quantity item should lead: %+v", summary.TopItems[0])
	}
}

func TestSummarizeSkipsMalformedItemSegments(t *testing.T) {
	summary := Summarize([]domain.SaleRecord{
		cashSale("2026-08-29", 0, 0, 0, "xyz; 2x Hotdog @ 3.50"),
	}, "2026-08-29")

	if len(summary.TopItems) != 1 || summary.TopItems[0].Item != "Hotdog" {
		t.Fatalf("malformed segments should be skipped: %+v", summary.TopItems)
	}
}
