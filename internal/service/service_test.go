package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hotdogstand/backend/internal/cache"
	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/menu"
	"hotdogstand/backend/internal/store"
	"hotdogstand/backend/internal/store/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	ledger := memory.New()
	menuStore := menu.New(filepath.Join(t.TempDir(), "menu.csv"))
	svc := New(menuStore, ledger, cache.NoopSummaryCache{}, domain.SaleSettings{
		TaxRatePercent: 8,
		CardFeePercent: 3,
		PaymentMethod:  domain.PaymentCash,
	}, time.Second)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 12, 34, 56, 0, time.UTC)
	}
	return svc, ledger
}

func addSampleCart(t *testing.T, svc *Service) {
	t.Helper()
	for _, req := range []domain.AddItemRequest{
		{Name: "Hotdog", UnitPriceCents: 350},
		{Name: "Hotdog", UnitPriceCents: 350},
		{Name: "Soda", UnitPriceCents: 150},
	} {
		if _, err := svc.AddItem(req); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}
}

func TestCheckoutCashSale(t *testing.T) {
	svc, ledger := newTestService(t)
	addSampleCart(t, svc)

	if _, err := svc.UpdateSettings(domain.SettingsRequest{
		TaxRatePercent:    8,
		CardFeePercent:    3,
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 1000,
	}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}

	resp, err := svc.Checkout(context.Background())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	record := resp.Record
	if record.Timestamp != "2026-08-29 12:34:56" || record.Date != "2026-08-29" {
		t.Fatalf("timestamps wrong: %+v", record)
	}
	if record.Items != "2x Hotdog @ 3.50; 1x Soda @ 1.50" {
		t.Fatalf("items summary = %q", record.Items)
	}
	if record.SubtotalCents != 850 || record.TaxCents != 68 || record.TotalCents != 918 {
		t.Fatalf("money columns wrong: %+v", record)
	}
	if record.CashReceivedCents != 1000 || record.ChangeCents != 82 {
		t.Fatalf("cash columns wrong: %+v", record)
	}
	if record.CardFeeCents != 0 {
		t.Fatalf("cash sale must not record a card fee: %+v", record)
	}
	if !strings.Contains(resp.Receipt, "TOTAL         : 9.18") {
		t.Fatalf("receipt missing total:\n%s", resp.Receipt)
	}

	records, _ := ledger.ReadAll(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 ledger record, got %d", len(records))
	}

	// The register resets for the next customer but keeps its knobs.
	sale := svc.Sale()
	if len(sale.Lines) != 0 {
		t.Fatalf("cart should be empty after checkout: %+v", sale.Lines)
	}
	if sale.Settings.TaxRatePercent != 8 || sale.Settings.CashReceivedCents != 0 {
		t.Fatalf("settings not reset correctly: %+v", sale.Settings)
	}
}

func TestCheckoutCardSaleWithDiscountAndTip(t *testing.T) {
	svc, _ := newTestService(t)
	addSampleCart(t, svc)

	if _, err := svc.UpdateSettings(domain.SettingsRequest{
		TaxRatePercent: 8,
		CardFeePercent: 3,
		PaymentMethod:  domain.PaymentCard,
		DiscountCents:  100,
		TipCents:       100,
	}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}

	resp, err := svc.Checkout(context.Background())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	record := resp.Record
	if record.DiscountCents != 100 || record.TaxCents != 60 || record.TipCents != 100 {
		t.Fatalf("money columns wrong: %+v", record)
	}
	if record.CardFeeCents != 27 || record.TotalCents != 937 {
		t.Fatalf("card totals wrong: %+v", record)
	}
	if record.ChangeCents != 0 {
		t.Fatalf("card sale should owe no change: %+v", record)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc, ledger := newTestService(t)

	_, err := svc.Checkout(context.Background())
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected ErrInvalidSale, got %v", err)
	}
	records, _ := ledger.ReadAll(context.Background())
	if len(records) != 0 {
		t.Fatalf("ledger must stay untouched, got %d records", len(records))
	}
}

func TestCheckoutRejectsInsufficientCash(t *testing.T) {
	svc, ledger := newTestService(t)
	addSampleCart(t, svc)

	if _, err := svc.UpdateSettings(domain.SettingsRequest{
		TaxRatePercent:    8,
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 500,
	}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}

	_, err := svc.Checkout(context.Background())
	if !errors.Is(err, store.ErrInsufficientCash) {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}

	records, _ := ledger.ReadAll(context.Background())
	if len(records) != 0 {
		t.Fatalf("rejected checkout must not touch the ledger, got %d records", len(records))
	}
	if sale := svc.Sale(); len(sale.Lines) != 2 {
		t.Fatalf("cart should survive a rejected checkout: %+v", sale.Lines)
	}
}

func TestUndoRemovesMostRecentSaleOnly(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	addSampleCart(t, svc)
	if _, err := svc.UpdateSettings(domain.SettingsRequest{
		TaxRatePercent: 8, PaymentMethod: domain.PaymentCash, CashReceivedCents: 1000,
	}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if _, err := svc.Checkout(ctx); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	resp, err := svc.Undo(ctx)
	if err != nil || !resp.Removed {
		t.Fatalf("expected removal, got %+v err=%v", resp, err)
	}
	records, _ := ledger.ReadAll(ctx)
	if len(records) != 0 {
		t.Fatalf("ledger should be empty after undo, got %d records", len(records))
	}

	resp, err = svc.Undo(ctx)
	if err != nil {
		t.Fatalf("empty undo should not error: %v", err)
	}
	if resp.Removed {
		t.Fatalf("empty ledger reported a removal")
	}
}

func TestSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	addSampleCart(t, svc)
	if _, err := svc.UpdateSettings(domain.SettingsRequest{
		TaxRatePercent: 8, PaymentMethod: domain.PaymentCash, CashReceivedCents: 1000,
	}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if _, err := svc.Checkout(ctx); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	summary, err := svc.Summary(ctx, "")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Date != "2026-08-29" {
		t.Fatalf("empty date should mean today, got %q", summary.Date)
	}
	if summary.Transactions != 1 || summary.RevenueTotalCents != 918 {
		t.Fatalf("summary wrong: %+v", summary)
	}
	if summary.ExpectedCashDrawerCents != 918 {
		t.Fatalf("expected drawer = %d, want 918", summary.ExpectedCashDrawerCents)
	}

	if _, err := svc.Summary(ctx, "29/08/2026"); !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("bad date should be rejected, got %v", err)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []domain.SettingsRequest{
		{TaxRatePercent: 31, PaymentMethod: domain.PaymentCash},
		{CardFeePercent: 11, PaymentMethod: domain.PaymentCash},
		{PaymentMethod: "crypto"},
		{PaymentMethod: domain.PaymentCash, DiscountCents: -1},
	}
	for i, req := range cases {
		if _, err := svc.UpdateSettings(req); !errors.Is(err, store.ErrInvalidSale) {
			t.Fatalf("case %d: expected ErrInvalidSale, got %v", i, err)
		}
	}

	// Payment method is normalized on the way in.
	sale, err := svc.UpdateSettings(domain.SettingsRequest{PaymentMethod: " Card "})
	if err != nil {
		t.Fatalf("normalized method rejected: %v", err)
	}
	if sale.Settings.PaymentMethod != domain.PaymentCard {
		t.Fatalf("method = %q, want card", sale.Settings.PaymentMethod)
	}
}

func TestNewSaleKeepsRegisterDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	addSampleCart(t, svc)

	if _, err := svc.UpdateSettings(domain.SettingsRequest{
		TaxRatePercent: 8, CardFeePercent: 3, PaymentMethod: domain.PaymentCard,
		DiscountCents: 100, TipCents: 50, Notes: "abandon me", CashReceivedCents: 2000,
	}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}

	sale := svc.NewSale()
	if len(sale.Lines) != 0 {
		t.Fatalf("cart should be empty: %+v", sale.Lines)
	}
	if sale.Settings.DiscountCents != 0 || sale.Settings.TipCents != 0 || sale.Settings.Notes != "" || sale.Settings.CashReceivedCents != 0 {
		t.Fatalf("per-sale fields should reset: %+v", sale.Settings)
	}
	if sale.Settings.TaxRatePercent != 8 || sale.Settings.CardFeePercent != 3 || sale.Settings.PaymentMethod != domain.PaymentCash {
		t.Fatalf("register defaults should survive: %+v", sale.Settings)
	}
}

func TestMenuSaveRequiresAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	items := []domain.MenuItem{{Name: "Bratwurst", UnitPriceCents: 650}}

	cashierCtx := WithActor(context.Background(), domain.Actor{Username: "cashier", Role: "cashier"})
	if _, err := svc.SaveMenu(cashierCtx, items); err == nil {
		t.Fatalf("cashier should not be able to save the menu")
	}

	adminCtx := WithActor(context.Background(), domain.Actor{Username: "admin", Role: "admin"})
	saved, err := svc.SaveMenu(adminCtx, items)
	if err != nil {
		t.Fatalf("admin save failed: %v", err)
	}
	if len(saved) != 1 || saved[0].Name != "Bratwurst" {
		t.Fatalf("saved menu wrong: %+v", saved)
	}
}

func TestLastReceiptFallsBackToLedger(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	if _, err := svc.LastReceipt(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no sales, got err=%v", err)
	}

	_ = ledger.Append(ctx, domain.SaleRecord{
		Timestamp: "2026-08-29 09:00:00", Date: "2026-08-29",
		Items: "1x Water @ 1.00", TotalCents: 108, PaymentMethod: "cash",
	})

	text, err := svc.LastReceipt(ctx)
	if err != nil {
		t.Fatalf("last receipt failed: %v", err)
	}
	if !strings.Contains(text, "1x Water @ 1.00") {
		t.Fatalf("receipt should render the ledger tail:\n%s", text)
	}
}
