package pricing

import (
	"testing"

	"hotdogstand/backend/internal/domain"
)

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{Item: "Hotdog", UnitPriceCents: 350, Qty: 2},
		{Item: "Soda", UnitPriceCents: 150, Qty: 1},
	}
}

func TestQuoteCashSale(t *testing.T) {
	result := Quote(sampleLines(), domain.SaleSettings{
		TaxRatePercent:    8,
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 1000,
	})

	if result.SubtotalCents != 850 {
		t.Fatalf("subtotal = %d, want 850", result.SubtotalCents)
	}
	if result.TaxCents != 68 {
		t.Fatalf("tax = %d, want 68", result.TaxCents)
	}
	if result.AmountDueCents != 918 {
		t.Fatalf("amount due = %d, want 918", result.AmountDueCents)
	}
	if result.ChangeDueCents != 82 {
		t.Fatalf("change = %d, want 82", result.ChangeDueCents)
	}
}

func TestQuoteCardSaleWithDiscountAndTip(t *testing.T) {
	result := Quote(sampleLines(), domain.SaleSettings{
		TaxRatePercent: 8,
		CardFeePercent: 3,
		PaymentMethod:  domain.PaymentCard,
		DiscountCents:  100,
		TipCents:       100,
	})

	if result.EffectiveSubtotalCents != 750 {
		t.Fatalf("effective subtotal = %d, want 750", result.EffectiveSubtotalCents)
	}
	if result.TaxCents != 60 {
		t.Fatalf("tax = %d, want 60 (tax applies after the discount)", result.TaxCents)
	}
	if result.CashTotalCents != 910 {
		t.Fatalf("cash total = %d, want 910", result.CashTotalCents)
	}
	if result.CardFeeIfCardCents != 27 {
		t.Fatalf("card fee = %d, want 27 (3%% of the tip-inclusive base)", result.CardFeeIfCardCents)
	}
	if result.AmountDueCents != 937 {
		t.Fatalf("amount due = %d, want 937", result.AmountDueCents)
	}
	if result.ChangeDueCents != 0 {
		t.Fatalf("change = %d, want 0 on a card sale", result.ChangeDueCents)
	}
}

func TestQuoteClampsDiscountToSubtotal(t *testing.T) {
	result := Quote(sampleLines(), domain.SaleSettings{
		TaxRatePercent: 8,
		PaymentMethod:  domain.PaymentCash,
		DiscountCents:  99999,
	})

	if result.DiscountCents != 850 {
		t.Fatalf("discount = %d, want clamp to subtotal 850", result.DiscountCents)
	}
	if result.EffectiveSubtotalCents != 0 {
		t.Fatalf("effective subtotal = %d, want 0", result.EffectiveSubtotalCents)
	}
	if result.AmountDueCents != 0 {
		t.Fatalf("amount due = %d, want 0", result.AmountDueCents)
	}
}

func TestQuoteComputesBothTotalsRegardlessOfMethod(t *testing.T) {
	result := Quote(sampleLines(), domain.SaleSettings{
		TaxRatePercent: 8,
		CardFeePercent: 3,
		PaymentMethod:  domain.PaymentCash,
	})

	if result.CashTotalCents != 918 {
		t.Fatalf("cash total = %d, want 918", result.CashTotalCents)
	}
	// 3% of 9.18 is 0.2754, rounded to 0.28.
	if result.CardTotalCents != 946 {
		t.Fatalf("card total = %d, want 946", result.CardTotalCents)
	}
	if result.AmountDueCents != result.CashTotalCents {
		t.Fatalf("cash sale must owe the cash total")
	}
}

func TestQuoteIsPure(t *testing.T) {
	lines := sampleLines()
	settings := domain.SaleSettings{TaxRatePercent: 8, PaymentMethod: domain.PaymentCash, CashReceivedCents: 1000}

	first := Quote(lines, settings)
	second := Quote(lines, settings)
	if first != second {
		t.Fatalf("identical inputs produced different quotes: %+v vs %+v", first, second)
	}
}

func TestQuoteNeverReportsNegativeChange(t *testing.T) {
	result := Quote(sampleLines(), domain.SaleSettings{
		TaxRatePercent:    8,
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 500,
	})
	if result.ChangeDueCents != 0 {
		t.Fatalf("change = %d, want 0 when cash received is short", result.ChangeDueCents)
	}
}

func TestRecordedCardFee(t *testing.T) {
	result := Quote(sampleLines(), domain.SaleSettings{
		TaxRatePercent: 8,
		CardFeePercent: 3,
		PaymentMethod:  domain.PaymentCard,
	})

	if got := RecordedCardFee(result, domain.PaymentCard); got != result.CardFeeIfCardCents {
		t.Fatalf("card sale should record the card fee, got %d", got)
	}
	if got := RecordedCardFee(result, domain.PaymentCash); got != 0 {
		t.Fatalf("cash sale should record a zero card fee, got %d", got)
	}
}
