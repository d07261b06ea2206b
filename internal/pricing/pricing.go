// Package pricing turns a cart plus sale settings into an itemized total.
// Quote is pure: no storage, no clock, no accumulated state, so the register
// can re-run it on every keystroke.
package pricing

import (
	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/money"
)

// Quote computes the itemized total in a fixed order: discount is clamped to
// the subtotal and applied before tax; tax is charged on the effective
// subtotal; tip lands after tax; the card fee is a percentage of the base
// total (effective subtotal + tax + tip), never of the raw subtotal. The fee
// is always computed so the UI can show "total if paying by card", but only
// a card sale actually owes it.
//
// Insufficient cash is not an error here; checkout validation is the
// caller's job. ChangeDue simply floors at zero.
func Quote(lines []domain.CartLine, settings domain.SaleSettings) domain.PricingResult {
	var subtotal money.Cents
	for _, line := range lines {
		subtotal += money.Cents(line.Qty) * line.UnitPriceCents
	}

	discount := settings.DiscountCents
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	effective := subtotal - discount
	tax := money.Percent(effective, settings.TaxRatePercent)

	tip := settings.TipCents
	if tip < 0 {
		tip = 0
	}

	base := effective + tax + tip
	cardFee := money.Percent(base, settings.CardFeePercent)

	cashTotal := base
	cardTotal := base + cardFee

	amountDue := cashTotal
	if settings.PaymentMethod == domain.PaymentCard {
		amountDue = cardTotal
	}

	change := settings.CashReceivedCents - amountDue
	if change < 0 {
		change = 0
	}

	return domain.PricingResult{
		SubtotalCents:          subtotal,
		DiscountCents:          discount,
		EffectiveSubtotalCents: effective,
		TaxCents:               tax,
		TipCents:               tip,
		CardFeeIfCardCents:     cardFee,
		CashTotalCents:         cashTotal,
		CardTotalCents:         cardTotal,
		AmountDueCents:         amountDue,
		ChangeDueCents:         change,
	}
}

// RecordedCardFee is the fee that actually lands on the ledger: the computed
// fee for a card sale, zero for everything else.
func RecordedCardFee(result domain.PricingResult, paymentMethod string) money.Cents {
	if paymentMethod == domain.PaymentCard {
		return result.CardFeeIfCardCents
	}
	return 0
}
