package domain

import "hotdogstand/backend/internal/money"

// Payment methods accepted at the register. Anything else found in a
// persisted record is grouped under "other" by the daily report.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentOther = "other"
)

func IsSupportedPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentOther:
		return true
	}
	return false
}

// MenuItem is one sellable item. Identity is the trimmed, case-sensitive name.
type MenuItem struct {
	Name           string      `json:"name"`
	UnitPriceCents money.Cents `json:"unit_price_cents"`
}

// CartLine is one distinct (item, unit price) entry in the in-progress sale.
// Qty never drops below 1; removal is a separate operation.
type CartLine struct {
	Item           string      `json:"item"`
	UnitPriceCents money.Cents `json:"unit_price_cents"`
	Qty            int         `json:"qty"`
}

// SaleSettings are the per-sale knobs, mutable until checkout.
type SaleSettings struct {
	TaxRatePercent    float64     `json:"tax_rate_percent"`
	CardFeePercent    float64     `json:"card_fee_percent"`
	PaymentMethod     string      `json:"payment_method"`
	DiscountCents     money.Cents `json:"discount_cents"`
	TipCents          money.Cents `json:"tip_cents"`
	Notes             string      `json:"notes"`
	CashReceivedCents money.Cents `json:"cash_received_cents"`
}

// PricingResult is the fully itemized total for a cart + settings pair.
// Recomputed on every change; never stored outside a SaleRecord.
type PricingResult struct {
	SubtotalCents          money.Cents `json:"subtotal_cents"`
	DiscountCents          money.Cents `json:"discount_cents"`
	EffectiveSubtotalCents money.Cents `json:"effective_subtotal_cents"`
	TaxCents               money.Cents `json:"tax_cents"`
	TipCents               money.Cents `json:"tip_cents"`
	CardFeeIfCardCents     money.Cents `json:"card_fee_if_card_cents"`
	CashTotalCents         money.Cents `json:"cash_total_cents"`
	CardTotalCents         money.Cents `json:"card_total_cents"`
	AmountDueCents         money.Cents `json:"amount_due_cents"`
	ChangeDueCents         money.Cents `json:"change_due_cents"`
}

// SaleRecord is one finalized sale as persisted in the ledger. Immutable once
// appended; the only history mutations are append and remove-last.
type SaleRecord struct {
	Timestamp         string      `json:"timestamp"` // "2006-01-02 15:04:05"
	Date              string      `json:"date"`      // "2006-01-02", the aggregation key
	Items             string      `json:"items"`     // semicolon-separated "<qty>x <name> @ <price>"
	SubtotalCents     money.Cents `json:"subtotal_cents"`
	DiscountCents     money.Cents `json:"discount_cents"`
	TaxCents          money.Cents `json:"tax_cents"`
	TipCents          money.Cents `json:"tip_cents"`
	CardFeeCents      money.Cents `json:"card_fee_cents"`
	TotalCents        money.Cents `json:"total_cents"`
	PaymentMethod     string      `json:"payment_method"`
	Notes             string      `json:"notes"`
	CashReceivedCents money.Cents `json:"cash_received_cents"`
	ChangeCents       money.Cents `json:"change_cents"`
}

// PaymentBreakdown is the per-method slice of a day's revenue.
type PaymentBreakdown struct {
	PaymentMethod string      `json:"payment_method"`
	Transactions  int         `json:"transactions"`
	TotalCents    money.Cents `json:"total_cents"`
}

// ItemCount is one entry of the top-sold list.
type ItemCount struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// DailySummary aggregates the ledger records of a single calendar date.
type DailySummary struct {
	Date                    string             `json:"date"`
	Transactions            int                `json:"transactions"`
	RevenuePreTaxCents      money.Cents        `json:"revenue_pre_tax_cents"`
	RevenueTotalCents       money.Cents        `json:"revenue_total_cents"`
	CardFeesCents           money.Cents        `json:"card_fees_cents"`
	ByPayment               []PaymentBreakdown `json:"by_payment"`
	ExpectedCashDrawerCents money.Cents        `json:"expected_cash_drawer_cents"`
	TipsCents               money.Cents        `json:"tips_cents"`
	DiscountsCents          money.Cents        `json:"discounts_cents"`
	TopItems                []ItemCount        `json:"top_items"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

// AddItemRequest puts a menu item into the cart (merge-by-identity).
type AddItemRequest struct {
	Name           string      `json:"name"`
	UnitPriceCents money.Cents `json:"unit_price_cents"`
}

// LineUpdateRequest adjusts one cart line by index.
// Op is "increment" or "decrement"; Amount applies to increments only.
type LineUpdateRequest struct {
	Op     string `json:"op"`
	Amount int    `json:"amount,omitempty"`
}

// SettingsRequest replaces the per-sale settings wholesale.
type SettingsRequest struct {
	TaxRatePercent    float64     `json:"tax_rate_percent"`
	CardFeePercent    float64     `json:"card_fee_percent"`
	PaymentMethod     string      `json:"payment_method"`
	DiscountCents     money.Cents `json:"discount_cents"`
	TipCents          money.Cents `json:"tip_cents"`
	Notes             string      `json:"notes"`
	CashReceivedCents money.Cents `json:"cash_received_cents"`
}

// SaleView is the in-progress sale as the register UI renders it: the cart,
// the current settings, and the quote recomputed from both.
type SaleView struct {
	Lines    []CartLine    `json:"lines"`
	Settings SaleSettings  `json:"settings"`
	Quote    PricingResult `json:"quote"`
}

type CheckoutResponse struct {
	Record  SaleRecord `json:"record"`
	Receipt string     `json:"receipt"`
}

type UndoRequest struct {
	ManagerPIN string `json:"manager_pin,omitempty"`
}

type UndoResponse struct {
	Removed bool `json:"removed"`
}

type MenuUpdateRequest struct {
	Items []MenuItem `json:"items"`
}
