// Package receipt renders a finalized sale as plain text, the contract the
// UI honors when offering a receipt download.
package receipt

import (
	"fmt"
	"strings"

	"hotdogstand/backend/internal/domain"
)

// Render builds the text receipt for one sale record: header, date, time,
// payment method, one line per item, the money breakdown, and notes when
// present. The time is the portion of the timestamp after the space.
func Render(header string, record domain.SaleRecord) string {
	if header == "" {
		header = "Hotdog Stand POS"
	}

	timePart := record.Timestamp
	if idx := strings.Index(record.Timestamp, " "); idx >= 0 {
		timePart = record.Timestamp[idx+1:]
	}

	lines := []string{
		header,
		"========================",
		"Date: " + record.Date,
		"Time: " + timePart,
		"Payment: " + record.PaymentMethod,
		"------------------------",
	}

	for _, item := range domain.ParseLineItems(record.Items) {
		lines = append(lines, fmt.Sprintf("%dx %s @ %s", item.Qty, item.Item, item.UnitPriceCents))
	}

	lines = append(lines,
		"------------------------",
		"Subtotal      : "+record.SubtotalCents.String(),
		"Discount      : "+record.DiscountCents.String(),
		"Tax           : "+record.TaxCents.String(),
		"Tip           : "+record.TipCents.String(),
		"Card Fee      : "+record.CardFeeCents.String(),
		"TOTAL         : "+record.TotalCents.String(),
		"Cash Received : "+record.CashReceivedCents.String(),
		"Change        : "+record.ChangeCents.String(),
	)

	if strings.TrimSpace(record.Notes) != "" {
		lines = append(lines, "------------------------", "Notes: "+record.Notes)
	}

	lines = append(lines, "========================", "Thank you!", "")
	return strings.Join(lines, "\n")
}
