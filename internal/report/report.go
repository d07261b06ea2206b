// Package report computes the daily summary from ledger records. Summarize
// is pure; whatever backend the records came from, a day's numbers are
// derived the same way and can always be rebuilt from the ledger.
package report

import (
	"sort"
	"strings"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/money"
)

const topItemsLimit = 10

// Summarize filters records to the given date (the record's Date field,
// "2006-01-02") and aggregates them. An empty day yields a zero summary with
// no error. Payment methods are matched case-insensitively so ledgers written
// by older tools ("Cash") and current ones ("cash") aggregate together;
// unrecognized methods count as "other".
func Summarize(records []domain.SaleRecord, date string) domain.DailySummary {
	summary := domain.DailySummary{
		Date: date,
		ByPayment: []domain.PaymentBreakdown{
			{PaymentMethod: domain.PaymentCash},
			{PaymentMethod: domain.PaymentCard},
			{PaymentMethod: domain.PaymentOther},
		},
		TopItems: []domain.ItemCount{},
	}

	itemQty := make(map[string]int)
	itemOrder := make([]string, 0, 16)

	for _, record := range records {
		if record.Date != date {
			continue
		}

		summary.Transactions++
		summary.RevenuePreTaxCents += record.SubtotalCents
		summary.RevenueTotalCents += record.TotalCents
		summary.CardFeesCents += record.CardFeeCents
		summary.TipsCents += record.TipCents
		summary.DiscountsCents += record.DiscountCents

		method := normalizeMethod(record.PaymentMethod)
		for i := range summary.ByPayment {
			if summary.ByPayment[i].PaymentMethod == method {
				summary.ByPayment[i].Transactions++
				summary.ByPayment[i].TotalCents += record.TotalCents
				break
			}
		}

		if method == domain.PaymentCash {
			summary.ExpectedCashDrawerCents += drawerContribution(record)
		}

		for _, line := range domain.ParseLineItems(record.Items) {
			if _, seen := itemQty[line.Item]; !seen {
				itemOrder = append(itemOrder, line.Item)
			}
			itemQty[line.Item] += line.Qty
		}
	}

	summary.TopItems = topItems(itemQty, itemOrder)
	return summary
}

func normalizeMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case domain.PaymentCash:
		return domain.PaymentCash
	case domain.PaymentCard:
		return domain.PaymentCard
	default:
		return domain.PaymentOther
	}
}

// drawerContribution is what one cash sale leaves in the drawer. Normally
// that is cash received minus change handed back; records without a captured
// cash-received amount (older schema files) fall back to the sale total.
func drawerContribution(record domain.SaleRecord) money.Cents {
	if record.CashReceivedCents > 0 {
		return record.CashReceivedCents - record.ChangeCents
	}
	return record.TotalCents
}

// topItems sorts descending by quantity, breaking ties by first encounter,
// and truncates to the top ten.
func topItems(qty map[string]int, order []string) []domain.ItemCount {
	firstSeen := make(map[string]int, len(order))
	for i, item := range order {
		firstSeen[item] = i
	}

	items := make([]domain.ItemCount, 0, len(qty))
	for item, count := range qty {
		items = append(items, domain.ItemCount{Item: item, Qty: count})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Qty != items[j].Qty {
			return items[i].Qty > items[j].Qty
		}
		return firstSeen[items[i].Item] < firstSeen[items[j].Item]
	})

	if len(items) > topItemsLimit {
		items = items[:topItemsLimit]
	}
	return items
}
