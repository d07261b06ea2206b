package domain

import (
	"fmt"
	"strconv"
	"strings"

	"hotdogstand/backend/internal/money"
)

// The ledger stores a sale's line items as a single string column so the
// file stays a flat table readable by spreadsheet tools:
//
//	"2x Hotdog @ 3.50; 1x Soda @ 1.50"
//
// FormatLineItems and ParseLineItems are the two sides of that contract.

// FormatLineItems serializes cart lines for the ledger's Items column.
func FormatLineItems(lines []CartLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s @ %s", line.Qty, line.Item, line.UnitPriceCents))
	}
	return strings.Join(parts, "; ")
}

// ParsedLine is one entry recovered from an items summary string.
type ParsedLine struct {
	Qty            int
	Item           string
	UnitPriceCents money.Cents
}

// ParseLineItems parses an items summary string back into lines. Entries with
// an unparsable quantity are skipped rather than failing the whole string; a
// missing or damaged price reads as zero.
func ParseLineItems(summary string) []ParsedLine {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil
	}

	entries := strings.Split(summary, ";")
	parsed := make([]ParsedLine, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		xIdx := strings.Index(entry, "x ")
		if xIdx <= 0 {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(entry[:xIdx]))
		if err != nil || qty <= 0 {
			continue
		}

		rest := entry[xIdx+len("x "):]
		name := rest
		price := money.Cents(0)
		if atIdx := strings.LastIndex(rest, " @ "); atIdx >= 0 {
			name = rest[:atIdx]
			price = money.ParseOrZero(rest[atIdx+len(" @ "):])
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		parsed = append(parsed, ParsedLine{Qty: qty, Item: name, UnitPriceCents: price})
	}
	return parsed
}
