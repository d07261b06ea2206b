// Package money holds monetary amounts as integer cents so cart merging,
// cash-sufficiency checks and ledger round-trips never depend on float
// equality. Dollar strings at the file and API boundary are converted with
// shopspring/decimal to keep the parse exact.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a dollar amount in exact hundredths.
type Cents int64

// FromDollars converts a float dollar amount to cents, rounding to the
// nearest cent. Used when reading numeric cells written by other tools.
func FromDollars(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Parse converts a dollar string such as "3.50" or "$3.50" to cents.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return Cents(d.Shift(2).Round(0).IntPart()), nil
}

// ParseOrZero is Parse with malformed input degrading to zero. Ledger reads
// use it so a damaged cell never fails the whole history.
func ParseOrZero(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		return 0
	}
	return c
}

// Dollars returns the amount as a float for numeric spreadsheet cells.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String renders the amount with two fractional digits, e.g. "3.50".
func (c Cents) String() string {
	return decimal.New(int64(c), -2).StringFixed(2)
}

// Percent applies a percentage to an amount, rounded to the nearest cent.
func Percent(base Cents, pct float64) Cents {
	return Cents(math.Round(float64(base) * pct / 100))
}
