// Package cart holds the mutable line items of the in-progress sale. A cart
// is created empty per sale, cleared on checkout or "new sale", and never
// persisted on its own.
package cart

import (
	"fmt"
	"sort"
	"strings"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/money"
)

type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{lines: make([]domain.CartLine, 0, 8)}
}

// AddOrIncrement merges the item into an existing line when both the name and
// the unit price match exactly, otherwise appends a new line with qty 1.
// Existing line order is preserved; new lines go to the end.
func (c *Cart) AddOrIncrement(item domain.MenuItem) {
	name := strings.TrimSpace(item.Name)
	for i := range c.lines {
		if c.lines[i].Item == name && c.lines[i].UnitPriceCents == item.UnitPriceCents {
			c.lines[i].Qty++
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		Item:           name,
		UnitPriceCents: item.UnitPriceCents,
		Qty:            1,
	})
}

// IncrementBy raises a line's quantity by delta (the UI exposes +1/+2/+5).
func (c *Cart) IncrementBy(index int, delta int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if delta < 1 {
		return fmt.Errorf("increment must be positive, got %d", delta)
	}
	c.lines[index].Qty += delta
	return nil
}

// Decrement lowers a line's quantity by one, flooring at 1. Dropping a line
// entirely is Remove's job, never Decrement's.
func (c *Cart) Decrement(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if c.lines[index].Qty > 1 {
		c.lines[index].Qty--
	}
	return nil
}

// Remove deletes a line regardless of its quantity.
func (c *Cart) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// RemoveMany deletes a batch of lines, applying indices in descending order
// so earlier removals cannot shift later ones. Out-of-range and duplicate
// indices are ignored.
func (c *Cart) RemoveMany(indices []int) {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	last := -1
	for _, idx := range sorted {
		if idx == last {
			continue
		}
		last = idx
		if idx >= 0 && idx < len(c.lines) {
			c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		}
	}
}

// Subtotal is the unrounded sum of qty x unit price; all rounding belongs to
// the pricing engine.
func (c *Cart) Subtotal() money.Cents {
	var sum money.Cents
	for _, line := range c.lines {
		sum += money.Cents(line.Qty) * line.UnitPriceCents
	}
	return sum
}

func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a snapshot copy so callers cannot mutate the cart behind the
// service's lock.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("cart line %d does not exist", index)
	}
	return nil
}
