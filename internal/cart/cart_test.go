package cart

import (
	"testing"

	"hotdogstand/backend/internal/domain"
)

func TestAddOrIncrementMergesByIdentity(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Qty != 2 {
		t.Fatalf("expected qty 2, got %d", lines[0].Qty)
	}
}

func TestAddOrIncrementKeepsDistinctPricesApart(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 300})

	if len(c.Lines()) != 2 {
		t.Fatalf("expected 2 lines for same name at different prices, got %d", len(c.Lines()))
	}
}

func TestDecrementFloorsAtOne(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Soda", UnitPriceCents: 150})

	if err := c.Decrement(0); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if got := c.Lines()[0].Qty; got != 1 {
		t.Fatalf("qty should floor at 1, got %d", got)
	}
}

func TestRemoveLine(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})
	c.AddOrIncrement(domain.MenuItem{Name: "Soda", UnitPriceCents: 150})

	if err := c.Remove(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Item != "Soda" {
		t.Fatalf("expected only Soda left, got %+v", lines)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	c := New()
	if err := c.Remove(0); err == nil {
		t.Fatalf("expected error removing from empty cart")
	}
	if err := c.Decrement(3); err == nil {
		t.Fatalf("expected error decrementing missing line")
	}
}

func TestRemoveManyHandlesDuplicatesAndOrder(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})
	c.AddOrIncrement(domain.MenuItem{Name: "Soda", UnitPriceCents: 150})
	c.AddOrIncrement(domain.MenuItem{Name: "Chips", UnitPriceCents: 125})

	c.RemoveMany([]int{0, 2, 0, 5})

	lines := c.Lines()
	if len(lines) != 1 || lines[0].Item != "Soda" {
		t.Fatalf("expected only Soda left, got %+v", lines)
	}
}

func TestSubtotal(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})
	if err := c.IncrementBy(0, 1); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	c.AddOrIncrement(domain.MenuItem{Name: "Soda", UnitPriceCents: 150})

	if got := c.Subtotal(); got != 850 {
		t.Fatalf("subtotal = %d cents, want 850", got)
	}
}

func TestLinesReturnsSnapshot(t *testing.T) {
	c := New()
	c.AddOrIncrement(domain.MenuItem{Name: "Hotdog", UnitPriceCents: 350})

	snapshot := c.Lines()
	snapshot[0].Qty = 99

	if got := c.Lines()[0].Qty; got != 1 {
		t.Fatalf("mutating the snapshot leaked into the cart, qty = %d", got)
	}
}
