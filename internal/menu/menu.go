// Package menu loads and saves the sellable items list. The menu lives in a
// two-column CSV ("item","price" in dollars) so it stays hand-editable; a
// missing or malformed file degrades to the built-in defaults, never an
// error.
package menu

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"hotdogstand/backend/internal/domain"
	"hotdogstand/backend/internal/money"
)

// DefaultMenu is the seed menu used whenever no valid persisted menu exists.
func DefaultMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{Name: "Hotdog", UnitPriceCents: 350},
		{Name: "Cheese Dog", UnitPriceCents: 400},
		{Name: "Chili Dog", UnitPriceCents: 450},
		{Name: "Sausage", UnitPriceCents: 500},
		{Name: "Soda", UnitPriceCents: 150},
		{Name: "Water", UnitPriceCents: 100},
		{Name: "Chips", UnitPriceCents: 125},
	}
}

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted menu when the file exists and carries both an
// item and a price column; anything else falls back to DefaultMenu. Load has
// no side effects and never fails.
func (s *Store) Load() []domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return DefaultMenu()
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil || len(rows) == 0 {
		log.Printf("[menu] unreadable menu file %s, using defaults", s.path)
		return DefaultMenu()
	}

	itemCol, priceCol := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "item":
			itemCol = i
		case "price":
			priceCol = i
		}
	}
	if itemCol < 0 || priceCol < 0 {
		return DefaultMenu()
	}

	items := make([]domain.MenuItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if itemCol >= len(row) || priceCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[itemCol])
		if name == "" {
			continue
		}
		price, err := money.Parse(row[priceCol])
		if err != nil || price < 0 {
			continue
		}
		items = append(items, domain.MenuItem{Name: name, UnitPriceCents: price})
	}
	if len(items) == 0 {
		return DefaultMenu()
	}
	return items
}

// Save overwrites the persisted menu wholesale. Blank-named items are
// dropped; negative prices are rejected.
func (s *Store) Save(items []domain.MenuItem) error {
	cleaned := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		if item.UnitPriceCents < 0 {
			return fmt.Errorf("menu item %q has a negative price", name)
		}
		cleaned = append(cleaned, domain.MenuItem{Name: name, UnitPriceCents: item.UnitPriceCents})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("save menu %s: %w", s.path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"item", "price"}); err != nil {
		return err
	}
	for _, item := range cleaned {
		if err := writer.Write([]string{item.Name, item.UnitPriceCents.String()}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ResetToDefault restores the seed menu.
func (s *Store) ResetToDefault() error {
	return s.Save(DefaultMenu())
}
