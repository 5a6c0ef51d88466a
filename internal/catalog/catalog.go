// Package catalog holds the fixed list of meal add-ons offered with a booking.
package catalog

import (
	"fmt"

	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/shopspring/decimal"
)

// Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	meals []domain.Meal
	byID  map[int]domain.Meal
}

func New(meals []domain.Meal) (*Catalog, error) {
	c := &Catalog{
		meals: make([]domain.Meal, 0, len(meals)),
		byID:  make(map[int]domain.Meal, len(meals)),
	}
	for _, m := range meals {
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate meal id %d", m.ID)
		}
		if !m.Type.Valid() {
			return nil, fmt.Errorf("meal %d: unknown type %q", m.ID, m.Type)
		}
		if m.Price.IsNegative() {
			return nil, fmt.Errorf("meal %d: negative price", m.ID)
		}
		c.meals = append(c.meals, m)
		c.byID[m.ID] = m
	}
	return c, nil
}

func FromConfig(cfg []config.MealConfig) (*Catalog, error) {
	meals := make([]domain.Meal, 0, len(cfg))
	for _, m := range cfg {
		meals = append(meals, domain.Meal{
			ID:    m.ID,
			Name:  m.Name,
			Type:  domain.MealType(m.Type),
			Price: decimal.NewFromFloat(m.Price),
		})
	}
	return New(meals)
}

func (c *Catalog) List() []domain.Meal {
	return append([]domain.Meal(nil), c.meals...)
}

// Resolve returns the meals matching ids in request order. Unknown ids are dropped.
func (c *Catalog) Resolve(ids []int) []domain.Meal {
	out := make([]domain.Meal, 0, len(ids))
	for _, id := range ids {
		if m, ok := c.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}
