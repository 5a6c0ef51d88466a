package domain

import "github.com/shopspring/decimal"

type MealType string

const (
	MealTypeVeg    MealType = "veg"
	MealTypeNonVeg MealType = "non_veg"
	MealTypeSnack  MealType = "snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealTypeVeg, MealTypeNonVeg, MealTypeSnack:
		return true
	}
	return false
}

type Meal struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Type  MealType        `json:"type"`
	Price decimal.Decimal `json:"price"`
}
