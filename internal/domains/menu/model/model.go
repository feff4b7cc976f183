package model

import (
	"database/sql"
	"strings"
)

const (
	TableName  = "menu_items"
	EntityName = "menu_item"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldImageURL    = "image_url"
)

// BeverageCategories are the menu categories treated as drinks when an
// order ticket is split into food and beverage sections.
var BeverageCategories = []string{"beverage", "drinks", "wine", "cocktails", "beer", "soft drink"}

func IsBeverageCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))

	for _, beverage := range BeverageCategories {
		if category == beverage {
			return true
		}
	}

	return false
}

type MenuItem struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Price       float64        `db:"price"`
	Category    string         `db:"category"`
	ImageURL    sql.NullString `db:"image_url"`
}
