package dto

import (
	"database/sql"

	"trattoria/internal/domains/menu/model"
)

type CreateMenuItemRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description *string  `json:"description" validate:"omitempty"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,max=50"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=255"`
}

func (c *CreateMenuItemRequest) ToModel() model.MenuItem {
	item := model.MenuItem{
		Name:     c.Name,
		Price:    *c.Price,
		Category: c.Category,
	}

	if c.Description != nil {
		item.Description = sql.NullString{String: *c.Description, Valid: true}
	}

	if c.ImageURL != nil {
		item.ImageURL = sql.NullString{String: *c.ImageURL, Valid: true}
	}

	return item
}

type MenuItemResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
}

func (r *MenuItemResponse) FromModel(item model.MenuItem) {
	r.ID = item.ID
	r.Name = item.Name
	r.Price = item.Price
	r.Category = item.Category

	if item.Description.Valid {
		r.Description = &item.Description.String
	}

	if item.ImageURL.Valid {
		r.ImageURL = &item.ImageURL.String
	}
}
