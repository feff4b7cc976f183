package validator_test

import (
	"strings"
	"testing"

	"trattoria/shared/failure"
	"trattoria/shared/validator"

	"github.com/stretchr/testify/assert"
)

type createItemPayload struct {
	Name     string   `json:"name"     validate:"required,max=100"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
	Category string   `json:"category" validate:"required,max=50"`
	Quantity *int     `json:"quantity" validate:"omitempty,gt=0"`
	When     string   `json:"when"     validate:"omitempty,datetime=2006-01-02 15:04:05"`
	Status   string   `json:"status"   validate:"omitempty,oneof=pending preparing ready_for_pickup completed cancelled"`
}

func TestValidate_OK(t *testing.T) {
	body := `{"name": "Spaghetti Carbonara", "price": 12.5, "category": "main_course"}`

	var p createItemPayload
	err := validator.Validate(strings.NewReader(body), &p)

	assert.NoError(t, err)
	assert.Equal(t, 12.5, *p.Price)
}

func TestValidate_ZeroPriceIsValid(t *testing.T) {
	body := `{"name": "Tap water", "price": 0, "category": "soft drink"}`

	var p createItemPayload
	assert.NoError(t, validator.Validate(strings.NewReader(body), &p))
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing required field",
			body:    `{"price": 3, "category": "beer"}`,
			wantMsg: "name is required",
		},
		{
			name:    "negative price",
			body:    `{"name": "Cola", "price": -1, "category": "soft drink"}`,
			wantMsg: "price must be greater than or equal to 0",
		},
		{
			name:    "zero quantity",
			body:    `{"name": "Cola", "price": 3, "category": "soft drink", "quantity": 0}`,
			wantMsg: "quantity must be greater than 0",
		},
		{
			name:    "fractional quantity rejected at decode",
			body:    `{"name": "Cola", "price": 3, "category": "soft drink", "quantity": 1.5}`,
			wantMsg: "quantity",
		},
		{
			name:    "bad datetime shape",
			body:    `{"name": "Cola", "price": 3, "category": "soft drink", "when": "2025/01/01 19:00"}`,
			wantMsg: "when must match the format 2006-01-02 15:04:05",
		},
		{
			name:    "invalid enum names the allowed set",
			body:    `{"name": "Cola", "price": 3, "category": "soft drink", "status": "eaten"}`,
			wantMsg: "status must be one of: pending, preparing, ready_for_pickup, completed, cancelled",
		},
		{
			name:    "malformed json",
			body:    `{"name": `,
			wantMsg: "failed to decode request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p createItemPayload
			err := validator.Validate(strings.NewReader(tt.body), &p)

			assert.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("food", "oneof=food beverage"))
	assert.Error(t, validator.ValidateVar("dessert", "oneof=food beverage"))
}
