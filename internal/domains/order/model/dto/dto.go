package dto

import (
	"database/sql"

	"trattoria/internal/domains/order/model"
	"trattoria/shared/constant"
	gDto "trattoria/shared/dto"
	"trattoria/shared/timezone"
)

type CreateOrderRequest struct {
	OrderType string `json:"order_type" validate:"required,oneof=food beverage"`
	Status    string `json:"status" validate:"omitempty,oneof=pending preparing ready_for_pickup completed cancelled"`
}

func (c *CreateOrderRequest) ToModel(reservationID int64) model.Order {
	status := c.Status
	if status == constant.Empty {
		status = "pending"
	}

	return model.Order{
		ReservationID: sql.NullInt64{Int64: reservationID, Valid: true},
		CreatedAt:     timezone.Now(),
		Status:        status,
		OrderType:     c.OrderType,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready_for_pickup completed cancelled"`
}

type AddItemRequest struct {
	MenuItemID      *int64  `json:"menu_item_id" validate:"required"`
	Quantity        *int    `json:"quantity" validate:"required,gt=0"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty"`
}

func (a *AddItemRequest) ToModel(orderID int64) model.OrderItem {
	item := model.OrderItem{
		OrderID:    orderID,
		MenuItemID: *a.MenuItemID,
		Quantity:   *a.Quantity,
	}

	if a.SpecialRequests != nil {
		item.SpecialRequests = sql.NullString{String: *a.SpecialRequests, Valid: true}
	}

	return item
}

type UpdateItemRequest struct {
	Quantity        *int                  `db:"quantity" json:"quantity" validate:"omitempty,gt=0"`
	SpecialRequests gDto.Optional[string] `db:"special_requests" json:"special_requests"`
}

func (u *UpdateItemRequest) IsEmpty() bool {
	return u.Quantity == nil && !u.SpecialRequests.Present
}

type OrderItemResponse struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"order_id"`
	MenuItemID      int64   `json:"menu_item_id"`
	MenuItemName    string  `json:"menu_item_name"`
	MenuItemPrice   float64 `json:"menu_item_price"`
	Quantity        int     `json:"quantity"`
	SpecialRequests *string `json:"special_requests"`
}

func (r *OrderItemResponse) FromModel(item model.OrderItem) {
	r.ID = item.ID
	r.OrderID = item.OrderID
	r.MenuItemID = item.MenuItemID
	r.Quantity = item.Quantity

	r.MenuItemName = "N/A"
	if item.MenuItemName.Valid {
		r.MenuItemName = item.MenuItemName.String
	}

	r.MenuItemPrice = 0.0
	if item.MenuItemPrice.Valid {
		r.MenuItemPrice = item.MenuItemPrice.Float64
	}

	if item.SpecialRequests.Valid {
		r.SpecialRequests = &item.SpecialRequests.String
	}
}

type OrderResponse struct {
	ID            int64               `json:"id"`
	ReservationID *int64              `json:"reservation_id"`
	CreatedAt     string              `json:"created_at"`
	Status        string              `json:"status"`
	OrderType     string              `json:"order_type"`
	Items         []OrderItemResponse `json:"items"`
}

func (r *OrderResponse) FromModel(order model.Order, items []model.OrderItem) {
	r.ID = order.ID
	r.CreatedAt = timezone.Format(order.CreatedAt, constant.TimestampFormat)
	r.Status = order.Status
	r.OrderType = order.OrderType

	if order.ReservationID.Valid {
		r.ReservationID = &order.ReservationID.Int64
	}

	r.Items = make([]OrderItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}
