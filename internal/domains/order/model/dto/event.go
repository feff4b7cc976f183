package dto

import (
	"trattoria/internal/domains/order/model"
	"trattoria/shared/constant"
	"trattoria/shared/timezone"
)

type OrderEvent struct {
	Event         string `json:"event"`
	OrderID       int64  `json:"order_id"`
	ReservationID *int64 `json:"reservation_id"`
	Status        string `json:"status"`
	OrderType     string `json:"order_type"`
	CreatedAt     string `json:"created_at"`
}

func NewOrderEvent(event string, order model.Order) OrderEvent {
	e := OrderEvent{
		Event:     event,
		OrderID:   order.ID,
		Status:    order.Status,
		OrderType: order.OrderType,
		CreatedAt: timezone.Format(order.CreatedAt, constant.TimestampFormat),
	}

	if order.ReservationID.Valid {
		e.ReservationID = &order.ReservationID.Int64
	}

	return e
}
