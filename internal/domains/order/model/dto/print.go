package dto

import "trattoria/internal/domains/order/model"

const (
	PrintTitleFood     = "Food Order"
	PrintTitleBeverage = "Beverage Order"
	PrintTitleFull     = "Full Order Ticket"
)

// PrintTicket carries an order and the subset of its items that belong on
// a kitchen or bar ticket.
type PrintTicket struct {
	Order model.Order
	Items []model.OrderItem
	Title string
}
