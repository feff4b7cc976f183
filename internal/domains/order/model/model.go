package model

import (
	"database/sql"
	"time"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldCreatedAt     = "created_at"
	FieldStatus        = "status"
	FieldOrderType     = "order_type"
)

const (
	ItemTableName  = "order_items"
	ItemEntityName = "order_item"

	ItemFieldID              = "id"
	ItemFieldOrderID         = "order_id"
	ItemFieldMenuItemID      = "menu_item_id"
	ItemFieldQuantity        = "quantity"
	ItemFieldSpecialRequests = "special_requests"
)

const (
	OrderTypeFood     = "food"
	OrderTypeBeverage = "beverage"
)

type Order struct {
	ID            int64         `db:"id"`
	ReservationID sql.NullInt64 `db:"reservation_id"`
	CreatedAt     time.Time     `db:"created_at"`
	Status        string        `db:"status"`
	OrderType     string        `db:"order_type"`

	ReservationTableNumber sql.NullInt64 `db:"reservation_table_number" table:"reservations" column:"table_number"`
}

func (o Order) GetJoinQuery() string {
	return "LEFT JOIN reservations ON reservations.id = orders.reservation_id"
}

type OrderItem struct {
	ID              int64          `db:"id"`
	OrderID         int64          `db:"order_id"`
	MenuItemID      int64          `db:"menu_item_id"`
	Quantity        int            `db:"quantity"`
	SpecialRequests sql.NullString `db:"special_requests"`

	MenuItemName     sql.NullString  `db:"menu_item_name" table:"menu_items" column:"name"`
	MenuItemPrice    sql.NullFloat64 `db:"menu_item_price" table:"menu_items" column:"price"`
	MenuItemCategory sql.NullString  `db:"menu_item_category" table:"menu_items" column:"category"`
}

func (i OrderItem) GetJoinQuery() string {
	return "LEFT JOIN menu_items ON menu_items.id = order_items.menu_item_id"
}
