package model

import (
	"database/sql"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldCustomerName    = "customer_name"
	FieldPhoneNumber     = "phone_number"
	FieldReservationTime = "reservation_time"
	FieldNumGuests       = "num_guests"
	FieldTableNumber     = "table_number"
	FieldStatus          = "status"
)

type Reservation struct {
	ID              int64         `db:"id"`
	CustomerName    string        `db:"customer_name"`
	PhoneNumber     string        `db:"phone_number"`
	ReservationTime time.Time     `db:"reservation_time"`
	NumGuests       int           `db:"num_guests"`
	TableNumber     sql.NullInt64 `db:"table_number"`
	Status          string        `db:"status"`
}
