package dto

import (
	"database/sql"

	orderDto "trattoria/internal/domains/order/model/dto"
	"trattoria/internal/domains/reservation/model"
	"trattoria/shared/constant"
	gDto "trattoria/shared/dto"
	"trattoria/shared/timezone"
)

type CreateReservationRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,max=100"`
	PhoneNumber     string `json:"phone_number" validate:"required,max=20"`
	ReservationTime string `json:"reservation_time" validate:"required,datetime=2006-01-02 15:04:05"`
	NumGuests       *int   `json:"num_guests" validate:"required,gt=0"`
	TableNumber     *int64 `json:"table_number" validate:"omitempty"`
	Status          string `json:"status" validate:"omitempty,oneof=pending confirmed seated completed cancelled"`
}

func (c *CreateReservationRequest) ToModel() model.Reservation {
	status := c.Status
	if status == constant.Empty {
		status = "pending"
	}

	// The layout is enforced by validation, parsing cannot fail here.
	reservationTime, _ := timezone.Parse(constant.TimestampFormat, c.ReservationTime)

	reservation := model.Reservation{
		CustomerName:    c.CustomerName,
		PhoneNumber:     c.PhoneNumber,
		ReservationTime: reservationTime,
		NumGuests:       *c.NumGuests,
		Status:          status,
	}

	if c.TableNumber != nil {
		reservation.TableNumber = sql.NullInt64{Int64: *c.TableNumber, Valid: true}
	}

	return reservation
}

type UpdateReservationRequest struct {
	CustomerName    *string              `db:"customer_name" json:"customer_name" validate:"omitempty,max=100"`
	PhoneNumber     *string              `db:"phone_number" json:"phone_number" validate:"omitempty,max=20"`
	ReservationTime *string              `json:"reservation_time" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	NumGuests       *int                 `db:"num_guests" json:"num_guests" validate:"omitempty,gt=0"`
	TableNumber     gDto.Optional[int64] `db:"table_number" json:"table_number"`
	Status          *string              `db:"status" json:"status" validate:"omitempty,oneof=pending confirmed seated completed cancelled"`
}

func (u *UpdateReservationRequest) IsEmpty() bool {
	return u.CustomerName == nil &&
		u.PhoneNumber == nil &&
		u.ReservationTime == nil &&
		u.NumGuests == nil &&
		!u.TableNumber.Present &&
		u.Status == nil
}

type ReservationResponse struct {
	ID              int64                    `json:"id"`
	CustomerName    string                   `json:"customer_name"`
	PhoneNumber     string                   `json:"phone_number"`
	ReservationTime string                   `json:"reservation_time"`
	NumGuests       int                      `json:"num_guests"`
	TableNumber     *int64                   `json:"table_number"`
	Status          string                   `json:"status"`
	Orders          []orderDto.OrderResponse `json:"orders"`
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.CustomerName = reservation.CustomerName
	r.PhoneNumber = reservation.PhoneNumber
	r.ReservationTime = timezone.Format(reservation.ReservationTime, constant.TimestampFormat)
	r.NumGuests = reservation.NumGuests
	r.Status = reservation.Status
	r.Orders = []orderDto.OrderResponse{}

	if reservation.TableNumber.Valid {
		r.TableNumber = &reservation.TableNumber.Int64
	}
}
