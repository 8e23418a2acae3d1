package model

import (
	"hotel/shared/interval"
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldRoomID     = "room_id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldGuestCount = "guest_count"
)

type Reservation struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	RoomID     string    `db:"room_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	GuestCount int       `db:"guest_count"`
	model.Metadata
}

func (r Reservation) Window() interval.Window {
	return interval.Window{Start: r.StartDate, End: r.EndDate}
}

// ReservationDetail is a reservation joined with its room and the room's category.
type ReservationDetail struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	RoomID        string    `db:"room_id"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	GuestCount    int       `db:"guest_count"`
	RoomNumber    string    `column:"room_number" db:"room_number"    table:"rooms"`
	RoomFloor     int       `column:"floor"       db:"room_floor"     table:"rooms"`
	CategoryID    string    `column:"id"          db:"category_id"    table:"categories"`
	CategoryName  string    `column:"name"        db:"category_name"  table:"categories"`
	CategoryImage string    `column:"image"       db:"category_image" table:"categories"`
	CategoryPrice float64   `column:"price"       db:"category_price" table:"categories"`
	model.Metadata
}

func (ReservationDetail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = reservations.room_id JOIN categories ON categories.id = rooms.category_id"
}
