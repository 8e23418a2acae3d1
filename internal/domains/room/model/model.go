package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldFloor      = "floor"
	FieldCategoryID = "category_id"
	FieldActive     = "active"
)

type Room struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number"`
	Floor      int    `db:"floor"`
	CategoryID string `db:"category_id"`
	Active     bool   `db:"active"`
	model.Metadata
}

// RoomDetail is a room joined with its category.
type RoomDetail struct {
	ID               string  `db:"id"`
	RoomNumber       string  `db:"room_number"`
	Floor            int     `db:"floor"`
	CategoryID       string  `db:"category_id"`
	Active           bool    `db:"active"`
	CategoryName     string  `column:"name"     db:"category_name"     table:"categories"`
	CategoryImage    string  `column:"image"    db:"category_image"    table:"categories"`
	CategoryPrice    float64 `column:"price"    db:"category_price"    table:"categories"`
	CategoryCapacity int     `column:"capacity" db:"category_capacity" table:"categories"`
	model.Metadata
}

func (RoomDetail) GetJoinQuery() string {
	return "JOIN categories ON categories.id = rooms.category_id"
}
