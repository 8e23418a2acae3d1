package model

import "hotel/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID       = "id"
	FieldName     = "name"
	FieldImage    = "image"
	FieldPrice    = "price"
	FieldCapacity = "capacity"
	FieldActive   = "active"
)

type Category struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Image    string  `db:"image"`
	Price    float64 `db:"price"`
	Capacity int     `db:"capacity"`
	Active   bool    `db:"active"`
	model.Metadata
}
