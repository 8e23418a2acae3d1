package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	Floor      int    `json:"floor"       validate:"min=0"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Active     *bool  `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Room{
		ID:         uuid.NewString(),
		RoomNumber: c.RoomNumber,
		Floor:      c.Floor,
		CategoryID: c.CategoryID,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber string `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	Floor      *int   `db:"floor"       json:"floor"       validate:"omitempty,min=0"`
	CategoryID string `db:"category_id" json:"category_id" validate:"omitempty,uuid"`
	Active     *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type UpdateRoomStatusRequest struct {
	Active *bool `db:"active" json:"active" validate:"required"`
}

type CategorySummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
}

type RoomResponse struct {
	ID         string          `json:"id"`
	RoomNumber string          `json:"room_number"`
	Floor      int             `json:"floor"`
	Active     bool            `json:"active"`
	Category   CategorySummary `json:"category"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.RoomDetail) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Floor = model.Floor
	r.Active = model.Active
	r.Category = CategorySummary{
		ID:       model.CategoryID,
		Name:     model.CategoryName,
		Image:    model.CategoryImage,
		Price:    model.CategoryPrice,
		Capacity: model.CategoryCapacity,
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.RoomDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Rooms = FromModels(models)
}

func FromModels(models []model.RoomDetail) []RoomResponse {
	rooms := make([]RoomResponse, len(models))
	for i, mod := range models {
		rooms[i].FromModel(mod)
	}

	return rooms
}
