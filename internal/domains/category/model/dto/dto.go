package dto

import (
	"hotel/internal/domains/category/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Image    string  `json:"image"    validate:"omitempty,url"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Capacity int     `json:"capacity" validate:"required,min=1"`
	Active   *bool   `json:"active"   validate:"omitempty"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Category{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Image:    c.Image,
		Price:    c.Price,
		Capacity: c.Capacity,
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCategoryRequest struct {
	Name     string   `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Image    string   `db:"image"    json:"image"    validate:"omitempty,url"`
	Price    *float64 `db:"price"    json:"price"    validate:"omitempty,gt=0"`
	Capacity *int     `db:"capacity" json:"capacity" validate:"omitempty,min=1"`
	Active   *bool    `db:"active"   json:"active"   validate:"omitempty"`
}

type CategoryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Image = model.Image
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
