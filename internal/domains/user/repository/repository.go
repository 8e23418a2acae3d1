package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"strings"
	"time"
)

var ErrEmailTaken = errors.New("email already registered")

// User stores accounts. Emails are compared lower-cased and a missing
// account is returned as a zero User.
type User interface {
	Create(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func EmailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(strings.TrimSpace(email)),
				Table:    model.TableName,
			},
		},
	}
}

// Create inserts user. A concurrent registration of the same email surfaces
// as ErrEmailTaken.
func (r *repositoryImpl) Create(ctx context.Context, user model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := r.Insert(ctx, user)
	if postgres.ErrorCode(err) == constant.PqErrorCodeUniqueViolation {
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}

	return err
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.Get(ctx, EmailFilter(email))
}

func (r *repositoryImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.Exist(ctx, EmailFilter(email))
}

func (r *repositoryImpl) RecordLogin(ctx context.Context, id string, at time.Time) error {
	fields := map[string]any{
		model.FieldLastLogin:     at,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: id,
	}

	return r.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
}
