package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/shared/failure"
	"hotel/shared/validator"
)

type stayRequest struct {
	RoomID     string `json:"room_id"     validate:"required"`
	StartDate  string `json:"start_date"  validate:"required,timestamp"`
	EndDate    string `json:"end_date"    validate:"required,timestamp"`
	GuestCount int    `json:"guest_count" validate:"required,min=1"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Role       string `json:"role"        validate:"omitempty,oneof=customer admin"`
}

func TestValidateStruct(t *testing.T) {
	valid := stayRequest{RoomID: "r1", StartDate: "2025-03-01", EndDate: "2025-03-04T10:00:00Z", GuestCount: 2}

	tests := []struct {
		name       string
		mutate     func(r *stayRequest)
		wantErr    bool
		wantSubstr string
	}{
		{name: "valid", mutate: func(*stayRequest) {}},
		{name: "missing room", mutate: func(r *stayRequest) { r.RoomID = "" }, wantErr: true, wantSubstr: "room_id is required"},
		{name: "bad start date", mutate: func(r *stayRequest) { r.StartDate = "03/01/2025" }, wantErr: true, wantSubstr: "start_date must be an RFC 3339"},
		{name: "zero guests", mutate: func(r *stayRequest) { r.GuestCount = 0 }, wantErr: true, wantSubstr: "guest_count is required"},
		{name: "negative guests", mutate: func(r *stayRequest) { r.GuestCount = -2 }, wantErr: true, wantSubstr: "guest_count must be greater than or equal to 1"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "nope" }, wantErr: true, wantSubstr: "valid email"},
		{name: "bad role", mutate: func(r *stayRequest) { r.Role = "root" }, wantErr: true, wantSubstr: "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantSubstr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"room_id":"r1","start_date":"2025-03-01","end_date":"2025-03-02","guest_count":1}`,
		},
		{
			name:    "invalid field",
			body:    `{"room_id":"r1","start_date":"tomorrow","end_date":"2025-03-02","guest_count":1}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"room_id":}`,
			wantErr: true,
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "no body",
			body:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req stayRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "r1", req.RoomID)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-03-01", "timestamp"))
	assert.NoError(t, validator.ValidateVar("2025-03-01T00:00:00+07:00", "timestamp"))
	assert.Error(t, validator.ValidateVar("2025-13-01", "timestamp"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestValidate_EmptyBody(t *testing.T) {
	var req stayRequest

	err := validator.Validate(strings.NewReader(""), &req)

	assert.EqualError(t, err, "request body is required")
}

func TestPathID(t *testing.T) {
	assert.NoError(t, validator.PathID("3b9e8a47-1c2d-4e5f-8a9b-0c1d2e3f4a5b", "room"))

	for _, id := range []string{"", "42", "room-1", "3b9e8a47-1c2d-4e5f-8a9b"} {
		err := validator.PathID(id, "room")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err), id)
		assert.Equal(t, "room not found", failure.GetMessage(err), id)
	}
}
