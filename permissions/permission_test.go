package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	data := Get()

	assert.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := Get()

	tests := []struct {
		name   string
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{name: "public login", path: "/v1/auth/login", method: "POST", skip: true},
		{name: "public availability", path: "/v1/reservations/available", method: "GET", skip: true},
		{name: "group root with trailing slash", path: "/v1/rooms/", method: "GET", skip: true},
		{name: "admin room create", path: "/v1/rooms/", method: "POST", roles: []string{"admin"}},
		{name: "admin reservation list", path: "/v1/reservations/", method: "GET", roles: []string{"admin"}},
		{name: "customer reschedule", path: "/v1/reservations/{id}/dates", method: "PUT", roles: []string{"admin", "customer"}},
		{name: "unknown route", path: "/v1/unknown", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.roles, permission.Permissions)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed", raw: `{`},
		{name: "unknown role", raw: `{"endpoints":[{"path":"/v1/rooms","method":"POST","permissions":["owner"]}]}`},
		{name: "unknown method", raw: `{"endpoints":[{"path":"/v1/rooms","method":"FETCH","skip":true}]}`},
		{name: "duplicate", raw: `{"endpoints":[{"path":"/v1/rooms","method":"GET","skip":true},{"path":"/v1/rooms/","method":"GET","skip":true}]}`},
		{name: "public with roles", raw: `{"endpoints":[{"path":"/v1/rooms","method":"GET","skip":true,"permissions":["admin"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := parse([]byte(tt.raw))

			assert.Error(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestFindPermissions_Literal(t *testing.T) {
	data := &PermissionData{Endpoints: []Permission{{Path: "/v1/rooms", Method: "DELETE", Permissions: []string{"admin"}}}}

	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/rooms/", "DELETE").Permissions)
	assert.False(t, data.FindPermissions("/v1/rooms", "GET").Skip)
}
