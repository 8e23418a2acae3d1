package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/constant"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleAdmin, constant.RoleCustomer}

var knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// Permission is one route of the table. Skip makes the route public,
// otherwise Permissions lists the roles allowed to call it. An empty list
// admits any authenticated caller.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	once  sync.Once
	index map[string]Permission
}

func key(method, path string) string {
	return method + " " + strings.TrimSuffix(path, "/")
}

// FindPermissions matches a chi route pattern. A trailing slash is ignored, so
// "/v1/rooms/" (the pattern of a group's root route) matches "/v1/rooms".
func (r *PermissionData) FindPermissions(path, method string) Permission {
	r.once.Do(func() {
		r.index = make(map[string]Permission, len(r.Endpoints))
		for _, endpoint := range r.Endpoints {
			r.index[key(endpoint.Method, endpoint.Path)] = endpoint
		}
	})

	return r.index[key(method, path)]
}

var embedded = sync.OnceValue(func() *PermissionData {
	data, err := parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
})

// Get returns the embedded table. The table ships with the binary, so a
// malformed one stops the process.
func Get() *PermissionData {
	return embedded()
}

func parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	var errs []error

	seen := make(map[string]bool, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		k := key(endpoint.Method, endpoint.Path)

		switch {
		case !slices.Contains(knownMethods, endpoint.Method):
			errs = append(errs, fmt.Errorf("%s: unknown method", k))
		case seen[k]:
			errs = append(errs, fmt.Errorf("%s: listed twice", k))
		case endpoint.Skip && len(endpoint.Permissions) > 0:
			errs = append(errs, fmt.Errorf("%s: public route lists roles", k))
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				errs = append(errs, fmt.Errorf("%s: unknown role %q", k, role))
			}
		}

		seen[k] = true
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &data, nil
}
