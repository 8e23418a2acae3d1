package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/shared/constant"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		state    ServerState
		expected int
		message  string
	}{
		{name: "ready", state: ServerStateReady, expected: http.StatusOK, message: "OK"},
		{name: "grace period", state: ServerStateInGracePeriod, expected: http.StatusServiceUnavailable, message: constant.ResponseErrorPrepareShutdown},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, expected: http.StatusServiceUnavailable, message: constant.ResponseErrorPrepareShutdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &HTTP{Config: &config.Config{}, State: tt.state}

			recorder := httptest.NewRecorder()
			server.health(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expected, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.message)
		})
	}
}
