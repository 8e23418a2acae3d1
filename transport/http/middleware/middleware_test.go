package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
)

func testPermissions() *permissions.PermissionData {
	return &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/rooms", Method: http.MethodGet, Skip: true},
			{Path: "/v1/rooms", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin}},
		},
	}
}

func newAuthRouter(t *testing.T, jwtService jwt.JWT) chi.Router {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), testPermissions(), cfg)

	router := chi.NewRouter()
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		routerGroup.Route("/rooms", func(rooms chi.Router) {
			rooms.Get("/", func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusOK)
			})
			rooms.Post("/", func(writer http.ResponseWriter, request *http.Request) {
				user, _ := request.Context().Value(constant.ContextKeyUserID).(string)
				writer.Header().Set("X-User", user)
				writer.WriteHeader(http.StatusCreated)
			})
		})
	})

	return router
}

func serve(router http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestAuth_PublicRoute(t *testing.T) {
	router := newAuthRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)))

	recorder := serve(router, http.MethodGet, "/v1/rooms", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)))

	recorder := serve(router, http.MethodPost, "/v1/rooms", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
	jwtService.EXPECT().ValidateToken(gomock.Any(), "bad", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

	router := newAuthRouter(t, jwtService)

	recorder := serve(router, http.MethodPost, "/v1/rooms", map[string]string{constant.RequestHeaderAuthorization: "Bearer bad"})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Token has expired")
}

func TestAuth_EmptyClaims(t *testing.T) {
	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
	jwtService.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{Email: "a@b.c"}, nil)

	router := newAuthRouter(t, jwtService)

	recorder := serve(router, http.MethodPost, "/v1/rooms", map[string]string{constant.RequestHeaderAuthorization: "Bearer token"})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected int
	}{
		{name: "admin allowed", role: constant.RoleAdmin, expected: http.StatusCreated},
		{name: "customer forbidden", role: constant.RoleCustomer, expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
			jwtService.EXPECT().
				ValidateToken(gomock.Any(), "token", jwt.AccessToken).
				Return(&jwt.Claims{UserID: "u1", Email: "a@b.c", Role: tt.role}, nil)

			router := newAuthRouter(t, jwtService)

			recorder := serve(router, http.MethodPost, "/v1/rooms", map[string]string{constant.RequestHeaderAuthorization: "Bearer token"})

			assert.Equal(t, tt.expected, recorder.Code)

			if tt.expected == http.StatusCreated {
				assert.Equal(t, "u1", recorder.Header().Get("X-User"))
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	router := newAuthRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)))

	recorder := serve(router, http.MethodPost, "/v1/rooms", map[string]string{constant.RequestHeaderAPIKey: "internal-key"})
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serve(router, http.MethodPost, "/v1/rooms", map[string]string{constant.RequestHeaderAPIKey: "wrong"})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func newAppMiddleware(t *testing.T, cfg *config.Config) (*appMiddleware, *cacheMocks.MockRedisCache) {
	t.Helper()

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	return &appMiddleware{
		otel:    mocks.NewOtel(),
		config:  cfg,
		cache:   redisCache,
		metrics: metrics.New(cfg),
	}, redisCache
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Namespace = "hotel"

	app, _ := newAppMiddleware(t, cfg)

	router := chi.NewRouter()
	router.Use(app.Metrics)
	router.Get("/v1/rooms/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	serve(router, http.MethodGet, "/v1/rooms/a", nil)
	serve(router, http.MethodGet, "/v1/rooms/b", nil)

	counter := app.metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/rooms/{id}", "404")
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))
}

func TestTracingAndLogger_PassThrough(t *testing.T) {
	cfg := &config.Config{}
	app, _ := newAppMiddleware(t, cfg)

	router := chi.NewRouter()
	router.Use(app.Tracing, app.Logger)
	router.Get("/ping", func(writer http.ResponseWriter, request *http.Request) {
		assert.NotNil(t, request.Context())
		writer.WriteHeader(http.StatusTeapot)
	})

	recorder := serve(router, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	t.Run("under the limit", func(t *testing.T) {
		app, redisCache := newAppMiddleware(t, cfg)

		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*int)) = 1

				return nil
			})
		redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), 2, 60).Return(nil)

		handler := app.RateLimit()(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))

		recorder := serve(handler, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "0", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		app, redisCache := newAppMiddleware(t, cfg)

		redisCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*int)) = 2

				return nil
			})

		handler := app.RateLimit()(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))

		recorder := serve(handler, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("cache down lets the request through", func(t *testing.T) {
		app, redisCache := newAppMiddleware(t, cfg)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		handler := app.RateLimit()(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))

		recorder := serve(handler, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})
}

func TestClientAddress(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	request.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientAddress(request))

	request.RemoteAddr = "10.0.0.7"
	assert.Equal(t, "10.0.0.7", clientAddress(request))
}
