package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/greencontrol/internal/http/middlewarectx"
	"github.com/magabrotheeeer/greencontrol/internal/lib/jwt"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) ValidateToken(token string) (*jwt.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*jwt.Claims)
	return claims, args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *ValidatorMock)
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing header",
			setupMock:      func(*ValidatorMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc",
			setupMock:      func(*ValidatorMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			setupMock: func(m *ValidatorMock) {
				m.On("ValidateToken", "bad").Return(nil, errors.New("expired")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good",
			setupMock: func(m *ValidatorMock) {
				m.On("ValidateToken", "good").Return(&jwt.Claims{UserID: 42, Email: "a@b.c"}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := new(ValidatorMock)
			tt.setupMock(v)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				id, ok := middlewarectx.UserIDFrom(r.Context())
				assert.True(t, ok)
				assert.Equal(t, int64(42), id)
				assert.Equal(t, "a@b.c", r.Context().Value(middlewarectx.Email))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/Parcela", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			middlewarectx.JWTMiddleware(v, sl.Discard())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.Contains(t, w.Body.String(), `"mensaje":"Usuario no autenticado"`)
			}
			v.AssertExpectations(t)
		})
	}
}

func TestUserIDFrom(t *testing.T) {
	_, ok := middlewarectx.UserIDFrom(context.Background())
	assert.False(t, ok)

	_, ok = middlewarectx.UserIDFrom(middlewarectx.WithUserID(context.Background(), 0))
	assert.False(t, ok)

	id, ok := middlewarectx.UserIDFrom(middlewarectx.WithUserID(context.Background(), 9))
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(1, 2)
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.SetNow(func() time.Time { return frozen })

	h := middlewarectx.RateLimitMiddleware(limiter, sl.Discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(userID int64) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if userID > 0 {
			req = req.WithContext(middlewarectx.WithUserID(req.Context(), userID))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(1))
	assert.Equal(t, http.StatusOK, do(1))
	assert.Equal(t, http.StatusTooManyRequests, do(1))
	// другой пользователь не делит лимит
	assert.Equal(t, http.StatusOK, do(2))
	// анонимные запросы считаются по адресу
	assert.Equal(t, http.StatusOK, do(0))
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.SetNow(func() time.Time { return now })

	limiter.Allow("a")
	limiter.Allow("b")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(time.Hour)
	limiter.Allow("c")
	assert.Equal(t, 1, limiter.Len())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middlewarectx.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/Parcela/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Parcela/"+id, nil))
	}

	expected := `
# HELP greencontrol_http_requests_total HTTP requests by route, method and status.
# TYPE greencontrol_http_requests_total counter
greencontrol_http_requests_total{method="GET",route="/api/Parcela/{id}",status="404"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "greencontrol_http_requests_total"))
}
