package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

type checkerFunc func(ctx context.Context) map[string]error

func (f checkerFunc) Check(ctx context.Context) map[string]error { return f(ctx) }

func TestHandler(t *testing.T) {
	tests := []struct {
		name           string
		failed         map[string]error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "всё работает",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "redis недоступен",
			failed:         map[string]error{"redis": errors.New("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"unavailable","checks":{"redis":"connection refused"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(sl.Discard(), checkerFunc(func(context.Context) map[string]error { return tt.failed }))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
