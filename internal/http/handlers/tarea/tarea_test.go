package tarea

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/greencontrol/internal/http/middlewarectx"
	"github.com/magabrotheeeer/greencontrol/internal/lib/opt"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) ListByParcel(ctx context.Context, parcelID, userID int64) ([]*models.Task, error) {
	args := m.Called(ctx, parcelID, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id, userID int64) (*models.Task, error) {
	args := m.Called(ctx, id, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, req models.TaskRequest, userID int64) (*models.Task, error) {
	args := m.Called(ctx, req, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id int64, req models.TaskUpdate, userID int64) (*models.Task, error) {
	args := m.Called(ctx, id, req, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) MarkCompleted(ctx context.Context, id, userID int64) (*models.Task, error) {
	args := m.Called(ctx, id, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func router(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middlewarectx.WithUserID(req.Context(), 3)))
		})
	})
	r.Route("/api/Tarea", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/parcela/{parcelaId}", h.ListByParcel)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Put("/{id}/completar", h.Complete)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUpdate_Partial(t *testing.T) {
	svc := new(MockService)
	svc.On("Update", mock.Anything, int64(7), models.TaskUpdate{
		Nombre:            opt.Some("Riego"),
		FechaFinalizacion: opt.Null[string](),
	}, int64(3)).Return(&models.Task{ID: 7, Nombre: "Riego"}, nil).Once()

	w := do(router(New(sl.Discard(), svc)), http.MethodPut, "/api/Tarea/7", `{"nombre":"Riego","fechaFinalizacion":null}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tarea actualizada exitosamente")
	svc.AssertExpectations(t)
}

func TestComplete(t *testing.T) {
	done := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	svc := new(MockService)
	svc.On("MarkCompleted", mock.Anything, int64(7), int64(3)).
		Return(&models.Task{ID: 7, FechaFinalizacion: &done, Completada: true}, nil).Once()

	w := do(router(New(sl.Discard(), svc)), http.MethodPut, "/api/Tarea/7/completar", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tarea marcada como completada")
	assert.Contains(t, w.Body.String(), `"completada":true`)
	svc.AssertExpectations(t)
}

func TestListByParcel(t *testing.T) {
	svc := new(MockService)
	svc.On("ListByParcel", mock.Anything, int64(11), int64(3)).Return([]*models.Task{}, nil).Once()

	w := do(router(New(sl.Discard(), svc)), http.MethodGet, "/api/Tarea/parcela/11", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mensaje":"Tareas obtenidas exitosamente","data":[]}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешно",
			body: `{"fechaProgramada":"2025-05-01","nombre":"Riego","descripcion":"Regar lote A","parcelaId":4}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(r models.TaskRequest) bool {
					return r.ParcelaID == 4 && r.Nombre == "Riego"
				}), int64(3)).Return(&models.Task{ID: 1, Nombre: "Riego", ParcelaID: 4}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   "Tarea creada exitosamente",
		},
		{
			name: "чужой участок",
			body: `{"fechaProgramada":"2025-05-01","nombre":"Riego","descripcion":"Regar","parcelaId":99}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything, int64(3)).Return(nil, models.ErrParcelNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Parcela no encontrada",
		},
		{
			name:           "без описания",
			body:           `{"fechaProgramada":"2025-05-01","nombre":"Riego","parcelaId":4}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "El campo descripcion es requerido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := do(router(New(sl.Discard(), svc)), http.MethodPost, "/api/Tarea", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, int64(5), int64(3)).Return(models.ErrTaskNotFound).Once()

	w := do(router(New(sl.Discard(), svc)), http.MethodDelete, "/api/Tarea/5", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Tarea no encontrada")
}
