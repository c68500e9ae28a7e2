package usuario

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/greencontrol/internal/http/middlewarectx"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) UpdateProfile(ctx context.Context, userID int64, req models.ProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func authed(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middlewarectx.WithUserID(req.Context(), 6))
}

func TestProfile(t *testing.T) {
	svc := new(MockService)
	svc.On("GetProfile", mock.Anything, int64(6)).
		Return(&models.Profile{ID: 6, Nombre: "Ana", Correo: "ana@example.com"}, nil).Once()

	w := httptest.NewRecorder()
	New(sl.Discard(), svc).Profile(w, authed(http.MethodGet, "/api/Usuario/perfil", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"correo":"ana@example.com"`)
	assert.NotContains(t, w.Body.String(), "hash")
	svc.AssertExpectations(t)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc := new(MockService)

	w := httptest.NewRecorder()
	New(sl.Discard(), svc).UpdateProfile(w, authed(http.MethodPut, "/api/Usuario/perfil", `{"nombre":"Ana"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El campo telefono es requerido")
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешно",
			body: `{"contrasenaActual":"viejo1","nuevaContrasena":"nuevo12","confirmarContrasena":"nuevo12"}`,
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, int64(6), models.ChangePasswordRequest{
					ContrasenaActual: "viejo1", NuevaContrasena: "nuevo12", ConfirmarContrasena: "nuevo12",
				}).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Contraseña cambiada exitosamente",
		},
		{
			name:           "подтверждение не совпадает",
			body:           `{"contrasenaActual":"viejo1","nuevaContrasena":"nuevo12","confirmarContrasena":"otro123"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Las contraseñas no coinciden",
		},
		{
			name:           "новый пароль длиннее 72 символов",
			body:           `{"contrasenaActual":"viejo1","nuevaContrasena":"` + strings.Repeat("n", 73) + `","confirmarContrasena":"` + strings.Repeat("n", 73) + `"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "nuevaContrasena",
		},
		{
			name: "неверный текущий пароль",
			body: `{"contrasenaActual":"malo12","nuevaContrasena":"nuevo12","confirmarContrasena":"nuevo12"}`,
			setupMock: func(m *MockService) {
				m.On("ChangePassword", mock.Anything, int64(6), mock.Anything).Return(models.ErrWrongPassword).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "La contraseña actual es incorrecta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(sl.Discard(), svc).ChangePassword(w, authed(http.MethodPut, "/api/Usuario/cambiar-contrasena", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
