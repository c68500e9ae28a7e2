package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMensaje string
		wantDetail  bool
	}{
		{"not found", fmt.Errorf("svc: %w", models.ErrParcelNotFound), http.StatusNotFound, "Parcela no encontrada", false},
		{"duplicate email", models.ErrDuplicateEmail, http.StatusBadRequest, "El correo ya está registrado", false},
		{"active planting", fmt.Errorf("tx: %w", models.ErrConflictActivePlanting), http.StatusBadRequest, "La parcela ya tiene una siembra activa", false},
		{"crop in use", models.ErrCropInUse, http.StatusBadRequest, "El cultivo está asociado a una siembra", false},
		{"bad credentials", models.ErrInvalidCredentials, http.StatusUnauthorized, "Correo o contraseña incorrectos", false},
		{"validation", models.Invalid("El monto debe ser mayor a 0"), http.StatusBadRequest, "El monto debe ser mayor a 0", false},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "Error interno del servidor", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := FromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMensaje, body.Mensaje)
			if tt.wantDetail {
				assert.Equal(t, tt.err.Error(), body.Error)
			} else {
				assert.Empty(t, body.Error)
			}
		})
	}
}

func TestBind(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"correo":"a@b.com","contrasena":"x"}`, ""},
		{"broken json", `{"correo":`, "Cuerpo de la solicitud inválido"},
		{"missing field", `{"correo":"a@b.com"}`, "El campo contrasena es requerido"},
		{"bad email", `{"correo":"nope","contrasena":"x"}`, "El campo correo debe ser un correo válido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req models.LoginRequest
			err := Bind(r, v, &req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "a@b.com", req.Correo)
				return
			}
			require.ErrorIs(t, err, models.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBind_PasswordConfirmation(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(
		`{"contrasenaActual":"a","nuevaContrasena":"123456","confirmarContrasena":"654321"}`))
	var req models.ChangePasswordRequest
	err := Bind(r, NewValidator(), &req)
	require.Error(t, err)
	assert.Equal(t, "Las contraseñas no coinciden", err.Error())
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(w, r, http.StatusCreated, OK("Creado", map[string]int{"id": 1}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"mensaje":"Creado","data":{"id":1}}`, w.Body.String())
}
