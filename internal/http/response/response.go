// Package response формирует единый JSON-конверт ответов API:
// {"mensaje", "data"} при успехе и {"mensaje", "error"} при ошибке.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Response успешный ответ.
type Response struct {
	Mensaje string `json:"mensaje" example:"Parcelas obtenidas exitosamente"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse ответ с ошибкой. Error заполняется только для внутренних ошибок.
type ErrorResponse struct {
	Mensaje string `json:"mensaje" example:"Parcela no encontrada"`
	Error   string `json:"error,omitempty"`
}

const (
	msgInternal    = "Error interno del servidor"
	msgBadBody     = "Cuerpo de la solicitud inválido"
	msgBadID       = "Identificador inválido"
	msgRateLimited = "Demasiadas solicitudes, intente más tarde"
)

// OK возвращает успешный ответ.
func OK(msg string, data any) Response {
	return Response{Mensaje: msg, Data: data}
}

// Error возвращает ответ с ошибкой.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Mensaje: msg}
}

// JSON пишет статус и тело.
func JSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// FromError сопоставляет доменную ошибку со статусом HTTP.
func FromError(err error) (int, ErrorResponse) {
	var de *models.Error
	if errors.As(err, &de) {
		switch {
		case errors.Is(de.Kind, models.ErrNotFound):
			return http.StatusNotFound, Error(de.Message)
		case errors.Is(de.Kind, models.ErrUnauthorized):
			return http.StatusUnauthorized, Error(de.Message)
		case errors.Is(de.Kind, models.ErrValidation), errors.Is(de.Kind, models.ErrConflict):
			return http.StatusBadRequest, Error(de.Message)
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Mensaje: msgInternal, Error: err.Error()}
}

// Fail логирует ошибку и отвечает статусом из FromError.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := FromError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}
	JSON(w, r, status, body)
}

// TooManyRequests ответ ограничителя частоты.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusTooManyRequests, Error(msgRateLimited))
}

// BadID ответ на нечисловой идентификатор в пути.
func BadID(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusBadRequest, Error(msgBadID))
}

// Bind декодирует JSON-тело в dst и проверяет теги validate.
// Ошибки возвращаются как models.ErrValidation.
func Bind(r *http.Request, validate *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &models.Error{Kind: models.ErrValidation, Message: msgBadBody}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ValidationError(verrs)
		}
		return &models.Error{Kind: models.ErrValidation, Message: err.Error()}
	}
	return nil
}

// ValidationError собирает нарушения тегов в одно сообщение.
func ValidationError(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		field := err.Field()
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("El campo %s es requerido", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe ser un correo válido", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("El campo %s no puede superar %s caracteres", field, err.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, err.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("El campo %s debe ser mayor a %s", field, err.Param()))
		case "eqfield":
			msgs = append(msgs, "Las contraseñas no coinciden")
		default:
			msgs = append(msgs, fmt.Sprintf("El campo %s no es válido", field))
		}
	}
	return &models.Error{Kind: models.ErrValidation, Message: strings.Join(msgs, ", ")}
}

// NewValidator возвращает валидатор, который называет поля по тегу json.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
