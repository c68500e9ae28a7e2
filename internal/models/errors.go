package models

import "errors"

// Базовые категории доменных ошибок. HTTP-слой сопоставляет их со статусами ответа.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error доменная ошибка с сообщением для клиента и категорией Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap позволяет проверять категорию через errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// Invalid создаёт ошибку валидации с сообщением для клиента.
func Invalid(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

var (
	ErrUserNotFound         = &Error{Kind: ErrNotFound, Message: "Usuario no encontrado"}
	ErrParcelNotFound       = &Error{Kind: ErrNotFound, Message: "Parcela no encontrada"}
	ErrCropNotFound         = &Error{Kind: ErrNotFound, Message: "Cultivo no encontrado"}
	ErrPlantingNotFound     = &Error{Kind: ErrNotFound, Message: "Siembra no encontrada"}
	ErrTaskNotFound         = &Error{Kind: ErrNotFound, Message: "Tarea no encontrada"}
	ErrNotificationNotFound = &Error{Kind: ErrNotFound, Message: "Notificación no encontrada"}
	ErrExpenseNotFound      = &Error{Kind: ErrNotFound, Message: "Gasto no encontrado"}
	ErrIncomeNotFound       = &Error{Kind: ErrNotFound, Message: "Ingreso no encontrado"}

	ErrDuplicateEmail         = &Error{Kind: ErrValidation, Message: "El correo ya está registrado"}
	ErrConflictActivePlanting = &Error{Kind: ErrConflict, Message: "La parcela ya tiene una siembra activa"}
	ErrParcelHasPlanting      = &Error{Kind: ErrConflict, Message: "La parcela ya tiene una siembra registrada, actualícela en lugar de crear una nueva"}
	ErrCropInUse              = &Error{Kind: ErrConflict, Message: "El cultivo está asociado a una siembra"}

	ErrPasswordTooLong = &Error{Kind: ErrValidation, Message: "La contraseña no puede superar 72 bytes"}
	ErrOutOfRange      = &Error{Kind: ErrValidation, Message: "Valor fuera del rango permitido"}

	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Message: "Correo o contraseña incorrectos"}
	ErrWrongPassword      = &Error{Kind: ErrUnauthorized, Message: "La contraseña actual es incorrecta"}
	ErrUnauthenticated    = &Error{Kind: ErrUnauthorized, Message: "Usuario no autenticado"}
)

// BadDate ошибка валидации для поля с неразборчивой датой.
func BadDate(field string) error {
	return Invalid("Formato de fecha inválido en " + field)
}
