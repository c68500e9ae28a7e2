// Package models содержит доменные сущности GreenControl, DTO запросов и ответов
// HTTP API, а также доменные ошибки. Имена JSON-полей совпадают с контрактом фронтенда.
package models

import "time"

// User представляет зарегистрированного пользователя.
type User struct {
	ID            int64
	Nombre        string
	Apellido      *string
	Telefono      string
	Correo        string
	PasswordHash  string
	FechaCreacion time.Time
}

// RegisterRequest данные для регистрации.
type RegisterRequest struct {
	Nombre     string  `json:"nombre" validate:"required,max=100"`
	Apellido   *string `json:"apellido,omitempty" validate:"omitempty,max=100"`
	Telefono   string  `json:"telefono" validate:"required,max=20"`
	Correo     string  `json:"correo" validate:"required,email,max=100"`
	Contrasena string  `json:"contrasena" validate:"required,min=6,max=72"`
}

// LoginRequest данные для входа.
type LoginRequest struct {
	Correo     string `json:"correo" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// AuthResult ответ на регистрацию и вход.
type AuthResult struct {
	ID       int64   `json:"id"`
	Nombre   string  `json:"nombre"`
	Apellido *string `json:"apellido"`
	Correo   string  `json:"correo"`
	Token    string  `json:"token"`
}

// Profile профиль пользователя без хэша пароля.
type Profile struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Apellido      *string   `json:"apellido"`
	Telefono      string    `json:"telefono"`
	Correo        string    `json:"correo"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}

// ProfileRequest обновление профиля.
type ProfileRequest struct {
	Nombre   string  `json:"nombre" validate:"required,max=100"`
	Apellido *string `json:"apellido,omitempty" validate:"omitempty,max=100"`
	Telefono string  `json:"telefono" validate:"required,max=20"`
}

// ChangePasswordRequest смена пароля.
type ChangePasswordRequest struct {
	ContrasenaActual    string `json:"contrasenaActual" validate:"required"`
	NuevaContrasena     string `json:"nuevaContrasena" validate:"required,min=6,max=72"`
	ConfirmarContrasena string `json:"confirmarContrasena" validate:"required,eqfield=NuevaContrasena"`
}

// ToProfile возвращает публичное представление пользователя.
func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:            u.ID,
		Nombre:        u.Nombre,
		Apellido:      u.Apellido,
		Telefono:      u.Telefono,
		Correo:        u.Correo,
		FechaCreacion: u.FechaCreacion,
	}
}
