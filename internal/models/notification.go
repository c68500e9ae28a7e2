package models

import "time"

// Notification сообщение пользователю. Прочитано, если задана FechaLeido.
type Notification struct {
	ID          int64      `json:"id"`
	Titulo      string     `json:"titulo"`
	Descripcion string     `json:"descripcion"`
	FechaEnvio  time.Time  `json:"fechaEnvio"`
	FechaLeido  *time.Time `json:"fechaLeido"`
	Leida       bool       `json:"leida"`
	UsuarioID   int64      `json:"-"`
}

// NotificationRequest создание уведомления внешней автоматизацией.
type NotificationRequest struct {
	Titulo      string `json:"titulo" validate:"required,max=150"`
	Descripcion string `json:"descripcion" validate:"required,max=500"`
	UsuarioID   int64  `json:"usuarioId" validate:"required,gt=0"`
}
