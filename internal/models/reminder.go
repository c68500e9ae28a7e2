package models

import "time"

// ScheduledTask открытая задача вместе с владельцем участка. Используется лентой напоминаний.
type ScheduledTask struct {
	TaskID          int64
	Nombre          string
	FechaProgramada time.Time
	NombreParcela   string
	UsuarioID       int64
	Correo          string
	Telefono        string
}

// ReminderUserInfo контакты получателя.
type ReminderUserInfo struct {
	UsuarioID int64  `json:"usuarioId"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
}

// ReminderTask задача в ленте, дата в формате dd/MM/yyyy.
type ReminderTask struct {
	Nombre          string `json:"nombre"`
	FechaProgramada string `json:"fechaProgramada"`
	NombreParcela   string `json:"nombreParcela"`
}

// ReminderGroup задачи одного пользователя.
type ReminderGroup struct {
	Info   ReminderUserInfo `json:"info"`
	Tareas []ReminderTask   `json:"tareas"`
}

// ReminderFeed ответ ленты напоминаний.
type ReminderFeed struct {
	Usuarios []ReminderGroup `json:"usuarios"`
}

// ReminderMessage сообщение очереди напоминаний.
type ReminderMessage struct {
	Kind  string        `json:"kind"`
	Group ReminderGroup `json:"group"`
}
