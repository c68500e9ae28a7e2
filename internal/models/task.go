package models

import (
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/lib/opt"
)

// Task запланированная работа на участке. Выполнена, если задана FechaFinalizacion.
type Task struct {
	ID                int64      `json:"id"`
	FechaProgramada   time.Time  `json:"fechaProgramada"`
	FechaFinalizacion *time.Time `json:"fechaFinalizacion"`
	Nombre            string     `json:"nombre"`
	Descripcion       string     `json:"descripcion"`
	ParcelaID         int64      `json:"parcelaId"`
	NombreParcela     string     `json:"nombreParcela"`
	Completada        bool       `json:"completada"`
}

// TaskRequest создание задачи.
type TaskRequest struct {
	FechaProgramada string `json:"fechaProgramada" validate:"required"`
	Nombre          string `json:"nombre" validate:"required,max=100"`
	Descripcion     string `json:"descripcion" validate:"required,max=500"`
	ParcelaID       int64  `json:"parcelaId" validate:"required,gt=0"`
}

// TaskUpdate частичное обновление: отсутствующие в JSON поля не меняются.
// FechaFinalizacion допускает явный null, который снимает отметку о выполнении.
type TaskUpdate struct {
	FechaProgramada   opt.Field[string] `json:"fechaProgramada"`
	FechaFinalizacion opt.Field[string] `json:"fechaFinalizacion"`
	Nombre            opt.Field[string] `json:"nombre"`
	Descripcion       opt.Field[string] `json:"descripcion"`
}

// Validate проверяет длину текстовых полей. Пустые строки и null в nombre и
// descripcion не ошибка: такие поля остаются без изменений.
func (u TaskUpdate) Validate() error {
	if v, ok := u.Nombre.Get(); ok && len([]rune(v)) > 100 {
		return Invalid("El nombre no puede superar 100 caracteres")
	}
	if v, ok := u.Descripcion.Get(); ok && len([]rune(v)) > 500 {
		return Invalid("La descripción no puede superar 500 caracteres")
	}
	if u.FechaProgramada.Set && u.FechaProgramada.Null {
		return Invalid("La fecha programada es requerida")
	}
	return nil
}
