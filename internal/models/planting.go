package models

import "time"

// Planting цикл выращивания культуры на участке. Активна, пока не задана FechaFinal.
type Planting struct {
	ID               int64      `json:"id"`
	ParcelaID        int64      `json:"parcelaId"`
	NombreParcela    string     `json:"nombreParcela"`
	CultivoID        int64      `json:"cultivoId"`
	NombreCultivo    string     `json:"nombreCultivo"`
	FechaInicio      time.Time  `json:"fechaInicio"`
	FechaFinal       *time.Time `json:"fechaFinal"`
	FechaGerminacion *time.Time `json:"fechaGerminacion"`
	FechaFloracion   *time.Time `json:"fechaFloracion"`
	Activa           bool       `json:"activa"`
}

// IsActive сообщает, идёт ли посадка сейчас.
func (p *Planting) IsActive() bool {
	return p.FechaFinal == nil
}

// PlantingRequest запрос на создание посадки. Даты приходят строками.
type PlantingRequest struct {
	ParcelaID        int64   `json:"parcelaId" validate:"required,gt=0"`
	CultivoID        int64   `json:"cultivoId" validate:"required,gt=0"`
	FechaInicio      string  `json:"fechaInicio" validate:"required"`
	FechaGerminacion *string `json:"fechaGerminacion,omitempty"`
	FechaFloracion   *string `json:"fechaFloracion,omitempty"`
}

// PlantingUpdate полностью заменяет три изменяемые даты посадки.
type PlantingUpdate struct {
	FechaFinal       *string `json:"fechaFinal"`
	FechaGerminacion *string `json:"fechaGerminacion"`
	FechaFloracion   *string `json:"fechaFloracion"`
}

// PlantingDates разобранные даты посадки для хранилища.
type PlantingDates struct {
	FechaInicio      time.Time
	FechaFinal       *time.Time
	FechaGerminacion *time.Time
	FechaFloracion   *time.Time
}
