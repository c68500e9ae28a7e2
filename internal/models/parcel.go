package models

import (
	"github.com/shopspring/decimal"
)

var (
	maxPH = decimal.NewFromInt(14)
	// Предел NUMERIC(10,2).
	maxArea = decimal.New(1, 8)
)

// HasScale сообщает, что у d не больше places знаков после запятой.
func HasScale(d decimal.Decimal, places int32) bool {
	return d.Round(places).Equal(d)
}

// Parcel участок земли, принадлежащий одному пользователю.
type Parcel struct {
	ID            int64               `json:"id"`
	Area          decimal.Decimal     `json:"area"`
	Ubicacion     string              `json:"ubicacion"`
	NombreParcela string              `json:"nombreParcela"`
	TipoSuelo     *string             `json:"tipoSuelo"`
	PhSuelo       decimal.NullDecimal `json:"phSuelo"`
	UsuarioID     int64               `json:"-"`
	TieneSiembra  bool                `json:"tieneSiembra"`
	SiembraActual *Planting           `json:"siembraActual"`
}

// ParcelRequest данные для создания и полной замены участка.
// Поля decimal проверяются в Validate: validator не разбирает теги на структурах.
type ParcelRequest struct {
	Area          decimal.Decimal     `json:"area"`
	Ubicacion     string              `json:"ubicacion" validate:"required,max=200"`
	NombreParcela string              `json:"nombreParcela" validate:"required,max=100"`
	TipoSuelo     *string             `json:"tipoSuelo,omitempty" validate:"omitempty,max=50"`
	PhSuelo       decimal.NullDecimal `json:"phSuelo"`
}

// Validate проверяет площадь и кислотность почвы.
func (r ParcelRequest) Validate() error {
	if !r.Area.IsPositive() {
		return Invalid("El área debe ser mayor a 0")
	}
	if !HasScale(r.Area, 2) {
		return Invalid("El área admite como máximo 2 decimales")
	}
	if !r.Area.LessThan(maxArea) {
		return Invalid("El área excede el máximo permitido")
	}
	if r.PhSuelo.Valid && (r.PhSuelo.Decimal.IsNegative() || r.PhSuelo.Decimal.GreaterThan(maxPH)) {
		return Invalid("El pH debe estar entre 0 y 14")
	}
	if r.Ubicacion == "" {
		return Invalid("La ubicación es requerida")
	}
	if r.NombreParcela == "" {
		return Invalid("El nombre de la parcela es requerido")
	}
	return nil
}

// ToParcel переносит поля запроса в сущность.
func (r ParcelRequest) ToParcel(userID int64) Parcel {
	return Parcel{
		Area:          r.Area,
		Ubicacion:     r.Ubicacion,
		NombreParcela: r.NombreParcela,
		TipoSuelo:     r.TipoSuelo,
		PhSuelo:       r.PhSuelo,
		UsuarioID:     userID,
	}
}
