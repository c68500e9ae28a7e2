package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FinanceKind вид финансовой записи: расход или доход.
type FinanceKind string

const (
	KindExpense FinanceKind = "gasto"
	KindIncome  FinanceKind = "ingreso"
)

// NotFound возвращает ошибку отсутствия записи данного вида.
func (k FinanceKind) NotFound() error {
	if k == KindIncome {
		return ErrIncomeNotFound
	}
	return ErrExpenseNotFound
}

// FinanceRecord расход или доход. Общий (EsGeneral), если не привязан к участку.
type FinanceRecord struct {
	ID            int64           `json:"id"`
	Fecha         time.Time       `json:"fecha"`
	Monto         decimal.Decimal `json:"monto"`
	Concepto      string          `json:"concepto"`
	NotaAdicional *string         `json:"notaAdicional"`
	ParcelaID     *int64          `json:"parcelaId"`
	NombreParcela *string         `json:"nombreParcela"`
	EsGeneral     bool            `json:"esGeneral"`
	UsuarioID     int64           `json:"-"`
}

// FinanceRequest создание и замена финансовой записи.
type FinanceRequest struct {
	Fecha         string          `json:"fecha" validate:"required"`
	Monto         decimal.Decimal `json:"monto"`
	Concepto      string          `json:"concepto" validate:"required,max=200"`
	ParcelaID     *int64          `json:"parcelaId,omitempty" validate:"omitempty,gt=0"`
	NotaAdicional *string         `json:"notaAdicional,omitempty" validate:"omitempty,max=500"`
}

// Предел NUMERIC(18,2).
var maxMonto = decimal.New(1, 16)

// Validate проверяет сумму.
func (r FinanceRequest) Validate() error {
	if !r.Monto.IsPositive() {
		return Invalid("El monto debe ser mayor a 0")
	}
	if !HasScale(r.Monto, 2) {
		return Invalid("El monto admite como máximo 2 decimales")
	}
	if !r.Monto.LessThan(maxMonto) {
		return Invalid("El monto excede el máximo permitido")
	}
	if r.Concepto == "" {
		return Invalid("El concepto es requerido")
	}
	return nil
}

// Значения фильтра tipo.
const (
	ScopeGeneral = "general"
	ScopeParcel  = "parcela"
)

// FinanceFilter параметры выборки. Неизвестные значения Tipo игнорируются.
type FinanceFilter struct {
	Tipo      string
	ParcelaID *int64
}

// Scope нормализует Tipo: "general", "parcela" или пустая строка.
func (f FinanceFilter) Scope() string {
	switch strings.ToLower(f.Tipo) {
	case ScopeGeneral:
		return ScopeGeneral
	case ScopeParcel:
		return ScopeParcel
	default:
		return ""
	}
}
