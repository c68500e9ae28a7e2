package models

import "github.com/shopspring/decimal"

// Totals итоги по всем доходам и расходам.
type Totals struct {
	IngresosTotales decimal.Decimal `json:"ingresosTotales"`
	GastosTotales   decimal.Decimal `json:"gastosTotales"`
	BalanceTotal    decimal.Decimal `json:"balanceTotal"`
	MargenPromedio  decimal.Decimal `json:"margenPromedio"`
}

// MonthlyRow суммы за календарный месяц, Mes в формате YYYY-MM.
type MonthlyRow struct {
	Mes      string          `json:"mes"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Gastos   decimal.Decimal `json:"gastos"`
}

// ParcelRentability доходность одного участка.
type ParcelRentability struct {
	NombreParcela string          `json:"nombreParcela"`
	Ingresos      decimal.Decimal `json:"ingresos"`
	Gastos        decimal.Decimal `json:"gastos"`
	Balance       decimal.Decimal `json:"balance"`
	Margen        decimal.Decimal `json:"margen"`
}

// AccountingSummary сводка для панели бухгалтерии.
type AccountingSummary struct {
	Totales              Totals              `json:"totales"`
	AnaliticasTemporales []MonthlyRow        `json:"analiticasTemporales"`
	RentabilidadParcelas []ParcelRentability `json:"rentabilidadParcelas"`
}
