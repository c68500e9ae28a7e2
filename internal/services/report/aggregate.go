package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals считает суммы доходов и расходов, баланс и маржу.
func Totals(incomes, expenses []*models.FinanceRecord) models.Totals {
	in := sum(incomes)
	out := sum(expenses)
	balance := in.Sub(out)
	return models.Totals{
		IngresosTotales: in,
		GastosTotales:   out,
		BalanceTotal:    balance,
		MargenPromedio:  margin(balance, in),
	}
}

// Monthly группирует записи по месяцам (YYYY-MM) в хронологическом порядке.
// Записи с нулевой датой относятся к месяцу now; второе значение их количество.
func Monthly(incomes, expenses []*models.FinanceRecord, now time.Time) ([]models.MonthlyRow, int) {
	rows := make(map[string]*models.MonthlyRow)
	coerced := 0

	add := func(records []*models.FinanceRecord, income bool) {
		for _, r := range records {
			date := r.Fecha
			if date.Year() <= 1 {
				date = now
				coerced++
			}
			key := date.Format("2006-01")
			row, ok := rows[key]
			if !ok {
				row = &models.MonthlyRow{Mes: key, Ingresos: decimal.Zero, Gastos: decimal.Zero}
				rows[key] = row
			}
			if income {
				row.Ingresos = row.Ingresos.Add(r.Monto)
			} else {
				row.Gastos = row.Gastos.Add(r.Monto)
			}
		}
	}
	add(incomes, true)
	add(expenses, false)

	out := make([]models.MonthlyRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mes < out[j].Mes })
	return out, coerced
}

// ByParcel считает доходность по участкам. Общие записи не учитываются.
func ByParcel(incomes, expenses []*models.FinanceRecord) []models.ParcelRentability {
	type acc struct{ in, out decimal.Decimal }
	groups := make(map[string]*acc)
	var order []string

	add := func(records []*models.FinanceRecord, income bool) {
		for _, r := range records {
			if r.ParcelaID == nil {
				continue
			}
			name := ""
			if r.NombreParcela != nil {
				name = *r.NombreParcela
			}
			g, ok := groups[name]
			if !ok {
				g = &acc{in: decimal.Zero, out: decimal.Zero}
				groups[name] = g
				order = append(order, name)
			}
			if income {
				g.in = g.in.Add(r.Monto)
			} else {
				g.out = g.out.Add(r.Monto)
			}
		}
	}
	add(incomes, true)
	add(expenses, false)

	out := make([]models.ParcelRentability, 0, len(order))
	for _, name := range order {
		g := groups[name]
		balance := g.in.Sub(g.out)
		out = append(out, models.ParcelRentability{
			NombreParcela: name,
			Ingresos:      g.in,
			Gastos:        g.out,
			Balance:       balance,
			Margen:        margin(balance, g.in),
		})
	}
	return out
}

// SortByMargin сортирует участки по марже. Порядок равных сохраняется.
func SortByMargin(rows []models.ParcelRentability, asc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return rows[i].Margen.LessThan(rows[j].Margen)
		}
		return rows[i].Margen.GreaterThan(rows[j].Margen)
	})
}

func sum(records []*models.FinanceRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Monto)
	}
	return total
}

// margin в процентах, два знака. При нулевом доходе 0.
func margin(balance, income decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return balance.Div(income).Mul(hundred).Round(2)
}
