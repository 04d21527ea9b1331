package repo

import (
	"math/big"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

func toCivil(d domain.Date) civil.Date {
	return civil.DateOf(d.Time())
}

func fromCivil(d civil.Date) domain.Date {
	return domain.NewDate(d.Year, d.Month, d.Day)
}

func nullDate(d *domain.Date) spanner.NullDate {
	if d == nil {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: toCivil(*d), Valid: true}
}

func datePtr(d spanner.NullDate) *domain.Date {
	if !d.Valid {
		return nil
	}
	v := fromCivil(d.Date)
	return &v
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullInt(v *int) spanner.NullInt64 {
	if v == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v spanner.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func numeric(r *big.Rat) big.Rat {
	if r == nil {
		return big.Rat{}
	}
	return *new(big.Rat).Set(r)
}

func nullMoney(m *domain.Money) spanner.NullNumeric {
	if m == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *m.Rat(), Valid: true}
}

func moneyPtr(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

func dayNames(days []domain.DayOfWeek) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

func parseDays(names []string) []domain.DayOfWeek {
	out := make([]domain.DayOfWeek, 0, len(names))
	for _, n := range names {
		out = append(out, domain.DayOfWeek(n))
	}
	return out
}
