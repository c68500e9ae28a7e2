// Package dates разбирает даты из запросов и форматирует их для ответов.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// DMY формат даты в ленте напоминаний.
const DMY = "02/01/2006"

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ErrBadDate возвращается, если строка не подходит ни под один формат.
var ErrBadDate = errors.New("unsupported date format")

// Parse принимает дату в формате YYYY-MM-DD или RFC3339. Строки без
// смещения читаются в UTC.
func Parse(s string) (time.Time, error) {
	const op = "dates.Parse"
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q: %w", op, s, ErrBadDate)
}

// ParseOptional разбирает необязательную дату. nil и пустая строка дают nil.
func ParseOptional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := Parse(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Day возвращает календарный день t (в зоне самого t) как полночь UTC.
// Даты без времени хранятся в полночь UTC, поэтому окна по дням строятся
// в той же зоне.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDMY форматирует дату как dd/MM/yyyy в UTC.
func FormatDMY(t time.Time) string {
	return t.UTC().Format(DMY)
}
