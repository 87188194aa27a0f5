package services

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"

	"bank-assistant/internal/utils"
)

const (
	DateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04"
)

var (
	ErrBadDate   = errors.New("дата должна быть в формате YYYY-MM-DD")
	ErrBadPeriod = errors.New("конец периода раньше начала")
)

// bishkekOffset совпадает с Asia/Bishkek без перехода на летнее время.
var bishkekOffset = time.FixedZone("+06", 6*60*60)

// LoadZone загружает часовой пояс по имени; при ошибке берётся фиксированный UTC+6.
func LoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		utils.LogWarning("TimeRange", "Часовой пояс %q не загружен (%v), используется UTC+6", name, err)
		return bishkekOffset
	}
	return loc
}

// DayRange переводит включительный диапазон календарных дней в локальном поясе
// в полуинтервал [from, to) в UTC: от начала первого дня до начала дня после последнего.
func DayRange(start, end string, loc *time.Location) (from, to time.Time, err error) {
	first, err := time.ParseInLocation(DateLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDate
	}
	last, err := time.ParseInLocation(DateLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDate
	}
	if last.Before(first) {
		return time.Time{}, time.Time{}, ErrBadPeriod
	}

	next := time.Date(last.Year(), last.Month(), last.Day()+1, 0, 0, 0, 0, loc)
	return first.UTC(), next.UTC(), nil
}

func formatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timestampLayout)
}
