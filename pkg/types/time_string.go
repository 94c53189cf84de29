package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const minutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM"
type TimeString string

// NewTimeString берёт часы и минуты из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит "H:MM", "HH:MM" или "HH:MM:SS" и нормализует к "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	total, err := parseMinutes(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromMinutes(total), nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return h*60 + m, nil
}

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// Minutes количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// AddMinutes сдвигает время. Переход через полночь - ошибка
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += n
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d minutes leaves the day", ErrInvalidTimeString, t, n)
	}
	return fromMinutes(total), nil
}

// IsBefore строго раньше. Некорректные значения не сравниваются
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// On возвращает момент времени на указанную дату в указанной локации
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	total, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, total/60, total%60, 0, 0, loc), nil
}

// Scan читает значение колонки TIME (lib/pq отдаёт "HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value записывает значение в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
