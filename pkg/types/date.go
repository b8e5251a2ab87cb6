package types

import (
	"fmt"
	"strconv"
	"time"
)

// Date принимает в JSON и RFC3339, и просто YYYY-MM-DD (так шлёт <input type="date">).
// Наружу сериализуется как обычный time.Time.
type Date struct {
	time.Time
}

func DateOf(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate: сначала RFC3339, потом дата без времени (полночь UTC).
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты %q: ожидается YYYY-MM-DD или RFC3339", raw)
	}
	return t, nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("дата должна быть строкой: %s", data)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// TimePtr: nil для отсутствующей даты, иначе копия времени.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
