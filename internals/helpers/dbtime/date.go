package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date: kolom DATE (tanpa jam & zona). Disimpan sebagai tengah malam UTC.
type Date struct{ time.Time }

// DateOf membuang komponen jam dari t (pakai tanggal kalender di zona t).
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate: "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	var d Date
	return d, d.parse(s)
}

// MustDate untuk seed/test.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Date) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		// driver kadang balikin "2024-01-31T00:00:00Z" / "2024-01-31 00:00:00+00:00"
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Scan: terima time.Time atau string
func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = DateOf(x)
		return nil
	case []byte:
		return d.parse(string(x))
	case string:
		return d.parse(x)
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("date: unsupported Scan type %T", v)
	}
}

// Value: kirim "YYYY-MM-DD" agar Postgres DATE paham
func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (Date) GormDataType() string { return "date" }

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	return d.parse(str)
}
