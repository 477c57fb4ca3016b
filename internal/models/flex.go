package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

var null = []byte("null")

// FlexNumber decodes a JSON number or a numeric string. Anything else leaves
// Valid false and Value zero instead of failing the surrounding document.
type FlexNumber struct {
	Value float64
	Valid bool
}

// Num builds a valid FlexNumber.
func Num(v float64) FlexNumber {
	return FlexNumber{Value: v, Valid: true}
}

// Float returns the value, or 0 when it could not be parsed.
func (n FlexNumber) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	*n = FlexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Num(v)
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return null, nil
	}
	return json.Marshal(n.Value)
}

// FlexString decodes a JSON string or number into its textual form. Any other
// JSON value decodes as empty.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, null):
		*s = ""
	case data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = FlexString(raw)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*s = FlexString(data)
	default:
		*s = ""
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// dateLayouts lists the textual encodings the backend has been seen to emit.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FlexDate decodes an ISO date, an RFC 3339 timestamp or epoch milliseconds.
// Unparsable input leaves Valid false.
type FlexDate struct {
	Time  time.Time
	Valid bool
}

// Date builds a valid FlexDate at midnight UTC.
func Date(year int, month time.Month, day int) FlexDate {
	return FlexDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// ParseDate parses a textual date using the accepted layouts.
func ParseDate(s string) FlexDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexDate{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexDate{Time: t, Valid: true}
		}
	}
	return FlexDate{}
}

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	*d = FlexDate{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		*d = ParseDate(raw)
		return nil
	}

	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return nil
	}
	*d = FlexDate{Time: time.UnixMilli(int64(ms)).UTC(), Valid: true}
	return nil
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return null, nil
	}
	t := d.Time.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return json.Marshal(t.Format("2006-01-02"))
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// FormatDate renders a date as YYYY-MM-DD, or "-" when absent.
func FormatDate(d FlexDate) string {
	if !d.Valid {
		return "-"
	}
	return d.Time.UTC().Format("2006-01-02")
}
