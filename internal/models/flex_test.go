package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumber_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      float64
		wantValid bool
	}{
		{"number", `100`, 100, true},
		{"decimal", `99.5`, 99.5, true},
		{"numeric string", `"150.25"`, 150.25, true},
		{"padded string", `" 80 "`, 80, true},
		{"garbage string", `"abc"`, 0, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"bool", `true`, 0, false},
		{"object", `{"x":1}`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n FlexNumber
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.wantValid, n.Valid)
			assert.Equal(t, tt.want, n.Float())
		})
	}
}

func TestFlexNumber_BadFieldDoesNotFailDocument(t *testing.T) {
	var rt RoomType
	err := json.Unmarshal([]byte(`{"nombre":"Doble","costoPorNoche":"n/a","cantidadDisponible":3}`), &rt)
	require.NoError(t, err)
	assert.Equal(t, "Doble", rt.Name)
	assert.Equal(t, 0.0, rt.Rate.Float())
	assert.Equal(t, 3, rt.Available)
}

func TestFlexNumber_Marshal(t *testing.T) {
	data, err := json.Marshal(Num(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))

	data, err = json.Marshal(FlexNumber{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFlexString_Unmarshal(t *testing.T) {
	var room Room
	require.NoError(t, json.Unmarshal([]byte(`{"numero":101,"estado":"LIBRE"}`), &room))
	assert.Equal(t, "101", room.Number.String())

	require.NoError(t, json.Unmarshal([]byte(`{"numero":"2B"}`), &room))
	assert.Equal(t, "2B", room.Number.String())

	require.NoError(t, json.Unmarshal([]byte(`{"numero":null}`), &room))
	assert.Equal(t, "", room.Number.String())
}

func TestFlexString_NonScalarIsEmpty(t *testing.T) {
	for _, input := range []string{`{}`, `{"n":1}`, `[]`, `[101]`, `true`, `false`} {
		t.Run(input, func(t *testing.T) {
			var room Room
			require.NoError(t, json.Unmarshal([]byte(`{"numero":`+input+`}`), &room))
			assert.Equal(t, "", room.Number.String())
			assert.Equal(t, "-", room.NumberOr("-"))
		})
	}

	var room Room
	require.NoError(t, json.Unmarshal([]byte(`{"numero":-3}`), &room))
	assert.Equal(t, "-3", room.Number.String())
}

func TestFlexDate_Unmarshal(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		input     string
		want      time.Time
		wantValid bool
	}{
		{"iso date", `"2024-01-01"`, jan1, true},
		{"rfc3339", `"2024-01-01T00:00:00Z"`, jan1, true},
		{"jackson default", `"2024-01-01T00:00:00.000+0000"`, jan1, true},
		{"local datetime", `"2024-01-01T00:00:00"`, jan1, true},
		{"epoch millis", `1704067200000`, jan1, true},
		{"garbage", `"not a date"`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"null", `null`, time.Time{}, false},
		{"bool", `false`, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d FlexDate
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.wantValid, d.Valid)
			if tt.wantValid {
				assert.True(t, tt.want.Equal(d.Time), "got %s", d.Time)
			}
		})
	}
}

func TestFlexDate_Marshal(t *testing.T) {
	data, err := json.Marshal(Date(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-03"`, string(data))

	withTime := FlexDate{Time: time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC), Valid: true}
	data, err = json.Marshal(withTime)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-03T10:30:00Z"`, string(data))

	data, err = json.Marshal(FlexDate{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(Date(2024, 1, 5)))
	assert.Equal(t, "-", FormatDate(FlexDate{}))
	assert.Equal(t, "2024-01-01", FormatDate(ParseDate("2024-01-01T00:00:00Z")))
}
