package builders

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 4, 4, 5, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "abc", "'abc'"},
		{"embedded quote", "a'b", "'a''b'"},
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 3.5, "3.5"},
		{"whole float", float64(18), "18"},
		{"json number", json.Number("12345678901234567890"), "12345678901234567890"},
		{"time", ts, "'2024-01-02T03:04:05.000Z'"},
		{"time pointer", &ts, "'2024-01-02T03:04:05.000Z'"},
		{"nil time pointer", (*time.Time)(nil), "NULL"},
		{"bytes", []byte("x'y"), "'x''y'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestListValues(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, listValues([]string{"a", "b"}))
	assert.Equal(t, []any{1, 2}, listValues([2]int{1, 2}))
	assert.Equal(t, []any{"solo"}, listValues("solo"))
	assert.Equal(t, []any{nil}, listValues(nil))
	assert.Equal(t, []any{[]byte("raw")}, listValues([]byte("raw")))
}
