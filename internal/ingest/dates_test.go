package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "slash date reorders components", raw: "05/03/2024", want: "2024-03-05"},
		{name: "slash date single digits padded", raw: "5/3/2024", want: "2024-03-05"},
		{name: "slash date with time portion", raw: "05/03/2024 08:15", want: "2024-03-05"},
		{name: "iso passes through", raw: "2024-03-05", want: "2024-03-05"},
		{name: "iso with time portion", raw: "2024-03-05 08:15:00", want: "2024-03-05"},
		{name: "iso with T separator", raw: "2024-03-05T08:15:00", want: "2024-03-05"},
		{name: "spreadsheet serial", raw: "45356", want: "2024-03-05"},
		{name: "empty cell", raw: "", want: "N/A"},
		{name: "garbage", raw: "amanhã", want: "N/A"},
		{name: "two-digit year rejected", raw: "05/03/24", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestNormalizeDateSerialIsPureAndValid(t *testing.T) {
	for _, serial := range []string{"44927", "45356", "45657.75"} {
		first := NormalizeDate(serial)
		second := NormalizeDate(serial)
		require.Equal(t, first, second, "normalizer must be pure for serial %s", serial)

		_, err := time.Parse("2006-01-02", first)
		require.NoError(t, err, "serial %s must normalize to a valid calendar date, got %q", serial, first)
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain clock", raw: "08:15", want: "08:15"},
		{name: "clock with seconds truncated", raw: "08:15:33", want: "08:15"},
		{name: "combined date and time", raw: "05/03/2024 08:15", want: "08:15"},
		{name: "single-digit hour padded", raw: "8:15", want: "08:15"},
		{name: "combined with single-digit hour", raw: "05/03/2024 8:15:33", want: "08:15"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTime(tt.raw))
		})
	}
}
