package xlsxbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeToSerial(t *testing.T) {
	for _, c := range []struct {
		t        time.Time
		date1904 bool
		serial   float64
	}{
		{time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), false, 1},
		{time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), false, 59},
		{time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), false, 61},
		{time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), false, 36526},
		{time.Date(2017, 1, 1, 12, 0, 0, 0, time.UTC), false, 42736.5},
		{time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC), true, 0},
		{time.Date(2000, 1, 1, 6, 0, 0, 0, time.UTC), true, 35064.25},
	} {
		assert.InDelta(t, c.serial, timeToSerial(c.t, c.date1904), 1e-9, c.t.String())
	}

	// Only the wall clock counts, not the zone.
	loc := time.FixedZone("UTC+8", 8*60*60)
	assert.Equal(t, 36526.0, timeToSerial(time.Date(2000, 1, 1, 0, 0, 0, 0, loc), false))
}

func TestSerialToTime(t *testing.T) {
	assert.Equal(t, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), serialToTime(1, false))
	assert.Equal(t, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), serialToTime(61, false))
	assert.Equal(t, time.Date(2017, 1, 1, 12, 0, 0, 0, time.UTC), serialToTime(42736.5, false))
	assert.Equal(t, time.Date(1904, 1, 2, 18, 0, 0, 0, time.UTC), serialToTime(1.75, true))

	for _, date1904 := range []bool{false, true} {
		want := time.Date(2023, 7, 14, 9, 30, 15, 0, time.UTC)
		assert.Equal(t, want, serialToTime(timeToSerial(want, date1904), date1904))
	}
}

func TestIsDateFormat(t *testing.T) {
	for _, format := range []string{"yyyy-mm-dd", "dd/mm/yyyy", "hh:mm:ss", "d-mmm", "0.00;yyyy"} {
		assert.True(t, isDateFormat(format), format)
	}
	for _, format := range []string{"0.00", "#,##0", "@"} {
		assert.False(t, isDateFormat(format), format)
	}
}
