package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2026, 8, 28, 23, 59, 59, 0, loc)
	assert.Equal(t, "2026-08-28", DayKey(ts))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2026, 8, 28, 15, 4, 5, 123, loc)

	start := StartOfDay(ts)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}

func TestLastNDayKeys(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	keys := LastNDayKeys(ts, 4)
	// Urut menaik, berakhir hari ini, melewati batas bulan.
	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}, keys)
}
