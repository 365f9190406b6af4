package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/secframe/internal/ports"
)

func at(y int, m time.Month, d int) ports.ScoredRecord {
	return ports.ScoredRecord{Record: ports.Record{Timestamp: time.Date(y, m, d, 9, 30, 0, 0, time.UTC)}}
}

func TestByQuarter(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, "2023-Q1"},
		{time.March, "2023-Q1"},
		{time.April, "2023-Q2"},
		{time.June, "2023-Q2"},
		{time.July, "2023-Q3"},
		{time.October, "2023-Q4"},
		{time.December, "2023-Q4"},
	}
	for _, tc := range cases {
		key, err := ByQuarter(at(2023, tc.month, 15))
		require.NoError(t, err)
		assert.Equal(t, tc.want, key)
	}
}

func TestByMonth(t *testing.T) {
	key, err := ByMonth(at(2023, time.August, 3))
	require.NoError(t, err)
	assert.Equal(t, "2023-08", key)
}

func TestByYear(t *testing.T) {
	key, err := ByYear(at(2022, time.November, 20))
	require.NoError(t, err)
	assert.Equal(t, "2022", key)
}

func TestPeriodKeys_ZeroTimestamp(t *testing.T) {
	var zero ports.ScoredRecord
	for _, fn := range []KeyFunc{ByQuarter, ByMonth, ByYear} {
		_, err := fn(zero)
		assert.ErrorIs(t, err, errNoTimestamp)
	}
}

func TestPeriodKey_Dispatch(t *testing.T) {
	rec := at(2023, time.May, 5)

	fn, err := PeriodKey("quarter")
	require.NoError(t, err)
	key, _ := fn(rec)
	assert.Equal(t, "2023-Q2", key)

	fn, err = PeriodKey("month")
	require.NoError(t, err)
	key, _ = fn(rec)
	assert.Equal(t, "2023-05", key)

	fn, err = PeriodKey("year")
	require.NoError(t, err)
	key, _ = fn(rec)
	assert.Equal(t, "2023", key)
}

func TestPeriodKey_Unknown(t *testing.T) {
	_, err := PeriodKey("decade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decade")
}
