package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromPreset(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		today := date(2025, time.March, 12)
		r, err := FromPreset(Today, today)
		require.NoError(t, err)
		require.Equal(t, today, r.Start)
		require.Equal(t, today, r.End)
	})

	t.Run("this week starts on Monday", func(t *testing.T) {
		// среда 12.03.2025 -> понедельник 10.03.2025
		r, err := FromPreset(ThisWeek, date(2025, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.March, 10), r.Start)
		require.Equal(t, date(2025, time.March, 12), r.End)
	})

	t.Run("this week on Monday", func(t *testing.T) {
		r, err := FromPreset(ThisWeek, date(2025, time.March, 10))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.March, 10), r.Start)
	})

	t.Run("this week on Sunday", func(t *testing.T) {
		// воскресенье относится к неделе, начавшейся в прошлый понедельник
		r, err := FromPreset(ThisWeek, date(2025, time.March, 16))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.March, 10), r.Start)
	})

	t.Run("this month", func(t *testing.T) {
		r, err := FromPreset(ThisMonth, date(2025, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.March, 1), r.Start)
		require.Equal(t, date(2025, time.March, 12), r.End)
	})

	t.Run("this year", func(t *testing.T) {
		r, err := FromPreset(ThisYear, date(2025, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.January, 1), r.Start)
	})

	t.Run("last month regular year", func(t *testing.T) {
		r, err := FromPreset(LastMonth, date(2025, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.February, 1), r.Start)
		require.Equal(t, date(2025, time.February, 28), r.End)
	})

	t.Run("last month leap year", func(t *testing.T) {
		r, err := FromPreset(LastMonth, date(2024, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2024, time.February, 1), r.Start)
		require.Equal(t, date(2024, time.February, 29), r.End)
	})

	t.Run("last month across year boundary", func(t *testing.T) {
		r, err := FromPreset(LastMonth, date(2025, time.January, 5))
		require.NoError(t, err)
		require.Equal(t, date(2024, time.December, 1), r.Start)
		require.Equal(t, date(2024, time.December, 31), r.End)
	})

	t.Run("last 3 months", func(t *testing.T) {
		r, err := FromPreset(Last3Months, date(2025, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2025, time.January, 1), r.Start)
		require.Equal(t, date(2025, time.March, 12), r.End)
	})

	t.Run("all time", func(t *testing.T) {
		r, err := FromPreset(AllTime, date(2025, time.March, 12))
		require.NoError(t, err)
		require.Equal(t, date(2000, time.January, 1), r.Start)
		require.Equal(t, date(2025, time.March, 12), r.End)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := FromPreset("LAST_CENTURY", date(2025, time.March, 12))
		require.Error(t, err)
	})
}

func TestFromCustom(t *testing.T) {
	r, err := FromCustom(date(2025, time.January, 10), date(2025, time.February, 20))
	require.NoError(t, err)
	require.Equal(t, date(2025, time.January, 10), r.Start)
	require.Equal(t, date(2025, time.February, 20), r.End)

	_, err = FromCustom(date(2025, time.February, 20), date(2025, time.January, 10))
	require.Error(t, err)
}
