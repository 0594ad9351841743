package attendance

import (
	"testing"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseMonth(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := parseMonth("2026-02")
		assert.NoError(t, err)
		assert.Equal(t, day(2026, time.February, 1), got)
	})

	t.Run("negative malformed", func(t *testing.T) {
		for _, raw := range []string{"2026-2", "02-2026", "2026/02", "2026-13", "garbage"} {
			_, err := parseMonth(raw)
			assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat, raw)
		}
	})
}

func TestReportWindows(t *testing.T) {
	t.Run("regular month", func(t *testing.T) {
		monthEnd, prevStart, prevEnd := reportWindows(day(2026, time.March, 1))
		assert.Equal(t, day(2026, time.March, 31), monthEnd)
		assert.Equal(t, day(2026, time.February, 1), prevStart)
		assert.Equal(t, day(2026, time.February, 28), prevEnd)
	})

	t.Run("previous month is a leap february", func(t *testing.T) {
		monthEnd, prevStart, prevEnd := reportWindows(day(2024, time.March, 1))
		assert.Equal(t, day(2024, time.March, 31), monthEnd)
		assert.Equal(t, day(2024, time.February, 1), prevStart)
		assert.Equal(t, day(2024, time.February, 29), prevEnd)
	})

	t.Run("january looks back across the year boundary", func(t *testing.T) {
		monthEnd, prevStart, prevEnd := reportWindows(day(2026, time.January, 1))
		assert.Equal(t, day(2026, time.January, 31), monthEnd)
		assert.Equal(t, day(2025, time.December, 1), prevStart)
		assert.Equal(t, day(2025, time.December, 31), prevEnd)
	})
}

func TestReconcile(t *testing.T) {
	joined := day(2023, time.June, 1)
	farFuture := day(2030, time.January, 1)

	t.Run("fills gaps with absent over a leap february", func(t *testing.T) {
		monthStart := day(2024, time.February, 1)
		monthEnd, prevStart, prevEnd := reportWindows(monthStart)

		logs := map[string]Status{
			"2024-02-01": StatusPresent,
			"2024-02-10": StatusOnLeave,
			"2024-02-29": StatusLate,
		}

		entries, absentThisMonth, absentLastMonth := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			joined, farFuture,
			logs, map[string]Status{},
		)

		assert.Len(t, entries, 29)
		assert.Equal(t, 26, absentThisMonth)
		assert.Equal(t, 31, absentLastMonth) // january, no rows at all

		assert.Equal(t, DailyLog{Date: "2024-02-01", Day: "Thursday", Status: "PRESENT"}, entries[0])
		assert.Equal(t, DailyLog{Date: "2024-02-02", Day: "Friday", Status: "ABSENT"}, entries[1])
		assert.Equal(t, DailyLog{Date: "2024-02-10", Day: "Saturday", Status: "ON_LEAVE"}, entries[9])
		assert.Equal(t, DailyLog{Date: "2024-02-29", Day: "Thursday", Status: "LATE"}, entries[28])
	})

	t.Run("days before the join date are out of scope", func(t *testing.T) {
		monthStart := day(2026, time.April, 1)
		monthEnd, prevStart, prevEnd := reportWindows(monthStart)

		entries, absentThisMonth, absentLastMonth := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			day(2026, time.April, 10), farFuture,
			map[string]Status{"2026-04-10": StatusPresent}, map[string]Status{},
		)

		assert.Len(t, entries, 21)
		assert.Equal(t, "2026-04-10", entries[0].Date)
		assert.Equal(t, 20, absentThisMonth)
		assert.Equal(t, 0, absentLastMonth)
	})

	t.Run("days after today are out of scope", func(t *testing.T) {
		monthStart := day(2026, time.April, 1)
		monthEnd, prevStart, prevEnd := reportWindows(monthStart)

		entries, absentThisMonth, absentLastMonth := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			joined, day(2026, time.April, 15),
			map[string]Status{"2026-04-01": StatusPresent}, map[string]Status{},
		)

		assert.Len(t, entries, 15)
		assert.Equal(t, "2026-04-15", entries[len(entries)-1].Date)
		assert.Equal(t, 14, absentThisMonth)
		assert.Equal(t, 31, absentLastMonth)
	})

	t.Run("month entirely before the join date yields an empty report", func(t *testing.T) {
		monthStart := day(2023, time.January, 1)
		monthEnd, prevStart, prevEnd := reportWindows(monthStart)

		entries, absentThisMonth, absentLastMonth := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			joined, farFuture,
			map[string]Status{}, map[string]Status{},
		)

		assert.Empty(t, entries)
		assert.Equal(t, 0, absentThisMonth)
		assert.Equal(t, 0, absentLastMonth)
	})

	t.Run("previous month counts only unrecorded days", func(t *testing.T) {
		monthStart := day(2026, time.May, 1)
		monthEnd, prevStart, prevEnd := reportWindows(monthStart)

		prevLogs := map[string]Status{}
		for d := prevStart; !d.After(prevEnd.AddDate(0, 0, -2)); d = d.AddDate(0, 0, 1) {
			prevLogs[dateKey(d)] = StatusPresent
		}

		_, _, absentLastMonth := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			joined, farFuture,
			map[string]Status{}, prevLogs,
		)

		assert.Equal(t, 2, absentLastMonth)
	})

	t.Run("stored absent rows are emitted but not re-counted", func(t *testing.T) {
		monthStart := day(2026, time.June, 1)
		monthEnd, prevStart, prevEnd := reportWindows(monthStart)

		entries, absentThisMonth, _ := reconcile(
			monthStart, monthEnd, prevStart, prevEnd,
			joined, farFuture,
			map[string]Status{
				"2026-06-05": StatusAbsent,
				"2026-06-06": StatusPresent,
			}, map[string]Status{},
		)

		assert.Len(t, entries, 30)
		// Only the 28 synthesized gaps; the explicit row is in the timeline
		// but not in the counter.
		assert.Equal(t, 28, absentThisMonth)
		assert.Equal(t, "ABSENT", entries[4].Status)
		assert.Equal(t, "PRESENT", entries[5].Status)
	})
}
