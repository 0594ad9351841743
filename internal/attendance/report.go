package attendance

import (
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
)

// parseMonth parses a YYYY-MM string into the first day of that month, UTC.
func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidMonthFormat
	}
	return t, nil
}

// dateOnly strips the time-of-day component so comparisons are pure calendar
// arithmetic.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// reportWindows derives the target month bounds and the immediately
// preceding month bounds from a month start. AddDate with day -1 handles
// month lengths and leap years.
func reportWindows(monthStart time.Time) (monthEnd, prevStart, prevEnd time.Time) {
	monthEnd = monthStart.AddDate(0, 1, -1)
	prevEnd = monthStart.AddDate(0, 0, -1)
	prevStart = time.Date(prevEnd.Year(), prevEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
	return monthEnd, prevStart, prevEnd
}

// indexByDate builds a per-day lookup. The (employee, date) unique constraint
// guarantees at most one row per key.
func indexByDate(rows []Attendance) map[string]Status {
	idx := make(map[string]Status, len(rows))
	for _, a := range rows {
		idx[dateKey(a.Date)] = a.Status
	}
	return idx
}

// reconcile walks every day of [monthStart, monthEnd], emitting the stored
// status where a row exists and a synthesized ABSENT entry where none does.
// absentThisMonth counts only the synthesized entries; a stored ABSENT row is
// emitted in the timeline but already accounted for at record time. Days
// before the employee joined and days after today are outside the reporting
// scope: they are neither emitted nor counted. The previous month contributes
// only a count of days with no stored record, under the same bounds rule.
func reconcile(
	monthStart, monthEnd, prevStart, prevEnd time.Time,
	dateJoined, today time.Time,
	logs, prevLogs map[string]Status,
) (entries []DailyLog, absentThisMonth, absentLastMonth int) {
	dateJoined = dateOnly(dateJoined)
	today = dateOnly(today)

	entries = []DailyLog{}
	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		if d.Before(dateJoined) || d.After(today) {
			continue
		}

		status, ok := logs[dateKey(d)]
		if !ok {
			status = StatusAbsent
			absentThisMonth++
		}
		entries = append(entries, DailyLog{
			Date:   dateKey(d),
			Day:    d.Weekday().String(),
			Status: string(status),
		})
	}

	for d := prevStart; !d.After(prevEnd); d = d.AddDate(0, 0, 1) {
		if d.Before(dateJoined) || d.After(today) {
			continue
		}
		if _, ok := prevLogs[dateKey(d)]; !ok {
			absentLastMonth++
		}
	}

	return entries, absentThisMonth, absentLastMonth
}
