package attendance

import (
	"time"
)

const reportCacheKeyPrefix = "attendance:report:"

// Cached reports hold only the month-determined part of a report; the
// paid-leave balance is always read fresh from the store.
type cachedReport struct {
	AbsentThisMonth int        `json:"absent_this_month"`
	AbsentLastMonth int        `json:"absent_last_month"`
	Logs            []DailyLog `json:"logs"`
}

const reportCacheTTL = 6 * time.Hour

// ReportCacheKey is the cache key for one employee's report of one month.
func ReportCacheKey(employeeID, month string) string {
	return reportCacheKeyPrefix + employeeID + ":" + month
}

// ReportCacheKeys returns the keys invalidated by a write touching the given
// date: the date's own month and the following month, whose report counts the
// written month as its previous month.
func ReportCacheKeys(employeeID string, date time.Time) []string {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return []string{
		ReportCacheKey(employeeID, monthStart.Format("2006-01")),
		ReportCacheKey(employeeID, monthStart.AddDate(0, 1, 0).Format("2006-01")),
	}
}
