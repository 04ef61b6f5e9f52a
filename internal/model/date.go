package model

import "time"

const dateLayout = "2006-01-02"

// DateString renders the local calendar date as zero-padded YYYY-MM-DD.
// Dates in this form order lexicographically the same as chronologically,
// so plan dates are compared as strings everywhere.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

func YesterdayString(t time.Time) string {
	return t.AddDate(0, 0, -1).Format(dateLayout)
}

func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FindPlan returns the plan for the given date and its collection index,
// or -1 when no plan exists for that date.
func FindPlan(plans []DailyPlan, date string) (DailyPlan, int) {
	for i, p := range plans {
		if p.Date == date {
			return p, i
		}
	}
	return DailyPlan{}, -1
}

// LastCompletedDate returns the lexicographically greatest plan date that
// has at least one completed task, or "" when no completion exists anywhere.
func LastCompletedDate(plans []DailyPlan) string {
	last := ""
	for _, p := range plans {
		if p.HasCompletedTask() && p.Date > last {
			last = p.Date
		}
	}
	return last
}
