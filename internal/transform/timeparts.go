package transform

import "time"

// TimeRow is (start_time, hour, day, week, month, year, weekday) for one event.
type TimeRow struct {
	StartTime int64
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
	Weekday   int
}

func (r TimeRow) Args() []any {
	return []any{r.StartTime, r.Hour, r.Day, r.Week, r.Month, r.Year, r.Weekday}
}

// DecomposeMillis splits an epoch-millisecond timestamp into UTC calendar
// fields. Week is the ISO 8601 week number and weekday counts from Monday = 0.
func DecomposeMillis(ms int64) TimeRow {
	t := time.UnixMilli(ms).UTC()
	_, week := t.ISOWeek()
	return TimeRow{
		StartTime: ms,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}
