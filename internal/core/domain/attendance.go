package domain

import "time"

// SecondsPerDay is the calendar-day bucket used by the attendance contract:
// day epoch = unix timestamp / 86400.
const SecondsPerDay = 86400

// AttendanceRecord is one wallet's attendance for one calendar day. The
// ledger enforces at most one record per (wallet, day); it is created
// implicitly by the first check-in and completed by check-out. A zero
// timestamp means the punch has not happened.
type AttendanceRecord struct {
	Wallet   string `json:"wallet"`
	Day      uint64 `json:"day"`
	CheckIn  int64  `json:"check_in,omitempty"`
	CheckOut int64  `json:"check_out,omitempty"`
}

// Complete reports whether both punches exist. Incomplete records never
// contribute hours to any aggregate.
func (r AttendanceRecord) Complete() bool {
	return r.CheckIn > 0 && r.CheckOut > 0
}

// Hours returns the fractional worked hours for a complete record, zero
// otherwise.
func (r AttendanceRecord) Hours() float64 {
	if !r.Complete() {
		return 0
	}
	return float64(r.CheckOut-r.CheckIn) / 3600
}

// DayEpoch converts a timestamp to its calendar-day bucket.
func DayEpoch(ts time.Time) uint64 {
	return uint64(ts.Unix() / SecondsPerDay)
}

// HoursSummary aggregates worked hours over the standard reporting buckets.
// Week runs from the most recent Monday 00:00 local time, month from day 1
// local time.
type HoursSummary struct {
	TotalWeek  float64 `json:"total_week"`
	TotalMonth float64 `json:"total_month"`
	TotalAll   float64 `json:"total_all"`
}

// WeekStart returns Monday 00:00 of now's calendar week, in now's location.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(now.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return midnight.AddDate(0, 0, -offset)
}

// MonthStart returns day 1, 00:00 of now's calendar month, in now's location.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
