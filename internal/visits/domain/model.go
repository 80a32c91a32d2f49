package domain

import "time"

// Visit is one recorded page view of the public site. Visits are append-only.
type Visit struct {
	ID        string    `json:"id"`
	IPAddress *string   `json:"ip_address"`
	UserAgent *string   `json:"user_agent"`
	VisitedAt time.Time `json:"visited_at"`
}

// Stats are the aggregate counters shown on the statistics screen.
type Stats struct {
	TotalVisits    int `json:"totalVisits"`
	UniqueIPs      int `json:"uniqueIPs"`
	TodayVisits    int `json:"todayVisits"`
	ThisWeekVisits int `json:"thisWeekVisits"`
}

// RecentLimit caps the visit list endpoint.
const RecentLimit = 100

// Window returns the start of the day and of the ISO week (Monday) containing
// now, in now's location.
func Window(now time.Time) (today, week time.Time) {
	y, m, d := now.Date()
	today = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	offset := (int(today.Weekday()) + 6) % 7 // days since Monday
	week = today.AddDate(0, 0, -offset)
	return today, week
}
