package calendar

import "time"

// season2025 holds the first day of every round of the 2025/26 season.
var season2025 = []Date{
	D(2025, time.August, 15), D(2025, time.August, 22), D(2025, time.August, 29),
	D(2025, time.September, 13), D(2025, time.September, 20), D(2025, time.September, 27),
	D(2025, time.October, 4), D(2025, time.October, 18), D(2025, time.October, 25),
	D(2025, time.November, 1), D(2025, time.November, 8), D(2025, time.November, 22),
	D(2025, time.November, 29), D(2025, time.December, 3), D(2025, time.December, 6),
	D(2025, time.December, 13), D(2025, time.December, 20), D(2025, time.December, 27),
	D(2025, time.December, 30), D(2026, time.January, 3), D(2026, time.January, 7),
	D(2026, time.January, 17), D(2026, time.January, 24), D(2026, time.January, 31),
	D(2026, time.February, 7), D(2026, time.February, 11), D(2026, time.February, 21),
	D(2026, time.February, 28), D(2026, time.March, 4), D(2026, time.March, 14),
	D(2026, time.March, 21), D(2026, time.April, 11), D(2026, time.April, 18),
	D(2026, time.April, 25), D(2026, time.May, 2), D(2026, time.May, 9),
	D(2026, time.May, 17), D(2026, time.May, 24),
}

// seasonEnd2025 closes the final quarter; it is set by the league, not by fixtures.
var seasonEnd2025 = D(2026, time.May, 24)

// DefaultTable returns the validated 2025/26 schedule in loc.
func DefaultTable(loc *time.Location) (*Table, error) {
	return NewTable(season2025, seasonEnd2025, loc)
}
