package calendar

import (
	"math"
	"time"
)

// Status is a quarter's position relative to a point in time.
type Status string

// Quarter statuses.
const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Classification is the temporal view of all quarters at one instant.
type Classification struct {
	Now       time.Time
	Current   string
	PreSeason bool
	Statuses  map[string]Status
}

// Classify decides the current quarter and every quarter's status at now.
// Before the season the current quarter is the first one (upcoming, so never
// eligible for trophies). After the season, or in a gap between quarters,
// the current quarter is the last one.
func Classify(now time.Time, quarters []Quarter) (Classification, error) {
	if len(quarters) == 0 {
		return Classification{}, ErrNoQuarters
	}

	c := Classification{
		Now:      now,
		Statuses: make(map[string]Status, len(quarters)),
	}
	for _, q := range quarters {
		c.Statuses[q.ID] = statusAt(now, q)
	}

	switch {
	case now.Before(quarters[0].Start()):
		c.PreSeason = true
		c.Current = quarters[0].ID
	default:
		c.Current = quarters[len(quarters)-1].ID
		for _, q := range quarters {
			if c.Statuses[q.ID] == StatusActive {
				c.Current = q.ID
				break
			}
		}
	}
	return c, nil
}

func statusAt(now time.Time, q Quarter) Status {
	switch {
	case !now.Before(q.End()):
		return StatusFinished
	case !now.Before(q.Start()):
		return StatusActive
	default:
		return StatusUpcoming
	}
}

// Status returns the status of quarter id; unknown ids are upcoming.
func (c Classification) Status(id string) Status {
	if s, ok := c.Statuses[id]; ok {
		return s
	}
	return StatusUpcoming
}

// Eligible reports whether quarter id may have its winners resolved.
func (c Classification) Eligible(id string) bool {
	return c.Status(id) == StatusFinished
}

// DaysUntil counts whole days (rounded up) from now to t; zero when t has passed.
func DaysUntil(now, t time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}
