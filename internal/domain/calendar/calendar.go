// Package calendar partitions the 38-round season into six scoring quarters
// and classifies them against a point in time.
//
// Round start dates are civil days in the league's home zone. A quarter spans
// from the midnight that opens its first round to the midnight that closes its
// last day, both taken in that zone, so comparisons are made on absolute
// instants and never on bare calendar dates.
package calendar

import (
	"fmt"
	"time"
)

// Rounds is the number of rounds in a season.
const Rounds = 38

// quarterRanges is the fixed split of rounds into quarters.
var quarterRanges = [...]struct {
	id       string
	from, to int
}{
	{"Q1", 1, 6},
	{"Q2", 7, 13},
	{"Q3", 14, 19},
	{"Q4", 20, 26},
	{"Q5", 27, 32},
	{"Q6", 33, Rounds},
}

// Table is the validated round start schedule of one season.
type Table struct {
	starts    [Rounds]Date
	seasonEnd Date
	loc       *time.Location
}

// NewTable validates starts (exactly Rounds strictly increasing dates) and
// seasonEnd (not before the last round) and returns an immutable Table.
func NewTable(starts []Date, seasonEnd Date, loc *time.Location) (*Table, error) {
	if loc == nil {
		return nil, fmt.Errorf("%w: nil location", ErrConfiguration)
	}
	if len(starts) != Rounds {
		return nil, fmt.Errorf("%w: want %d round dates, got %d", ErrConfiguration, Rounds, len(starts))
	}
	t := &Table{seasonEnd: seasonEnd, loc: loc}
	for i, d := range starts {
		if _, err := time.Parse(dateLayout, d.String()); err != nil {
			return nil, fmt.Errorf("%w: round %d has invalid date %s", ErrConfiguration, i+1, d)
		}
		if i > 0 && !starts[i-1].Before(d) {
			return nil, fmt.Errorf("%w: round %d (%s) does not follow round %d (%s)",
				ErrConfiguration, i+1, d, i, starts[i-1])
		}
		t.starts[i] = d
	}
	if seasonEnd.Before(starts[Rounds-1]) {
		return nil, fmt.Errorf("%w: season end %s precedes round %d (%s)",
			ErrConfiguration, seasonEnd, Rounds, starts[Rounds-1])
	}
	return t, nil
}

// RoundStart returns the start date of round (1-based).
func (t *Table) RoundStart(round int) (Date, error) {
	if round < 1 || round > Rounds {
		return Date{}, fmt.Errorf("%w: %d", ErrUnknownRound, round)
	}
	return t.starts[round-1], nil
}

// SeasonEnd returns the administrative last day of the season.
func (t *Table) SeasonEnd() Date { return t.seasonEnd }

// Location returns the league's home zone.
func (t *Table) Location() *time.Location { return t.loc }

// Quarter is one scoring epoch. FromDate and ToDate are inclusive days.
type Quarter struct {
	ID        string
	FromRound int
	ToRound   int
	FromDate  Date
	ToDate    Date

	loc *time.Location
}

// Games is the number of rounds in the quarter.
func (q Quarter) Games() int { return q.ToRound - q.FromRound + 1 }

// Contains reports whether round belongs to the quarter.
func (q Quarter) Contains(round int) bool { return round >= q.FromRound && round <= q.ToRound }

// Start is the first instant of the quarter.
func (q Quarter) Start() time.Time { return q.FromDate.Midnight(q.location()) }

// End is the first instant after the quarter (exclusive bound).
func (q Quarter) End() time.Time { return q.ToDate.AddDays(1).Midnight(q.location()) }

func (q Quarter) location() *time.Location {
	if q.loc == nil {
		return time.UTC
	}
	return q.loc
}

// BuildQuarters derives the six quarters. Every quarter but the last ends the
// day before the next quarter's first round; the last ends on the season end.
func (t *Table) BuildQuarters() []Quarter {
	out := make([]Quarter, len(quarterRanges))
	for i, r := range quarterRanges {
		to := t.seasonEnd
		if i < len(quarterRanges)-1 {
			to = t.starts[r.to].AddDays(-1) // starts[r.to] is round r.to+1
		}
		out[i] = Quarter{
			ID:        r.id,
			FromRound: r.from,
			ToRound:   r.to,
			FromDate:  t.starts[r.from-1],
			ToDate:    to,
			loc:       t.loc,
		}
	}
	return out
}

// Find returns the quarter with id.
func Find(quarters []Quarter, id string) (Quarter, bool) {
	for _, q := range quarters {
		if q.ID == id {
			return q, true
		}
	}
	return Quarter{}, false
}
