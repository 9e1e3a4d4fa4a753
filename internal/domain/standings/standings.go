// Package standings ranks participants inside quarters and awards trophies.
package standings

import (
	"fmt"
	"sort"

	"github.com/okian/quarterly/internal/domain/aggregate"
	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/internal/domain/types"
)

// Winner is a participant tied at the maximum of a finished quarter.
type Winner struct {
	ParticipantID int
	Points        int
}

// CurrentStandings maps every participant with a known total to its points
// in the current quarter.
func CurrentStandings(t *aggregate.Totals, currentID string) map[int]int {
	rows := t.Quarter(currentID)
	out := make(map[int]int, len(rows))
	for _, qt := range rows {
		if qt.Known {
			out[qt.ParticipantID] = qt.Points
		}
	}
	return out
}

// Winners returns every participant tied at the maximum of q, ordered by
// participant id. Only finished quarters have winners; a quarter with any
// unknown total is undetermined.
func Winners(t *aggregate.Totals, q calendar.Quarter, status calendar.Status) ([]Winner, error) {
	if status != calendar.StatusFinished {
		return nil, fmt.Errorf("%s: %w", q.ID, ErrNotFinished)
	}
	rows := t.Quarter(q.ID)
	if len(rows) == 0 {
		return []Winner{}, nil
	}

	best := 0
	for i, qt := range rows {
		if !qt.Known {
			return nil, fmt.Errorf("%s: participant %d: %w", q.ID, qt.ParticipantID, ErrUndetermined)
		}
		if i == 0 || qt.Points > best {
			best = qt.Points
		}
	}

	out := make([]Winner, 0, 1)
	for _, qt := range rows {
		if qt.Points == best {
			out = append(out, Winner{ParticipantID: qt.ParticipantID, Points: qt.Points})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out, nil
}

// Report is the outcome of resolving every quarter at one instant.
type Report struct {
	Winners   map[string][]Winner
	Undecided []string
	Trophies  map[int]int
}

// Resolve crowns the winners of every finished quarter and tallies trophies.
// Every participant appears in Trophies, with zero if it never won.
func Resolve(t *aggregate.Totals, quarters []calendar.Quarter, cls calendar.Classification) Report {
	r := Report{
		Winners:   make(map[string][]Winner, len(quarters)),
		Undecided: []string{},
		Trophies:  make(map[int]int),
	}
	for _, p := range t.Participants() {
		r.Trophies[p.ID] = 0
	}
	for _, q := range quarters {
		if !cls.Eligible(q.ID) {
			continue
		}
		ws, err := Winners(t, q, cls.Status(q.ID))
		if err != nil {
			r.Undecided = append(r.Undecided, q.ID)
			continue
		}
		r.Winners[q.ID] = ws
		for _, w := range ws {
			r.Trophies[w.ParticipantID]++
		}
	}
	return r
}

// TrophyTally counts finished-quarter wins per participant.
func TrophyTally(t *aggregate.Totals, quarters []calendar.Quarter, cls calendar.Classification) map[int]int {
	return Resolve(t, quarters, cls).Trophies
}

// TopN returns the best n participants of q: points descending, participant
// id ascending, unknown totals last. Ranks are 1-based positions.
func TopN(t *aggregate.Totals, q calendar.Quarter, n int) []types.Entry {
	rows := t.Quarter(q.ID)
	if n <= 0 || len(rows) == 0 {
		return []types.Entry{}
	}

	names := make(map[int]model.Participant, len(rows))
	for _, p := range t.Participants() {
		names[p.ID] = p
	}

	sorted := make([]model.QuarterTotal, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	out := make([]types.Entry, len(sorted))
	for i, qt := range sorted {
		p := names[qt.ParticipantID].Normalized()
		out[i] = types.Entry{
			Rank:          i + 1,
			ParticipantID: qt.ParticipantID,
			ManagerName:   p.ManagerName,
			TeamName:      p.TeamName,
			Points:        qt.Points,
			Known:         qt.Known,
		}
	}
	return out
}

// less orders known before unknown, then points desc, then id asc.
func less(a, b model.QuarterTotal) bool {
	if a.Known != b.Known {
		return a.Known
	}
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return a.ParticipantID < b.ParticipantID
}
