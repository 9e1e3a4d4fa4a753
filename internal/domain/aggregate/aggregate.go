// Package aggregate sums per-round history into per-quarter totals.
package aggregate

import (
	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
)

// Aggregate sums p's round scores into every quarter. Rounds outside the
// season and rows belonging to another participant are ignored. A quarter
// without any history rows totals 0.
func Aggregate(p model.Participant, history []model.RoundScore, quarters []calendar.Quarter) map[string]model.QuarterTotal {
	out := make(map[string]model.QuarterTotal, len(quarters))
	for _, q := range quarters {
		out[q.ID] = model.QuarterTotal{ParticipantID: p.ID, QuarterID: q.ID, Known: true}
	}
	for _, rs := range history {
		if rs.ParticipantID != 0 && rs.ParticipantID != p.ID {
			continue
		}
		if rs.Round < 1 || rs.Round > calendar.Rounds {
			continue
		}
		for _, q := range quarters {
			if q.Contains(rs.Round) {
				t := out[q.ID]
				t.Points += rs.Points
				out[q.ID] = t
				break
			}
		}
	}
	return out
}

// Unknown returns totals for a participant whose history is unavailable.
func Unknown(p model.Participant, quarters []calendar.Quarter) map[string]model.QuarterTotal {
	out := make(map[string]model.QuarterTotal, len(quarters))
	for _, q := range quarters {
		out[q.ID] = model.QuarterTotal{ParticipantID: p.ID, QuarterID: q.ID}
	}
	return out
}

// Input is one participant's history fetch outcome.
type Input struct {
	Participant model.Participant
	History     []model.RoundScore
	Err         error
}

// Totals holds every participant's quarter totals for one request.
type Totals struct {
	participants []model.Participant
	byQuarter    map[string]map[int]model.QuarterTotal
	failed       map[int]error
}

// Fold aggregates all inputs. A failed input contributes unknown totals and
// is remembered in Failures.
func Fold(inputs []Input, quarters []calendar.Quarter) *Totals {
	t := &Totals{
		participants: make([]model.Participant, 0, len(inputs)),
		byQuarter:    make(map[string]map[int]model.QuarterTotal, len(quarters)),
		failed:       make(map[int]error),
	}
	for _, q := range quarters {
		t.byQuarter[q.ID] = make(map[int]model.QuarterTotal, len(inputs))
	}
	for _, in := range inputs {
		t.participants = append(t.participants, in.Participant)
		var totals map[string]model.QuarterTotal
		if in.Err != nil {
			t.failed[in.Participant.ID] = in.Err
			totals = Unknown(in.Participant, quarters)
		} else {
			totals = Aggregate(in.Participant, in.History, quarters)
		}
		for qid, qt := range totals {
			t.byQuarter[qid][in.Participant.ID] = qt
		}
	}
	return t
}

// Participants returns the participants in input order.
func (t *Totals) Participants() []model.Participant {
	out := make([]model.Participant, len(t.participants))
	copy(out, t.participants)
	return out
}

// Quarter returns the totals of one quarter in participant order, or nil for
// an unknown quarter.
func (t *Totals) Quarter(id string) []model.QuarterTotal {
	m, ok := t.byQuarter[id]
	if !ok {
		return nil
	}
	out := make([]model.QuarterTotal, 0, len(t.participants))
	for _, p := range t.participants {
		out = append(out, m[p.ID])
	}
	return out
}

// Get returns one participant's total for a quarter.
func (t *Totals) Get(quarterID string, participantID int) (model.QuarterTotal, bool) {
	qt, ok := t.byQuarter[quarterID][participantID]
	return qt, ok
}

// Failures returns the participants whose history could not be fetched.
func (t *Totals) Failures() map[int]error {
	out := make(map[int]error, len(t.failed))
	for id, err := range t.failed {
		out[id] = err
	}
	return out
}

// Partial reports whether any participant's history is missing.
func (t *Totals) Partial() bool { return len(t.failed) > 0 }
