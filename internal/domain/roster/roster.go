// Package roster merges a league's confirmed entries with pre-season
// registrants into one deduplicated participant list.
package roster

import (
	"strings"

	"github.com/okian/quarterly/internal/domain/model"
)

// Roster is an insertion-ordered set of participants keyed by ID.
// It is built once per request and is not safe for concurrent use.
type Roster struct {
	index map[int]int // participant id -> position in list
	list  []model.Participant
}

// New returns an empty roster sized for hint participants.
func New(hint int) *Roster {
	if hint < 0 {
		hint = 0
	}
	return &Roster{
		index: make(map[int]int, hint),
		list:  make([]model.Participant, 0, hint),
	}
}

// SeenAndRecord records p unless its ID is already present and reports
// whether it was seen before. A repeated ID keeps the first record but may
// fill in display names the first record lacked. Non-positive IDs are
// reported as seen and never recorded.
func (r *Roster) SeenAndRecord(p model.Participant) bool {
	if p.ID <= 0 {
		return true
	}
	if pos, ok := r.index[p.ID]; ok {
		kept := &r.list[pos]
		if strings.TrimSpace(kept.ManagerName) == "" {
			kept.ManagerName = p.ManagerName
		}
		if strings.TrimSpace(kept.TeamName) == "" {
			kept.TeamName = p.TeamName
		}
		return true
	}
	r.index[p.ID] = len(r.list)
	r.list = append(r.list, p)
	return false
}

// Size returns the number of distinct participants.
func (r *Roster) Size() int { return len(r.list) }

// Participants returns the participants in first-seen order with display
// names normalized.
func (r *Roster) Participants() []model.Participant {
	out := make([]model.Participant, len(r.list))
	for i, p := range r.list {
		out[i] = p.Normalized()
	}
	return out
}

// Resolve merges confirmed entries and placeholders. Confirmed entries win on
// conflict; first-occurrence order is preserved.
func Resolve(confirmed, placeholders []model.Participant) []model.Participant {
	r := New(len(confirmed) + len(placeholders))
	for _, p := range confirmed {
		r.SeenAndRecord(p)
	}
	for _, p := range placeholders {
		r.SeenAndRecord(p)
	}
	return r.Participants()
}
