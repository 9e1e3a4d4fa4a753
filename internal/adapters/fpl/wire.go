package fpl

import (
	"strings"

	"github.com/okian/quarterly/internal/domain/model"
)

type standingsPage struct {
	Standings struct {
		HasNext bool          `json:"has_next"`
		Page    int           `json:"page"`
		Results []standingRow `json:"results"`
	} `json:"standings"`
	NewEntries struct {
		HasNext bool       `json:"has_next"`
		Page    int        `json:"page"`
		Results []newEntry `json:"results"`
	} `json:"new_entries"`
}

type standingRow struct {
	Entry      int    `json:"entry"`
	PlayerName string `json:"player_name"`
	EntryName  string `json:"entry_name"`
	Total      int    `json:"total"`
	Rank       int    `json:"rank"`
	EventTotal int    `json:"event_total"`
}

func (r standingRow) toModel() model.StandingRow {
	return model.StandingRow{
		Participant: model.Participant{
			ID:          r.Entry,
			ManagerName: strings.TrimSpace(r.PlayerName),
			TeamName:    strings.TrimSpace(r.EntryName),
		},
		TotalPoints:     r.Total,
		Rank:            r.Rank,
		LastRoundPoints: r.EventTotal,
	}
}

type newEntry struct {
	Entry           int    `json:"entry"`
	EntryName       string `json:"entry_name"`
	PlayerFirstName string `json:"player_first_name"`
	PlayerLastName  string `json:"player_last_name"`
}

func (e newEntry) toModel() model.Participant {
	name := strings.TrimSpace(strings.TrimSpace(e.PlayerFirstName) + " " + strings.TrimSpace(e.PlayerLastName))
	return model.Participant{
		ID:          e.Entry,
		ManagerName: name,
		TeamName:    strings.TrimSpace(e.EntryName),
	}
}

type entryHistory struct {
	Current []struct {
		Event  int `json:"event"`
		Points int `json:"points"`
	} `json:"current"`
}

func (h entryHistory) toModel(participantID int) []model.RoundScore {
	out := make([]model.RoundScore, 0, len(h.Current))
	for _, c := range h.Current {
		out = append(out, model.RoundScore{ParticipantID: participantID, Round: c.Event, Points: c.Points})
	}
	return out
}
