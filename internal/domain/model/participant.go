// Package model contains domain models passed between layers.
package model

import "strings"

// MissingName is displayed when the provider has no manager or team name.
const MissingName = "—"

// Participant is one league entry. Identity is ID; names are display only.
type Participant struct {
	ID          int    `json:"id"`
	ManagerName string `json:"manager_name"`
	TeamName    string `json:"team_name"`
}

// Normalized returns p with blank names replaced by MissingName.
func (p Participant) Normalized() Participant {
	p.ManagerName = displayName(p.ManagerName)
	p.TeamName = displayName(p.TeamName)
	return p
}

func displayName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return MissingName
	}
	return s
}

// RoundScore is the points one participant scored in one round.
type RoundScore struct {
	ParticipantID int `json:"participant_id"`
	Round         int `json:"round"`
	Points        int `json:"points"`
}

// StandingRow is a season-to-date row of the league table.
type StandingRow struct {
	Participant
	TotalPoints     int `json:"total_points"`
	Rank            int `json:"rank"`
	LastRoundPoints int `json:"last_round_points"`
}

// League is everything the standings provider knows about a league.
type League struct {
	ID           string        `json:"league_id"`
	Standings    []StandingRow `json:"standings"`
	Placeholders []Participant `json:"placeholders"`
}

// Confirmed returns the participants of the standings table in table order.
func (l League) Confirmed() []Participant {
	out := make([]Participant, len(l.Standings))
	for i, row := range l.Standings {
		out[i] = row.Participant
	}
	return out
}

// QuarterTotal is a participant's points inside one quarter. Known is false
// when the participant's history could not be fetched; Points is then 0 and
// must not be read as a score.
type QuarterTotal struct {
	ParticipantID int    `json:"participant_id"`
	QuarterID     string `json:"quarter_id"`
	Points        int    `json:"points"`
	Known         bool   `json:"known"`
}
