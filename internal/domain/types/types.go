// Package types contains the read models returned by the application layer.
package types

import "time"

// Entry is one row of a quarter's top list.
type Entry struct {
	Rank          int    `json:"rank"`
	ParticipantID int    `json:"participant_id"`
	ManagerName   string `json:"manager_name"`
	TeamName      string `json:"team_name"`
	Points        int    `json:"points"`
	Known         bool   `json:"known"`
}

// QuarterView describes one quarter at a point in time.
type QuarterView struct {
	ID        string `json:"id"`
	FromRound int    `json:"from_gw"`
	ToRound   int    `json:"to_gw"`
	Games     int    `json:"games"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// RoundRange is an inclusive span of rounds.
type RoundRange struct {
	FromRound int `json:"from_gw"`
	ToRound   int `json:"to_gw"`
}

// QuartersView is the calendar with the current quarter marked.
type QuartersView struct {
	At        time.Time     `json:"at"`
	TimeZone  string        `json:"time_zone"`
	Current   string        `json:"current"`
	PreSeason bool          `json:"pre_season"`
	Quarters  []QuarterView `json:"quarters"`
}

// Winner is a crowned participant of a finished quarter.
type Winner struct {
	ParticipantID int    `json:"participant_id"`
	ManagerName   string `json:"manager_name"`
	TeamName      string `json:"team_name"`
	Points        int    `json:"points"`
}

// Trophy is a participant's trophy count.
type Trophy struct {
	ParticipantID int    `json:"participant_id"`
	ManagerName   string `json:"manager_name"`
	TeamName      string `json:"team_name"`
	Wins          int    `json:"wins"`
}

// Failure names a participant whose history could not be fetched.
type Failure struct {
	ParticipantID int    `json:"participant_id"`
	Error         string `json:"error"`
}

// Summary is the full trophy report of a league at one instant.
type Summary struct {
	LeagueID         string              `json:"league_id"`
	At               time.Time           `json:"at"`
	CurrentQuarter   string              `json:"current_quarter"`
	CurrentRange     RoundRange          `json:"current_range"`
	PreSeason        bool                `json:"pre_season"`
	CurrentScores    map[int]int         `json:"current_scores"`
	Trophies         []Trophy            `json:"trophies"`
	WinnersByQuarter map[string][]Winner `json:"winners_by_quarter"`
	Undecided        []string            `json:"undecided"`
	QuarterTop       map[string][]Entry  `json:"quarter_top"`
	Partial          []Failure           `json:"partial"`
}

// TopView is the top list of one quarter.
type TopView struct {
	LeagueID string    `json:"league_id"`
	At       time.Time `json:"at"`
	Quarter  string    `json:"quarter"`
	Status   string    `json:"status"`
	Entries  []Entry   `json:"entries"`
	Partial  []Failure `json:"partial"`
}

// LeagueRow is one row of the season-to-date table.
type LeagueRow struct {
	Rank            int    `json:"rank"`
	ParticipantID   int    `json:"participant_id"`
	ManagerName     string `json:"manager_name"`
	TeamName        string `json:"team_name"`
	TotalPoints     int    `json:"total_points"`
	LastRoundPoints int    `json:"last_gw_points"`
}

// LeagueView is the provider's season table plus pre-season registrants.
type LeagueView struct {
	LeagueID     string      `json:"league_id"`
	Standings    []LeagueRow `json:"standings"`
	Placeholders []LeagueRow `json:"placeholders"`
}
