package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/internal/domain/standings"
	"github.com/okian/quarterly/internal/domain/types"
	"github.com/okian/quarterly/pkg/metrics"
)

// Quarters describes the calendar at now. It never calls a provider.
func (s *Service) Quarters(_ context.Context, now time.Time) (types.QuartersView, error) {
	v, err := s.view("")
	if err != nil {
		return types.QuartersView{}, err
	}
	now = s.at(now)

	cls, err := calendar.Classify(now, v.quarters)
	if err != nil {
		return types.QuartersView{}, err
	}

	out := types.QuartersView{
		At:        now.In(v.loc),
		TimeZone:  v.loc.String(),
		Current:   cls.Current,
		PreSeason: cls.PreSeason,
		Quarters:  make([]types.QuarterView, len(v.quarters)),
	}
	for i, q := range v.quarters {
		out.Quarters[i] = quarterView(q, cls, now)
	}
	return out, nil
}

func quarterView(q calendar.Quarter, cls calendar.Classification, now time.Time) types.QuarterView {
	status := cls.Status(q.ID)
	var note string
	switch status {
	case calendar.StatusUpcoming:
		note = fmt.Sprintf("starts in %d days", calendar.DaysUntil(now, q.Start()))
	case calendar.StatusActive:
		note = fmt.Sprintf("ends in %d days", calendar.DaysUntil(now, q.End()))
	default:
		note = "finished"
	}
	return types.QuarterView{
		ID:        q.ID,
		FromRound: q.FromRound,
		ToRound:   q.ToRound,
		Games:     q.Games(),
		FromDate:  q.FromDate.String(),
		ToDate:    q.ToDate.String(),
		Status:    string(status),
		Note:      note,
	}
}

// Summary builds the trophy report of a league at now. An empty leagueID
// selects the configured league; a zero now selects the service clock.
func (s *Service) Summary(ctx context.Context, leagueID string, now time.Time) (types.Summary, error) {
	v, err := s.view(leagueID)
	if err != nil {
		return types.Summary{}, err
	}
	snap, err := s.collect(ctx, v, s.at(now))
	if err != nil {
		return types.Summary{}, err
	}

	current, _ := calendar.Find(snap.quarters, snap.cls.Current)
	report := standings.Resolve(snap.totals, snap.quarters, snap.cls)
	metrics.UpdateQuarterResolution(len(report.Winners), len(report.Undecided))

	names := snap.names()
	out := types.Summary{
		LeagueID:         snap.league,
		At:               snap.now.In(snap.loc),
		CurrentQuarter:   current.ID,
		CurrentRange:     types.RoundRange{FromRound: current.FromRound, ToRound: current.ToRound},
		PreSeason:        snap.cls.PreSeason,
		CurrentScores:    standings.CurrentStandings(snap.totals, current.ID),
		Trophies:         make([]types.Trophy, 0, len(report.Trophies)),
		WinnersByQuarter: make(map[string][]types.Winner, len(report.Winners)),
		Undecided:        report.Undecided,
		QuarterTop:       make(map[string][]types.Entry, len(snap.quarters)),
		Partial:          snap.partial(),
	}

	for _, q := range snap.quarters {
		out.QuarterTop[q.ID] = standings.TopN(snap.totals, q, s.topN)
	}

	for qid, ws := range report.Winners {
		list := make([]types.Winner, len(ws))
		for i, w := range ws {
			p := names[w.ParticipantID]
			list[i] = types.Winner{ParticipantID: w.ParticipantID, ManagerName: p.ManagerName, TeamName: p.TeamName, Points: w.Points}
		}
		out.WinnersByQuarter[qid] = list
	}

	for id, wins := range report.Trophies {
		p := names[id]
		out.Trophies = append(out.Trophies, types.Trophy{ParticipantID: id, ManagerName: p.ManagerName, TeamName: p.TeamName, Wins: wins})
	}
	sort.Slice(out.Trophies, func(i, j int) bool {
		a, b := out.Trophies[i], out.Trophies[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.ParticipantID < b.ParticipantID
	})
	return out, nil
}

// Top returns the best n participants of one quarter. A non-positive n
// selects the configured default.
func (s *Service) Top(ctx context.Context, leagueID, quarterID string, n int, now time.Time) (types.TopView, error) {
	v, err := s.view(leagueID)
	if err != nil {
		return types.TopView{}, err
	}
	q, ok := calendar.Find(v.quarters, quarterID)
	if !ok {
		return types.TopView{}, fmt.Errorf("%w: %q", ErrUnknownQuarter, quarterID)
	}
	if n <= 0 {
		n = s.topN
	}

	snap, err := s.collect(ctx, v, s.at(now))
	if err != nil {
		return types.TopView{}, err
	}
	return types.TopView{
		LeagueID: snap.league,
		At:       snap.now.In(snap.loc),
		Quarter:  q.ID,
		Status:   string(snap.cls.Status(q.ID)),
		Entries:  standings.TopN(snap.totals, q, n),
		Partial:  snap.partial(),
	}, nil
}

// League returns the provider's season table and pre-season registrants.
func (s *Service) League(ctx context.Context, leagueID string) (types.LeagueView, error) {
	v, err := s.view(leagueID)
	if err != nil {
		return types.LeagueView{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	league, err := s.standings.FetchStandings(ctx, v.league)
	if err != nil {
		return types.LeagueView{}, providerErr("fetch standings", err)
	}

	out := types.LeagueView{
		LeagueID:     v.league,
		Standings:    make([]types.LeagueRow, 0, len(league.Standings)),
		Placeholders: make([]types.LeagueRow, 0, len(league.Placeholders)),
	}
	for _, row := range league.Standings {
		p := row.Normalized()
		out.Standings = append(out.Standings, types.LeagueRow{
			Rank:            row.Rank,
			ParticipantID:   p.ID,
			ManagerName:     p.ManagerName,
			TeamName:        p.TeamName,
			TotalPoints:     row.TotalPoints,
			LastRoundPoints: row.LastRoundPoints,
		})
	}
	for _, ph := range league.Placeholders {
		p := ph.Normalized()
		out.Placeholders = append(out.Placeholders, types.LeagueRow{ParticipantID: p.ID, ManagerName: p.ManagerName, TeamName: p.TeamName})
	}
	return out, nil
}

func (snap *snapshot) names() map[int]model.Participant {
	ps := snap.totals.Participants()
	out := make(map[int]model.Participant, len(ps))
	for _, p := range ps {
		out[p.ID] = p.Normalized()
	}
	return out
}

func (snap *snapshot) partial() []types.Failure {
	failed := snap.totals.Failures()
	out := make([]types.Failure, 0, len(failed))
	for id, err := range failed {
		out = append(out, types.Failure{ParticipantID: id, Error: err.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out
}
