package standings_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/quarterly/internal/domain/aggregate"
	"github.com/okian/quarterly/internal/domain/calendar"
	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

type fixture struct {
	quarters []calendar.Quarter
	q1       calendar.Quarter
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	table, err := calendar.DefaultTable(time.UTC)
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	qs := table.BuildQuarters()
	return fixture{quarters: qs, q1: qs[0]}
}

// q1Input gives a participant a flat per-round score inside Q1 only.
func q1Input(id, perRound int) aggregate.Input {
	h := make([]model.RoundScore, 0, 6)
	for r := 1; r <= 6; r++ {
		h = append(h, model.RoundScore{ParticipantID: id, Round: r, Points: perRound})
	}
	return aggregate.Input{Participant: model.Participant{ID: id, ManagerName: "M", TeamName: "T"}, History: h}
}

func TestWinners(t *testing.T) {
	f := newFixture(t)

	Convey("Given Q1 totals A=300 B=300 C=240", t, func() {
		totals := aggregate.Fold([]aggregate.Input{q1Input(3, 50), q1Input(1, 50), q1Input(2, 40)}, f.quarters)

		Convey("When the quarter is finished", func() {
			ws, err := standings.Winners(totals, f.q1, calendar.StatusFinished)

			Convey("Then both tied leaders win, ordered by id", func() {
				So(err, ShouldBeNil)
				So(ws, ShouldResemble, []standings.Winner{{ParticipantID: 1, Points: 300}, {ParticipantID: 3, Points: 300}})
			})
		})

		Convey("When the quarter is still active", func() {
			_, err := standings.Winners(totals, f.q1, calendar.StatusActive)

			Convey("Then no winner is crowned", func() {
				So(errors.Is(err, standings.ErrNotFinished), ShouldBeTrue)
			})
		})
	})

	Convey("Given a participant whose history failed", t, func() {
		totals := aggregate.Fold([]aggregate.Input{
			q1Input(1, 10),
			{Participant: model.Participant{ID: 2}, Err: errors.New("timeout")},
		}, f.quarters)

		Convey("Then the finished quarter is undetermined", func() {
			_, err := standings.Winners(totals, f.q1, calendar.StatusFinished)
			So(errors.Is(err, standings.ErrUndetermined), ShouldBeTrue)
		})
	})

	Convey("Given no participants", t, func() {
		totals := aggregate.Fold(nil, f.quarters)

		Convey("Then the finished quarter has no winners and no error", func() {
			ws, err := standings.Winners(totals, f.q1, calendar.StatusFinished)
			So(err, ShouldBeNil)
			So(ws, ShouldBeEmpty)
		})
	})
}

func TestResolve(t *testing.T) {
	f := newFixture(t)

	Convey("Given a classification after Q1 and Q2 finished", t, func() {
		now := f.quarters[2].Start().Add(time.Hour)
		cls, err := calendar.Classify(now, f.quarters)
		So(err, ShouldBeNil)

		inputs := []aggregate.Input{
			{Participant: model.Participant{ID: 1}, History: []model.RoundScore{{Round: 1, Points: 80}, {Round: 7, Points: 40}, {Round: 14, Points: 500}}},
			{Participant: model.Participant{ID: 2}, History: []model.RoundScore{{Round: 2, Points: 80}, {Round: 8, Points: 90}}},
			{Participant: model.Participant{ID: 3}, History: []model.RoundScore{{Round: 3, Points: 10}}},
		}
		totals := aggregate.Fold(inputs, f.quarters)

		Convey("When resolving", func() {
			r := standings.Resolve(totals, f.quarters, cls)

			Convey("Then only finished quarters award trophies", func() {
				So(r.Winners, ShouldContainKey, "Q1")
				So(r.Winners, ShouldContainKey, "Q2")
				So(r.Winners, ShouldNotContainKey, "Q3")
				So(r.Trophies, ShouldResemble, map[int]int{1: 1, 2: 2, 3: 0})
				So(r.Undecided, ShouldBeEmpty)
			})

			Convey("Then the tally equals the number of crowned winners", func() {
				sum, crowned := 0, 0
				for _, n := range r.Trophies {
					sum += n
				}
				for _, ws := range r.Winners {
					crowned += len(ws)
				}
				So(sum, ShouldEqual, crowned)
				So(standings.TrophyTally(totals, f.quarters, cls), ShouldResemble, r.Trophies)
			})
		})

		Convey("When one history is missing", func() {
			inputs[2] = aggregate.Input{Participant: model.Participant{ID: 3}, Err: errors.New("503")}
			r := standings.Resolve(aggregate.Fold(inputs, f.quarters), f.quarters, cls)

			Convey("Then finished quarters are undecided instead of awarded", func() {
				So(r.Undecided, ShouldResemble, []string{"Q1", "Q2"})
				So(r.Winners, ShouldBeEmpty)
				So(r.Trophies, ShouldResemble, map[int]int{1: 0, 2: 0, 3: 0})
			})
		})

		Convey("When it is pre-season", func() {
			early, err := calendar.Classify(f.q1.Start().Add(-time.Hour), f.quarters)
			So(err, ShouldBeNil)
			r := standings.Resolve(totals, f.quarters, early)

			Convey("Then nobody has trophies", func() {
				So(r.Winners, ShouldBeEmpty)
				So(r.Trophies, ShouldResemble, map[int]int{1: 0, 2: 0, 3: 0})
			})
		})
	})
}

func TestCurrentStandings(t *testing.T) {
	f := newFixture(t)

	Convey("Given one known and one unknown participant", t, func() {
		totals := aggregate.Fold([]aggregate.Input{
			q1Input(1, 5),
			{Participant: model.Participant{ID: 2}, Err: errors.New("x")},
		}, f.quarters)

		Convey("Then only the known score is reported", func() {
			So(standings.CurrentStandings(totals, "Q1"), ShouldResemble, map[int]int{1: 30})
		})
	})
}

func TestTopN(t *testing.T) {
	f := newFixture(t)

	Convey("Given a mix of scores and a failure", t, func() {
		totals := aggregate.Fold([]aggregate.Input{
			{Participant: model.Participant{ID: 9}, Err: errors.New("x")},
			q1Input(5, 10),
			q1Input(2, 10),
			q1Input(7, 20),
		}, f.quarters)

		Convey("When asking for the top 3", func() {
			got := standings.TopN(totals, f.q1, 3)

			Convey("Then order is points desc then id asc", func() {
				So(len(got), ShouldEqual, 3)
				So(got[0].ParticipantID, ShouldEqual, 7)
				So(got[1].ParticipantID, ShouldEqual, 2)
				So(got[2].ParticipantID, ShouldEqual, 5)
				So(got[0].Rank, ShouldEqual, 1)
				So(got[2].Rank, ShouldEqual, 3)
				So(got[0].ManagerName, ShouldEqual, "M")
			})
		})

		Convey("When asking for more than exist", func() {
			got := standings.TopN(totals, f.q1, 10)

			Convey("Then the unknown total sorts last", func() {
				So(len(got), ShouldEqual, 4)
				So(got[3].ParticipantID, ShouldEqual, 9)
				So(got[3].Known, ShouldBeFalse)
				So(got[3].ManagerName, ShouldEqual, model.MissingName)
			})
		})

		Convey("When n is not positive", func() {
			So(standings.TopN(totals, f.q1, 0), ShouldBeEmpty)
		})
	})

	Convey("Given Q1 totals A=10 B=30 C=20 D=5", t, func() {
		single := func(id, points int) aggregate.Input {
			return aggregate.Input{
				Participant: model.Participant{ID: id},
				History:     []model.RoundScore{{ParticipantID: id, Round: 1, Points: points}},
			}
		}
		totals := aggregate.Fold([]aggregate.Input{single(1, 10), single(2, 30), single(3, 20), single(4, 5)}, f.quarters)

		Convey("Then the top 3 is B, C, A", func() {
			got := standings.TopN(totals, f.q1, 3)
			So(len(got), ShouldEqual, 3)
			So(got[0].ParticipantID, ShouldEqual, 2)
			So(got[1].ParticipantID, ShouldEqual, 3)
			So(got[2].ParticipantID, ShouldEqual, 1)
			So(got[0].Points, ShouldEqual, 30)
			So(got[2].Points, ShouldEqual, 10)
		})
	})
}
