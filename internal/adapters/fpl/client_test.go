package fpl_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/quarterly/internal/adapters/fpl"
	"github.com/okian/quarterly/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const page1 = `{
  "standings": {"has_next": true, "page": 1, "results": [
    {"entry": 11, "player_name": " Ann Lee ", "entry_name": "Lee FC", "total": 120, "rank": 1, "event_total": 60},
    {"entry": 12, "player_name": "Bo", "entry_name": "", "total": 100, "rank": 2, "event_total": 40}
  ]},
  "new_entries": {"has_next": false, "page": 1, "results": [
    {"entry": 21, "entry_name": "Late XI", "player_first_name": "Cy", "player_last_name": "Doe"}
  ]}
}`

const page2 = `{
  "standings": {"has_next": false, "page": 2, "results": [
    {"entry": 13, "player_name": "Di", "entry_name": "Di Utd", "total": 90, "rank": 3, "event_total": 30}
  ]},
  "new_entries": {"has_next": false, "page": 2, "results": []}
}`

const history = `{"current": [{"event": 1, "points": 55}, {"event": 2, "points": 61}], "past": []}`

func newServer(t *testing.T, hits *atomic.Int32, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchStandings(t *testing.T) {
	Convey("Given a two-page league", t, func() {
		var hits atomic.Int32
		var sawHeaders atomic.Bool
		srv := newServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/leagues-classic/831753/standings/" {
				http.NotFound(w, r)
				return
			}
			if r.Header.Get("Referer") != "" && r.Header.Get("X-Request-ID") != "" && r.Header.Get("Accept") == "application/json" {
				sawHeaders.Store(true)
			}
			switch r.URL.Query().Get("page_standings") {
			case "1":
				fmt.Fprint(w, page1)
			default:
				fmt.Fprint(w, page2)
			}
		})
		client := fpl.NewClient(srv.URL, fpl.WithRetries(0))

		Convey("When fetching", func() {
			league, err := client.FetchStandings(context.Background(), "831753")

			Convey("Then every page is merged", func() {
				So(err, ShouldBeNil)
				So(hits.Load(), ShouldEqual, 2)
				So(league.ID, ShouldEqual, "831753")
				So(len(league.Standings), ShouldEqual, 3)
				So(league.Standings[0].ManagerName, ShouldEqual, "Ann Lee")
				So(league.Standings[0].TotalPoints, ShouldEqual, 120)
				So(league.Standings[0].LastRoundPoints, ShouldEqual, 60)
				So(league.Standings[2].ID, ShouldEqual, 13)
			})

			Convey("Then pre-season entries become placeholders", func() {
				So(league.Placeholders, ShouldResemble, []model.Participant{{ID: 21, ManagerName: "Cy Doe", TeamName: "Late XI"}})
			})

			Convey("Then the browser-like headers are sent", func() {
				So(sawHeaders.Load(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a provider that keeps failing", t, func() {
		var hits atomic.Int32
		srv := newServer(t, &hits, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		client := fpl.NewClient(srv.URL, fpl.WithRetries(1))

		Convey("When fetching", func() {
			_, err := client.FetchStandings(context.Background(), "1")

			Convey("Then it retries once and reports provider unavailable", func() {
				So(hits.Load(), ShouldEqual, 2)
				So(errors.Is(err, model.ErrProviderUnavailable), ShouldBeTrue)
				So(errors.Is(err, fpl.ErrUnexpectedStatus), ShouldBeTrue)

				var pe *fpl.ProviderError
				So(errors.As(err, &pe), ShouldBeTrue)
				So(pe.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
				So(pe.Error(), ShouldContainSubstring, "league 1")
			})
		})
	})

	Convey("Given a malformed body", t, func() {
		var hits atomic.Int32
		srv := newServer(t, &hits, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "<html>")
		})
		client := fpl.NewClient(srv.URL, fpl.WithRetries(3))

		Convey("Then it fails without retrying", func() {
			_, err := client.FetchStandings(context.Background(), "1")
			So(errors.Is(err, model.ErrProviderUnavailable), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 1)
		})
	})
}

func TestClient_FetchHistory(t *testing.T) {
	Convey("Given a history endpoint", t, func() {
		var hits atomic.Int32
		srv := newServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/entry/11/history/":
				fmt.Fprint(w, history)
			case "/entry/12/history/":
				w.WriteHeader(http.StatusForbidden)
			case "/entry/13/history/":
				time.Sleep(200 * time.Millisecond)
				fmt.Fprint(w, history)
			case "/entry/14/history/":
				fmt.Fprint(w, `{"current": [], "past": []}`)
			default:
				http.NotFound(w, r)
			}
		})
		client := fpl.NewClient(srv.URL, fpl.WithRetries(0))
		ctx := context.Background()

		Convey("Then rounds are tagged with the participant", func() {
			got, err := client.FetchHistory(ctx, 11)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []model.RoundScore{
				{ParticipantID: 11, Round: 1, Points: 55},
				{ParticipantID: 11, Round: 2, Points: 61},
			})
		})

		Convey("Then an entry with no rounds played has an empty history", func() {
			got, err := client.FetchHistory(ctx, 14)
			So(err, ShouldBeNil)
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("Then an unknown entry is a provider failure", func() {
			got, err := client.FetchHistory(ctx, 99)
			So(got, ShouldBeNil)
			So(errors.Is(err, model.ErrProviderUnavailable), ShouldBeTrue)
			So(errors.Is(err, fpl.ErrNotFound), ShouldBeTrue)

			var pe *fpl.ProviderError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.StatusCode, ShouldEqual, http.StatusNotFound)
			So(pe.ParticipantID, ShouldEqual, 99)
		})

		Convey("Then a client error is a provider failure", func() {
			_, err := client.FetchHistory(ctx, 12)
			So(errors.Is(err, model.ErrProviderUnavailable), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "entry 12")
		})

		Convey("Then an expired context aborts the call", func() {
			cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			_, err := client.FetchHistory(cctx, 13)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(errors.Is(err, model.ErrProviderUnavailable), ShouldBeTrue)
		})
	})
}
