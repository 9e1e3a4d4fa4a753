package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then every collector is registered there", func() {
				So(manager, ShouldNotBeNil)
				manager.participants.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_participants"], ShouldBeTrue)
			})
		})

		Convey("When creating two managers on separate registries", func() {
			Convey("Then registration does not panic", func() {
				So(func() {
					NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
					NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording provider and aggregation metrics", func() {
			before := testutil.ToFloat64(globalManager.historyFailures)
			RecordProviderRequest("history", "error", 12)
			RecordHistoryFailure()
			UpdateParticipants(42)
			UpdateQuarterResolution(2, 1)
			RecordAggregationDuration(30)

			Convey("Then the values are visible", func() {
				So(testutil.ToFloat64(globalManager.historyFailures), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.participants), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.finishedQuarters), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.undecidedQuarters), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.providerRequests.WithLabelValues("history", "error")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP, queue and system metrics", func() {
			So(func() {
				RecordHTTPRequest("quarters", "GET", "200")
				RecordHTTPRequestDuration("quarters", "GET", "200", 4)
				RecordErrorByEndpoint("quarter_wins", "GET", "server_error")
				UpdateWorkerCount(6)
				AddWorkerActive(1)
				AddWorkerActive(-1)
				UpdateQueueSize(0)
				RecordQueueEnqueue()
				RecordQueueEnqueueError()
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
