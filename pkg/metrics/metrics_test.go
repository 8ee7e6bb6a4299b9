package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register the catalog metrics", func() {
				So(manager, ShouldNotBeNil)
				manager.catalogRecords.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool)
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["exo_catalog_records"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.catalogRecords.Set(1)

			Convey("Then the names and labels should follow the options", func() {
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_unit_records" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "exo")
				So(manager.subsystem, ShouldEqual, "catalog")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When catalog gauges are updated", func() {
			UpdateCatalogRecords(12)
			UpdateCatalogDuplicateIDs(1)

			Convey("Then the gauges should hold the values", func() {
				So(testutil.ToFloat64(globalManager.catalogRecords), ShouldEqual, 12.0)
				So(testutil.ToFloat64(globalManager.catalogDuplicateIDs), ShouldEqual, 1.0)
			})
		})

		Convey("When lookups are recorded", func() {
			before := testutil.ToFloat64(globalManager.lookups.WithLabelValues(LookupNotFound))
			RecordLookup(LookupNotFound)
			RecordLookup(LookupNotFound)

			Convey("Then the outcome counter should grow", func() {
				after := testutil.ToFloat64(globalManager.lookups.WithLabelValues(LookupNotFound))
				So(after-before, ShouldEqual, 2.0)
			})
		})

		Convey("When model and validation counters are recorded", func() {
			beforeModel := testutil.ToFloat64(globalManager.modelRequests.WithLabelValues("kepler"))
			beforeReject := testutil.ToFloat64(globalManager.validationRejections.WithLabelValues("mission", "pattern"))
			RecordModelPerformanceRequest("kepler")
			RecordValidationRejection("mission", "pattern")

			Convey("Then both counters should grow by one", func() {
				So(testutil.ToFloat64(globalManager.modelRequests.WithLabelValues("kepler"))-beforeModel, ShouldEqual, 1.0)
				So(testutil.ToFloat64(globalManager.validationRejections.WithLabelValues("mission", "pattern"))-beforeReject, ShouldEqual, 1.0)
			})
		})

		Convey("When the remaining recorders are called", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordRepositoryQueryLatency(0.01)
					RecordHTTPRequest("exoplanets", "GET", "200")
					RecordHTTPRequestDuration("exoplanets", "GET", "200", 1.5)
					RecordRateLimitReject()
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("ai_model", "GET", "client_error")
					RecordErrorLatency("http", "client_error", 0.3)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("Then the registry should be the custom one", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
