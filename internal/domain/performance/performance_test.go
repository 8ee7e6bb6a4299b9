package performance

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMission(t *testing.T) {
	Convey("Given mission parameters", t, func() {
		Convey("When the value is kepler or tess", func() {
			k, kerr := ParseMission("kepler")
			ts, terr := ParseMission("tess")

			Convey("Then they should be accepted", func() {
				So(kerr, ShouldBeNil)
				So(terr, ShouldBeNil)
				So(k, ShouldEqual, Kepler)
				So(ts, ShouldEqual, TESS)
			})
		})

		Convey("When the value does not match exactly", func() {
			for _, in := range []string{"TESS", "Kepler", "mars", "", " kepler", "kepler ", "keplertess", "kepler|tess"} {
				m, err := ParseMission(in)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrInvalidMission), ShouldBeTrue)
				So(m, ShouldEqual, Mission(""))
			}
		})
	})
}

func TestFor(t *testing.T) {
	Convey("Given the static reports", t, func() {
		Convey("When asking for kepler", func() {
			r, ok := For(Kepler)

			Convey("Then the kepler numbers should be returned", func() {
				So(ok, ShouldBeTrue)
				So(r.Mission, ShouldEqual, "kepler")
				So(r.Precision, ShouldEqual, 0.92)
				So(r.Recall, ShouldEqual, 0.88)
				So(r.F1Score, ShouldEqual, 0.90)
				So(r.Performance, ShouldEqual, 0.91)
				So(len(r.ROC), ShouldEqual, 5)
				So(r.ROC[0].FPR, ShouldEqual, 0.0)
				So(r.ROC[0].TPR, ShouldEqual, 0.0)
				So(r.ROC[4].FPR, ShouldEqual, 1.0)
				So(r.ROC[4].TPR, ShouldEqual, 1.0)
				So(len(r.PR), ShouldEqual, 5)
				So(r.PR[4].Precision, ShouldEqual, 0.50)
			})
		})

		Convey("When asking for tess", func() {
			r, ok := For(TESS)

			Convey("Then the tess numbers should be returned", func() {
				So(ok, ShouldBeTrue)
				So(r.Mission, ShouldEqual, "tess")
				So(r.Precision, ShouldEqual, 0.87)
				So(r.Recall, ShouldEqual, 0.90)
				So(r.F1Score, ShouldEqual, 0.88)
				So(r.ROC[1].TPR, ShouldEqual, 0.70)
				So(r.PR[1].Recall, ShouldEqual, 0.4)
			})
		})

		Convey("When a caller modifies a returned report", func() {
			r, _ := For(Kepler)
			r.ROC[0].TPR = 42
			r.PR = nil

			Convey("Then the table should be unchanged", func() {
				again, _ := For(Kepler)
				So(again.ROC[0].TPR, ShouldEqual, 0.0)
				So(len(again.PR), ShouldEqual, 5)
			})
		})

		Convey("When asking for an unknown mission", func() {
			_, ok := For(Mission("mars"))

			Convey("Then nothing should be returned", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("Then every listed mission should have a report", func() {
			for _, m := range Missions() {
				_, ok := For(m)
				So(ok, ShouldBeTrue)
			}
		})
	})
}
