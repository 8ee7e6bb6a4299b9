package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/exoplanets/internal/adapters/http/api"
	service "github.com/okian/exoplanets/internal/app"
	"github.com/okian/exoplanets/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newCatalogServer(t *testing.T, source []byte) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	svc := service.New(service.WithSource(source))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	srv := httptest.NewServer(api.NewServer(svc).Router(ctx))
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv
}

func resultsByName(r Report) map[string]Result {
	out := make(map[string]Result, len(r.Results))
	for _, res := range r.Results {
		out[res.Name] = res
	}
	return out
}

func TestRun_HealthyService(t *testing.T) {
	Convey("Given a catalog service over the built-in data", t, func() {
		srv := newCatalogServer(t, nil)

		Convey("When probing it", func() {
			report, err := Run(context.Background(), &Config{
				BaseURL:  srv.URL,
				Timeout:  5 * time.Second,
				Workers:  4,
				Requests: 100,
			})

			Convey("Then every check should pass", func() {
				So(err, ShouldBeNil)
				So(report.Passed(), ShouldBeTrue)
				So(len(report.Results), ShouldEqual, len(checks()))
				So(report.Failed(), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a catalog without an empty id", t, func() {
		srv := newCatalogServer(t, []byte(`[{"id":"a","name":"A"},{"id":"a","name":"A2"},{"name":"no id"}]`))

		Convey("When probing it", func() {
			report, err := Run(context.Background(), &Config{BaseURL: srv.URL + "/", Requests: 10})

			Convey("Then the empty id should be expected to miss", func() {
				So(err, ShouldBeNil)
				So(resultsByName(report)["empty_id"].Passed, ShouldBeTrue)
			})
		})
	})
}

func TestRun_BrokenService(t *testing.T) {
	Convey("Given a service that picks the last duplicate and accepts any mission", t, func() {
		good := newCatalogServer(t, nil)
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/exoplanets/wasp-96b":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"wasp-96b","name":"WASP-96b (archival)"}`))
			case r.URL.Path == "/ai_model" && r.URL.Query().Get("mission") == "TESS":
				proxy(w, r, good.URL+"/ai_model?mission=tess")
			default:
				proxy(w, r, good.URL+r.URL.RequestURI())
			}
		}))
		defer broken.Close()

		Convey("When probing it", func() {
			report, err := Run(context.Background(), &Config{BaseURL: broken.URL, Workers: 2, Requests: 20})
			byName := resultsByName(report)

			Convey("Then the run should fail", func() {
				So(errors.Is(err, ErrChecksFailed), ShouldBeTrue)
				So(report.Passed(), ShouldBeFalse)
			})

			Convey("And exactly the affected checks should fail", func() {
				So(byName["healthz"].Passed, ShouldBeTrue)
				So(byName["list_stable"].Passed, ShouldBeTrue)
				So(byName["first_match"].Passed, ShouldBeFalse)
				So(byName["first_match"].Error, ShouldContainSubstring, "wasp-96b")
				So(byName["concurrent_reads"].Passed, ShouldBeFalse)
				So(byName["mission_validation"].Passed, ShouldBeFalse)
				So(byName["mission_validation"].Error, ShouldContainSubstring, "unexpected status")
				So(byName["kepler_report"].Passed, ShouldBeTrue)
			})
		})
	})

	Convey("Given nothing listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("When probing it", func() {
			report, err := Run(context.Background(), &Config{BaseURL: url, Timeout: time.Second})

			Convey("Then every check should fail", func() {
				So(errors.Is(err, ErrChecksFailed), ShouldBeTrue)
				So(len(report.Failed()), ShouldEqual, len(checks()))
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When probing", func() {
			_, err := Run(ctx, nil)

			Convey("Then the run should stop before any request", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestWithDefaults(t *testing.T) {
	Convey("Given an empty config", t, func() {
		cfg := withDefaults(&Config{Requests: -3})

		Convey("Then defaults should be filled in", func() {
			So(cfg.BaseURL, ShouldEqual, DefaultBaseURL)
			So(cfg.Timeout, ShouldEqual, DefaultTimeout)
			So(cfg.Workers, ShouldEqual, DefaultWorkers)
			So(cfg.Requests, ShouldEqual, 0)
		})
	})
}

func TestPlanetPath(t *testing.T) {
	Convey("Given ids with reserved characters", t, func() {
		Convey("Then they should be escaped as one path segment", func() {
			So(planetPath(""), ShouldEqual, "/exoplanets/")
			So(planetPath("a/b c"), ShouldEqual, "/exoplanets/a%2Fb%20c")
			So(strings.HasPrefix(planetPath("k2-18b"), "/exoplanets/"), ShouldBeTrue)
		})
	})
}

func proxy(w http.ResponseWriter, r *http.Request, target string) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, http.NoBody)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer func() { _ = resp.Body.Close() }()
	w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
	w.WriteHeader(resp.StatusCode)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			_, _ = w.Write(buf[:n])
		}
		if rerr != nil {
			return
		}
	}
}
