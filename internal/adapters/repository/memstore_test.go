package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore_Fixture(t *testing.T) {
	Convey("Given a store over the built-in catalog", t, func() {
		ctx := context.Background()
		s, err := NewMemStore(ctx)
		So(err, ShouldBeNil)

		Convey("When listing records", func() {
			list := s.List(ctx)

			Convey("Then every record should be returned in fixture order", func() {
				var ids []string
				for _, p := range list {
					ids = append(ids, p.IDValue())
				}
				So(ids, ShouldResemble, []string{
					"kepler-452b", "proxima-centauri-b", "wasp-96b", "trappist-1e",
					"toi-700d", "wasp-96b", "", "k2-18b", "51-pegasi-b", "wasp-96b",
					"toi-270d", "hd-209458b",
				})
				So(s.Count(ctx), ShouldEqual, 12)
			})

			Convey("Then repeated calls should not drift", func() {
				again := s.List(ctx)
				So(len(again), ShouldEqual, len(list))
				for i := range list {
					So(string(again[i].Raw), ShouldEqual, string(list[i].Raw))
				}
			})

			Convey("Then reordering the returned slice should not affect the store", func() {
				list[0], list[1] = list[1], list[0]
				So(s.List(ctx)[0].IDValue(), ShouldEqual, "kepler-452b")
			})

			Convey("Then each record should re-encode to its fixture definition", func() {
				var src []json.RawMessage
				So(json.Unmarshal(Fixture, &src), ShouldBeNil)
				So(len(src), ShouldEqual, len(list))
				for i := range list {
					out, err := json.Marshal(list[i])
					So(err, ShouldBeNil)

					var want, got map[string]any
					So(json.Unmarshal(src[i], &want), ShouldBeNil)
					So(json.Unmarshal(out, &got), ShouldBeNil)
					So(got, ShouldResemble, want)

					var compact bytes.Buffer
					So(json.Compact(&compact, src[i]), ShouldBeNil)
					So(string(out), ShouldEqual, compact.String())
				}
			})

			Convey("Then records missing common fields should stay without them", func() {
				archival := list[9]
				So(archival.DiscoveryMethod, ShouldBeNil)
				So(archival.GraphData, ShouldBeNil)
				out, _ := json.Marshal(archival)
				So(string(out), ShouldNotContainSubstring, "discovery_method")
				So(string(out), ShouldNotContainSubstring, "graph_data")
			})

			Convey("Then empty-string numerics should not be coerced", func() {
				k2 := list[7]
				So(k2.Distance, ShouldNotBeNil)
				So(k2.Distance.IsEmptyString(), ShouldBeTrue)

				proxima := list[1]
				So(proxima.Mass, ShouldBeNil)
			})

			Convey("Then out-of-range confidences should be kept", func() {
				v, ok := list[5].DetectionConfidence.Float64()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 77.0)
			})
		})

		Convey("When finding a duplicated id", func() {
			p, err := s.FindByID(ctx, "wasp-96b")

			Convey("Then the first stored record should win", func() {
				So(err, ShouldBeNil)
				So(*p.Name, ShouldEqual, "WASP-96b")
				So(*p.Mission, ShouldEqual, "tess")
				So(string(p.Raw), ShouldEqual, string(s.List(ctx)[2].Raw))
			})
		})

		Convey("When finding every stored id", func() {
			Convey("Then the first record carrying that id should be returned", func() {
				list := s.List(ctx)
				for _, want := range list {
					got, err := s.FindByID(ctx, want.IDValue())
					So(err, ShouldBeNil)
					for _, q := range list {
						if q.IDValue() == want.IDValue() {
							So(string(got.Raw), ShouldEqual, string(q.Raw))
							break
						}
					}
				}
			})
		})

		Convey("When finding the empty id", func() {
			p, err := s.FindByID(ctx, "")

			Convey("Then the empty-id record should be returned", func() {
				So(err, ShouldBeNil)
				So(*p.Name, ShouldEqual, "Unnamed candidate")
			})
		})

		Convey("When finding an unknown or differently cased id", func() {
			_, err1 := s.FindByID(ctx, "does-not-exist")
			_, err2 := s.FindByID(ctx, "WASP-96B")
			_, err3 := s.FindByID(ctx, " wasp-96b")

			Convey("Then ErrNotFound should be returned", func() {
				So(errors.Is(err1, ErrNotFound), ShouldBeTrue)
				So(errors.Is(err2, ErrNotFound), ShouldBeTrue)
				So(errors.Is(err3, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When reading stats", func() {
			st := s.Stats(ctx)

			Convey("Then they should describe the fixture", func() {
				So(st.Total, ShouldEqual, 12)
				So(st.DuplicateIDs, ShouldResemble, map[string]int{"wasp-96b": 3})
				So(st.EmptyIDs, ShouldEqual, 1)
				So(st.MissingIDs, ShouldEqual, 0)
				So(st.ByMission, ShouldResemble, map[string]int{
					"kepler": 5, "Kepler": 1, "tess": 4, "TESS": 1, "Tess": 1,
				})
			})

			Convey("Then modifying them should not affect the store", func() {
				st.ByMission["kepler"] = 0
				So(s.Stats(ctx).ByMission["kepler"], ShouldEqual, 5)
			})
		})
	})
}

func TestMemStore_Source(t *testing.T) {
	Convey("Given a custom source", t, func() {
		ctx := context.Background()

		Convey("When a record has no id key", func() {
			s, err := NewMemStore(ctx, WithSource([]byte(`[{"name":"nameless"},{"id":"","name":"blank"}]`)))
			So(err, ShouldBeNil)

			Convey("Then it should be kept but never match a lookup", func() {
				So(s.Count(ctx), ShouldEqual, 2)
				p, err := s.FindByID(ctx, "")
				So(err, ShouldBeNil)
				So(*p.Name, ShouldEqual, "blank")
				So(s.Stats(ctx).MissingIDs, ShouldEqual, 1)
			})
		})

		Convey("When records carry fields of an unexpected shape", func() {
			shapes := []string{
				`{"id":"a","graph_data":[{"time":0,"brightness":""}]}`,
				`{"id":"b","graph_data":[{"time":"","velocity":1.5}]}`,
				`{"id":5,"name":"numeric id"}`,
				`{"id":"c","graph_data":""}`,
				`{"id":"d","radius":{"value":1},"discovery_year":"2019"}`,
				`{"id":"e","mission":["kepler"],"graph_data":[null,"x"]}`,
			}
			src := []byte("[" + strings.Join(shapes, ",") + "]")
			s, err := NewMemStore(ctx, WithSource(src))

			Convey("Then the whole catalog should still load", func() {
				So(err, ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, len(shapes))
			})

			Convey("Then every record should re-encode exactly as written", func() {
				list := s.List(ctx)
				for i, want := range shapes {
					out, err := json.Marshal(list[i])
					So(err, ShouldBeNil)
					So(string(out), ShouldEqual, want)
				}
			})

			Convey("Then string ids should still be found", func() {
				for _, id := range []string{"a", "b", "c", "d", "e"} {
					_, err := s.FindByID(ctx, id)
					So(err, ShouldBeNil)
				}
			})

			Convey("Then a non-string id should never match", func() {
				_, err := s.FindByID(ctx, "5")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				So(s.Stats(ctx).MissingIDs, ShouldEqual, 1)
			})
		})

		Convey("When the source is not an array of records", func() {
			_, err1 := NewMemStore(ctx, WithSource([]byte(`{"id":"x"}`)))
			_, err2 := NewMemStore(ctx, WithSource([]byte(`[1, 2]`)))
			_, err3 := NewMemStore(ctx, WithSource([]byte(`[{"id":`)))

			Convey("Then loading should fail with ErrLoadCatalog", func() {
				So(errors.Is(err1, ErrLoadCatalog), ShouldBeTrue)
				So(errors.Is(err2, ErrLoadCatalog), ShouldBeTrue)
				So(errors.Is(err3, ErrLoadCatalog), ShouldBeTrue)
			})
		})

		Convey("When the source is empty", func() {
			s, err := NewMemStore(ctx, WithSource(nil))

			Convey("Then the built-in catalog should be used", func() {
				So(err, ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 12)
			})
		})
	})
}

func TestMemStore_ConcurrentReads(t *testing.T) {
	Convey("Given a loaded store", t, func() {
		ctx := context.Background()
		s, err := NewMemStore(ctx)
		So(err, ShouldBeNil)

		Convey("When many goroutines read at once", func() {
			const readers = 32
			var wg sync.WaitGroup
			results := make([]string, readers)
			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_ = s.List(ctx)
					p, err := s.FindByID(ctx, "wasp-96b")
					if err == nil {
						results[i] = *p.Name
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every reader should see the same first match", func() {
				for _, r := range results {
					So(r, ShouldEqual, "WASP-96b")
				}
			})
		})
	})
}

func BenchmarkMemStore_FindByID(b *testing.B) {
	ctx := context.Background()
	s, err := NewMemStore(ctx)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = s.FindByID(ctx, "hd-209458b")
		}
	})
}
