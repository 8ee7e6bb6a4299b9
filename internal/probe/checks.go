package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/okian/exoplanets/internal/domain/model"
	"github.com/rotisserie/eris"
)

// check is one black-box property of a running catalog service.
type check struct {
	name string
	run  func(ctx context.Context, p *prober) error
}

// prober runs checks against one service.
type prober struct {
	client *httpClient
	config *Config
}

func checks() []check {
	return []check{
		{name: "healthz", run: checkHealth},
		{name: "list_stable", run: checkListStable},
		{name: "first_match", run: checkFirstMatch},
		{name: "empty_id", run: checkEmptyID},
		{name: "soft_not_found", run: checkSoftNotFound},
		{name: "kepler_report", run: checkKeplerReport},
		{name: "tess_report", run: checkTESSReport},
		{name: "mission_validation", run: checkMissionValidation},
		{name: "concurrent_reads", run: checkConcurrentReads},
	}
}

func checkHealth(ctx context.Context, p *prober) error {
	_, err := p.client.getStatus(ctx, "/healthz", http.StatusOK)
	return err
}

func checkListStable(ctx context.Context, p *prober) error {
	first, err := p.client.getStatus(ctx, "/exoplanets", http.StatusOK)
	if err != nil {
		return err
	}
	second, err := p.client.getStatus(ctx, "/exoplanets", http.StatusOK)
	if err != nil {
		return err
	}
	recs, err := decodeList(first)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return eris.Wrap(ErrMismatch, "catalog is empty")
	}
	if !bytes.Equal(first, second) {
		return eris.Wrap(ErrMismatch, "two listings differ")
	}
	return nil
}

// checkFirstMatch fetches every listed id and expects the first listed
// record carrying it, byte for byte.
func checkFirstMatch(ctx context.Context, p *prober) error {
	entries, err := p.catalog(ctx)
	if err != nil {
		return err
	}
	for _, e := range uniqueIDs(entries) {
		body, err := p.client.getStatus(ctx, planetPath(e.id), http.StatusOK)
		if err != nil {
			return err
		}
		if !sameJSON(body, e.raw) {
			return eris.Wrapf(ErrMismatch, "id %q: got %s", e.id, body)
		}
	}
	return nil
}

func checkEmptyID(ctx context.Context, p *prober) error {
	entries, err := p.catalog(ctx)
	if err != nil {
		return err
	}
	body, err := p.client.getStatus(ctx, planetPath(""), http.StatusOK)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.hasID && e.id == "" {
			if !sameJSON(body, e.raw) {
				return eris.Wrapf(ErrMismatch, "empty id: got %s", body)
			}
			return nil
		}
	}
	return expectNotFound(body)
}

func checkSoftNotFound(ctx context.Context, p *prober) error {
	body, err := p.client.getStatus(ctx, planetPath(unknownPlanetID), http.StatusOK)
	if err != nil {
		return err
	}
	return expectNotFound(body)
}

func checkKeplerReport(ctx context.Context, p *prober) error {
	return expectReport(ctx, p, "kepler", 0.92, 0.88, 0.90)
}

func checkTESSReport(ctx context.Context, p *prober) error {
	return expectReport(ctx, p, "tess", 0.87, 0.90, 0.88)
}

func checkMissionValidation(ctx context.Context, p *prober) error {
	for _, q := range []string{"?mission=TESS", "?mission=mars", "?mission=", ""} {
		body, err := p.client.getStatus(ctx, "/ai_model"+q, http.StatusUnprocessableEntity)
		if err != nil {
			return err
		}
		var v struct {
			Detail []json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(body, &v); err != nil || len(v.Detail) == 0 {
			return eris.Wrapf(ErrMismatch, "ai_model%s: no validation detail in %s", q, body)
		}
	}
	return nil
}

// checkConcurrentReads issues Requests lookups from Workers goroutines and
// expects every answer to equal the sequential one.
func checkConcurrentReads(ctx context.Context, p *prober) error {
	entries, err := p.catalog(ctx)
	if err != nil {
		return err
	}
	ids := uniqueIDs(entries)
	if len(ids) == 0 || p.config.Requests <= 0 {
		return nil
	}

	var (
		mismatched int64
		failed     int64
		errOnce    sync.Once
		firstErr   error
	)

	jobs := make(chan expected, p.config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				body, err := p.client.getStatus(ctx, planetPath(e.id), http.StatusOK)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
					errOnce.Do(func() { firstErr = err })
				case !sameJSON(body, e.raw):
					atomic.AddInt64(&mismatched, 1)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < p.config.Requests; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- ids[i%len(ids)]:
			}
		}
	}()
	wg.Wait()

	if n := atomic.LoadInt64(&failed); n > 0 {
		return eris.Wrapf(firstErr, "%d of %d requests failed", n, p.config.Requests)
	}
	if n := atomic.LoadInt64(&mismatched); n > 0 {
		return eris.Wrapf(ErrMismatch, "%d of %d responses differ from the sequential answer", n, p.config.Requests)
	}
	return ctx.Err()
}

// entry is a listed record with its id, if any.
type entry struct {
	raw   json.RawMessage
	id    string
	hasID bool
}

// expected is the first listed record for an id.
type expected struct {
	id  string
	raw json.RawMessage
}

func (p *prober) catalog(ctx context.Context) ([]entry, error) {
	body, err := p.client.getStatus(ctx, "/exoplanets", http.StatusOK)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func decodeList(body []byte) ([]entry, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, eris.Wrapf(ErrMismatch, "listing is not a JSON array: %v", err)
	}
	out := make([]entry, len(raws))
	for i, raw := range raws {
		var pl model.Planet
		if err := json.Unmarshal(raw, &pl); err != nil {
			return nil, eris.Wrapf(ErrMismatch, "record %d: %v", i, err)
		}
		out[i] = entry{raw: raw, id: pl.IDValue(), hasID: pl.HasID()}
	}
	return out, nil
}

// uniqueIDs returns every id once, paired with its first listed record.
func uniqueIDs(entries []entry) []expected {
	seen := make(map[string]bool, len(entries))
	var out []expected
	for _, e := range entries {
		if !e.hasID || seen[e.id] {
			continue
		}
		seen[e.id] = true
		out = append(out, expected{id: e.id, raw: e.raw})
	}
	return out
}

func planetPath(id string) string {
	return "/exoplanets/" + url.PathEscape(id)
}

func sameJSON(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}

func expectNotFound(body []byte) error {
	var v map[string]any
	if err := json.Unmarshal(body, &v); err != nil || len(v) != 1 || v["error"] != "Not found" {
		return eris.Wrapf(ErrMismatch, "want not-found marker, got %s", body)
	}
	return nil
}

func expectReport(ctx context.Context, p *prober, mission string, precision, recall, f1 float64) error {
	body, err := p.client.getStatus(ctx, "/ai_model?mission="+mission, http.StatusOK)
	if err != nil {
		return err
	}
	var s model.PerformanceSummary
	if err := json.Unmarshal(body, &s); err != nil {
		return eris.Wrapf(ErrMismatch, "%s report: %v", mission, err)
	}
	switch {
	case s.Mission != mission:
		return eris.Wrapf(ErrMismatch, "mission %q, want %q", s.Mission, mission)
	case s.Precision != precision || s.Recall != recall || s.F1Score != f1:
		return eris.Wrapf(ErrMismatch, "%s metrics %v/%v/%v, want %v/%v/%v",
			mission, s.Precision, s.Recall, s.F1Score, precision, recall, f1)
	case len(s.ROC) == 0 || s.ROC[0] != (model.ROCPoint{}) || s.ROC[len(s.ROC)-1] != (model.ROCPoint{FPR: 1, TPR: 1}):
		return eris.Wrapf(ErrMismatch, "%s roc curve must run from (0,0) to (1,1)", mission)
	}
	return nil
}
