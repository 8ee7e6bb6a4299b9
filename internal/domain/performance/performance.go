// Package performance holds the mocked classifier reports served per mission.
//
// The numbers are placeholders until real evaluation results are wired in.
// Both reports are package-level values built at init and never modified;
// For hands out copies so callers cannot alter the table.
package performance

import (
	"regexp"

	"github.com/okian/exoplanets/internal/domain/model"
	"github.com/rotisserie/eris"
)

// Mission names an observational program with a published report.
type Mission string

// Known missions.
const (
	Kepler Mission = "kepler"
	TESS   Mission = "tess"
)

// MissionPattern is the exact, case-sensitive form a mission parameter must take.
const MissionPattern = `^(kepler|tess)$`

var missionRe = regexp.MustCompile(MissionPattern)

// Missions lists the supported missions in a stable order.
func Missions() []Mission { return []Mission{Kepler, TESS} }

// ParseMission validates s against MissionPattern.
func ParseMission(s string) (Mission, error) {
	if !missionRe.MatchString(s) {
		return "", eris.Wrapf(ErrInvalidMission, "mission %q", s)
	}
	return Mission(s), nil
}

var reports = map[Mission]model.PerformanceSummary{
	Kepler: {
		Mission:     string(Kepler),
		Precision:   0.92,
		Recall:      0.88,
		F1Score:     0.90,
		Performance: 0.91,
		ROC: []model.ROCPoint{
			{FPR: 0.0, TPR: 0.0},
			{FPR: 0.1, TPR: 0.75},
			{FPR: 0.2, TPR: 0.85},
			{FPR: 0.3, TPR: 0.92},
			{FPR: 1.0, TPR: 1.0},
		},
		PR: []model.PRPoint{
			{Recall: 0.0, Precision: 1.0},
			{Recall: 0.5, Precision: 0.85},
			{Recall: 0.7, Precision: 0.80},
			{Recall: 0.9, Precision: 0.70},
			{Recall: 1.0, Precision: 0.50},
		},
	},
	TESS: {
		Mission:     string(TESS),
		Precision:   0.87,
		Recall:      0.90,
		F1Score:     0.88,
		Performance: 0.89,
		ROC: []model.ROCPoint{
			{FPR: 0.0, TPR: 0.0},
			{FPR: 0.1, TPR: 0.70},
			{FPR: 0.2, TPR: 0.82},
			{FPR: 0.3, TPR: 0.90},
			{FPR: 1.0, TPR: 1.0},
		},
		PR: []model.PRPoint{
			{Recall: 0.0, Precision: 1.0},
			{Recall: 0.4, Precision: 0.80},
			{Recall: 0.6, Precision: 0.75},
			{Recall: 0.8, Precision: 0.65},
			{Recall: 1.0, Precision: 0.55},
		},
	},
}

// For returns the report for m. The second result is false for a mission
// that did not come from ParseMission and has no report.
func For(m Mission) (model.PerformanceSummary, bool) {
	r, ok := reports[m]
	if !ok {
		return model.PerformanceSummary{}, false
	}
	r.ROC = append([]model.ROCPoint(nil), r.ROC...)
	r.PR = append([]model.PRPoint(nil), r.PR...)
	return r, true
}
