// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Planet is one catalog entry. Every field is optional: a nil pointer means
// the key is absent from the source record.
//
// Raw holds the record exactly as it was defined. MarshalJSON writes Raw
// back unchanged, so a Planet never gains, loses or rewrites a field on its
// way to the wire.
type Planet struct {
	ID              *string `json:"id,omitempty"`
	Mission         *string `json:"mission,omitempty"`
	Name            *string `json:"name,omitempty"`
	DiscoveryMethod *string `json:"discovery_method,omitempty"`
	DiscoveryYear   *Value  `json:"discovery_year,omitempty"`

	Radius        *Value `json:"radius,omitempty"`
	Mass          *Value `json:"mass,omitempty"`
	Distance      *Value `json:"distance,omitempty"`
	OrbitalPeriod *Value `json:"orbital_period,omitempty"`
	Temperature   *Value `json:"temperature,omitempty"`

	RadiusConfidence    *Value `json:"radius_confidence,omitempty"`
	MassConfidence      *Value `json:"mass_confidence,omitempty"`
	DistanceConfidence  *Value `json:"distance_confidence,omitempty"`
	DetectionConfidence *Value `json:"detection_confidence,omitempty"`

	HostStar       *string `json:"host_star,omitempty"`
	Description    *string `json:"description,omitempty"`
	GraphData      []Point `json:"graph_data,omitempty"`
	AIModelVersion *string `json:"ai_model_version,omitempty"`
	LastUpdated    *string `json:"last_updated,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Point is one sample of a light curve (brightness) or a radial velocity curve.
// Values are kept as written; a nil field is absent or was not a scalar.
type Point struct {
	Time       *Value `json:"time,omitempty"`
	Brightness *Value `json:"brightness,omitempty"`
	Velocity   *Value `json:"velocity,omitempty"`
}

// UnmarshalJSON decodes the keys it knows. Only a non-object point fails.
func (pt *Point) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*pt = Point{
		Time:       valueField(fields["time"]),
		Brightness: valueField(fields["brightness"]),
		Velocity:   valueField(fields["velocity"]),
	}
	return nil
}

// planetFields breaks the MarshalJSON recursion.
type planetFields Planet

// UnmarshalJSON keeps a private copy of data as Raw and decodes the typed
// view on a best-effort basis: a key whose value has an unexpected shape is
// left unset in the typed view but stays in Raw. Only a record that is not a
// JSON object fails.
func (p *Planet) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = Planet{
		ID:              stringField(fields["id"]),
		Mission:         stringField(fields["mission"]),
		Name:            stringField(fields["name"]),
		DiscoveryMethod: stringField(fields["discovery_method"]),
		DiscoveryYear:   valueField(fields["discovery_year"]),

		Radius:        valueField(fields["radius"]),
		Mass:          valueField(fields["mass"]),
		Distance:      valueField(fields["distance"]),
		OrbitalPeriod: valueField(fields["orbital_period"]),
		Temperature:   valueField(fields["temperature"]),

		RadiusConfidence:    valueField(fields["radius_confidence"]),
		MassConfidence:      valueField(fields["mass_confidence"]),
		DistanceConfidence:  valueField(fields["distance_confidence"]),
		DetectionConfidence: valueField(fields["detection_confidence"]),

		HostStar:       stringField(fields["host_star"]),
		Description:    stringField(fields["description"]),
		GraphData:      pointsField(fields["graph_data"]),
		AIModelVersion: stringField(fields["ai_model_version"]),
		LastUpdated:    stringField(fields["last_updated"]),

		Raw: append(json.RawMessage(nil), data...),
	}
	return nil
}

// stringField returns nil for an absent key, null, or a non-string value.
func stringField(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// valueField returns nil for an absent key, null, an array or an object.
func valueField(raw json.RawMessage) *Value {
	b := bytes.TrimSpace(raw)
	if isNull(b) || b[0] == '[' || b[0] == '{' {
		return nil
	}
	v := Value(append([]byte(nil), b...))
	return &v
}

// pointsField returns nil unless raw is an array. Elements that are not
// objects become zero points so positions still line up with Raw.
func pointsField(raw json.RawMessage) []Point {
	if isNull(raw) {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	points := make([]Point, len(elems))
	for i, e := range elems {
		_ = points[i].UnmarshalJSON(e)
	}
	return points
}

func isNull(raw []byte) bool {
	b := bytes.TrimSpace(raw)
	return len(b) == 0 || string(b) == "null"
}

// MarshalJSON returns Raw when the planet came from a source document and
// falls back to the typed view for planets built in code.
func (p Planet) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(planetFields(p))
}

// HasID reports whether the record carries an id key, empty or not.
func (p Planet) HasID() bool { return p.ID != nil }

// IDValue returns the id, or "" when the key is absent.
func (p Planet) IDValue() string {
	if p.ID == nil {
		return ""
	}
	return *p.ID
}

// MissionValue returns the mission exactly as stored, or "" when absent.
func (p Planet) MissionValue() string {
	if p.Mission == nil {
		return ""
	}
	return *p.Mission
}

// Value is a scalar field as written in the source data. The catalog holds
// numbers, empty strings and the occasional other string in numeric slots,
// so the literal is kept instead of being coerced.
type Value json.RawMessage

// UnmarshalJSON stores the literal.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

// MarshalJSON writes the literal back, or null for a zero Value.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// IsNumber reports whether the literal is a JSON number.
func (v Value) IsNumber() bool {
	b := bytes.TrimSpace(v)
	return len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9'))
}

// IsEmptyString reports whether the literal is "".
func (v Value) IsEmptyString() bool {
	return string(bytes.TrimSpace(v)) == `""`
}

// Float64 returns the numeric value and true when the literal is a number.
func (v Value) Float64() (float64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(v)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns the literal text.
func (v Value) String() string { return string(v) }
