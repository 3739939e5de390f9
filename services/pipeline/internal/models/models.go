package models

import (
	"encoding/json"

	"github.com/02loveslollipop/station-backfill/internal/extjson"
)

// RawSample is a single observation from the external feed. Pointer fields
// distinguish absent values from zeros.
type RawSample struct {
	Main *RawMain `json:"main"`
	Dt   *int64   `json:"dt"`
}

// RawMain holds the measured quantities of a RawSample.
type RawMain struct {
	Temp     *float64 `json:"temp"`     // Kelvin
	Humidity *float64 `json:"humidity"` // percent, 0-100
}

// Record is a normalized measurement: Celsius, humidity fraction and a
// shifted millisecond timestamp.
type Record struct {
	Temperature float64
	Humidity    float64
	MeasuredAt  int64
	Type        string
	NodeID      extjson.ObjectID
	LocationID  extjson.ObjectID

	// Interpolated marks points synthesized between two observations.
	Interpolated bool
}

type observedRecordJSON struct {
	Temperature extjson.Float    `json:"temperature"`
	Humidity    extjson.Float    `json:"humidity"`
	MeasuredAt  int64            `json:"measuredAt"`
	Type        string           `json:"type"`
	NodeID      extjson.ObjectID `json:"nodeId"`
	LocationID  extjson.ObjectID `json:"locationId"`
}

// Synthesized points list measuredAt first; files written by earlier runs
// use this key order.
type interpolatedRecordJSON struct {
	MeasuredAt  int64            `json:"measuredAt"`
	Temperature extjson.Float    `json:"temperature"`
	Humidity    extjson.Float    `json:"humidity"`
	Type        string           `json:"type"`
	NodeID      extjson.ObjectID `json:"nodeId"`
	LocationID  extjson.ObjectID `json:"locationId"`
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Interpolated {
		return json.Marshal(interpolatedRecordJSON{
			MeasuredAt:  r.MeasuredAt,
			Temperature: extjson.Float(r.Temperature),
			Humidity:    extjson.Float(r.Humidity),
			Type:        r.Type,
			NodeID:      r.NodeID,
			LocationID:  r.LocationID,
		})
	}
	return json.Marshal(observedRecordJSON{
		Temperature: extjson.Float(r.Temperature),
		Humidity:    extjson.Float(r.Humidity),
		MeasuredAt:  r.MeasuredAt,
		Type:        r.Type,
		NodeID:      r.NodeID,
		LocationID:  r.LocationID,
	})
}

// Encode wraps the numeric fields of r in typed-literal envelopes.
func (r Record) Encode() EncodedRecord {
	return EncodedRecord{
		Temperature:  extjson.Double(r.Temperature),
		Humidity:     extjson.Double(r.Humidity),
		MeasuredAt:   extjson.Date(r.MeasuredAt),
		Type:         r.Type,
		NodeID:       r.NodeID,
		LocationID:   r.LocationID,
		Interpolated: r.Interpolated,
	}
}

// EncodedRecord is a Record whose numbers are carried in typed-literal
// envelopes for the document store importer.
type EncodedRecord struct {
	Temperature  extjson.Double
	Humidity     extjson.Double
	MeasuredAt   extjson.Date
	Type         string
	NodeID       extjson.ObjectID
	LocationID   extjson.ObjectID
	Interpolated bool
}

type observedEncodedJSON struct {
	Temperature extjson.Double   `json:"temperature"`
	Humidity    extjson.Double   `json:"humidity"`
	MeasuredAt  extjson.Date     `json:"measuredAt"`
	Type        string           `json:"type"`
	NodeID      extjson.ObjectID `json:"nodeId"`
	LocationID  extjson.ObjectID `json:"locationId"`
}

type interpolatedEncodedJSON struct {
	MeasuredAt  extjson.Date     `json:"measuredAt"`
	Temperature extjson.Double   `json:"temperature"`
	Humidity    extjson.Double   `json:"humidity"`
	Type        string           `json:"type"`
	NodeID      extjson.ObjectID `json:"nodeId"`
	LocationID  extjson.ObjectID `json:"locationId"`
}

// MarshalJSON implements json.Marshaler.
func (e EncodedRecord) MarshalJSON() ([]byte, error) {
	if e.Interpolated {
		return json.Marshal(interpolatedEncodedJSON{
			MeasuredAt:  e.MeasuredAt,
			Temperature: e.Temperature,
			Humidity:    e.Humidity,
			Type:        e.Type,
			NodeID:      e.NodeID,
			LocationID:  e.LocationID,
		})
	}
	return json.Marshal(observedEncodedJSON{
		Temperature: e.Temperature,
		Humidity:    e.Humidity,
		MeasuredAt:  e.MeasuredAt,
		Type:        e.Type,
		NodeID:      e.NodeID,
		LocationID:  e.LocationID,
	})
}

// Series is the interpolator output: every element but the last is encoded,
// the last one keeps bare numbers. An empty Series has a nil Tail.
type Series struct {
	Encoded []EncodedRecord
	Tail    *Record
}

// Len returns the number of elements written for s.
func (s Series) Len() int {
	if s.Tail == nil {
		return len(s.Encoded)
	}
	return len(s.Encoded) + 1
}

// MarshalJSON writes s as one flat JSON array.
func (s Series) MarshalJSON() ([]byte, error) {
	elems := make([]any, 0, s.Len())
	for _, e := range s.Encoded {
		elems = append(elems, e)
	}
	if s.Tail != nil {
		elems = append(elems, *s.Tail)
	}
	return json.Marshal(elems)
}

// Document is one element of a written Series as read back by the loader.
// Each numeric field accepts either its envelope or a bare number, so encoded
// and tail elements decode alike.
type Document struct {
	Temperature extjson.Double   `json:"temperature"`
	Humidity    extjson.Double   `json:"humidity"`
	MeasuredAt  extjson.Date     `json:"measuredAt"`
	Type        string           `json:"type"`
	NodeID      extjson.ObjectID `json:"nodeId"`
	LocationID  extjson.ObjectID `json:"locationId"`
}

// Station carries the per-run constants stamped onto every record.
type Station struct {
	NodeID     extjson.ObjectID
	LocationID extjson.ObjectID
	Type       string

	// OffsetSeconds is added to every feed timestamp before it is converted
	// to milliseconds.
	OffsetSeconds int64

	// Step is the spacing of synthesized points after each observation, in
	// milliseconds, and FillPoints how many are synthesized per gap.
	Step       int64
	FillPoints int
}
