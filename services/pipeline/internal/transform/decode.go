package transform

import (
	"encoding/json"
	"fmt"

	"github.com/02loveslollipop/station-backfill/internal/extjson"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/models"
)

// DecodeFeed parses a feed snapshot. Field presence is checked later by
// Normalize; here only syntax and JSON types are enforced.
func DecodeFeed(data []byte) ([]models.RawSample, error) {
	var feed struct {
		Data *[]models.RawSample `json:"data"`
	}
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, classifyDecodeError("feed", err)
	}
	if feed.Data == nil {
		return nil, fmt.Errorf("%w: feed: data", ErrMissingField)
	}
	return *feed.Data, nil
}

type recordJSON struct {
	Temperature *float64         `json:"temperature"`
	Humidity    *float64         `json:"humidity"`
	MeasuredAt  *int64           `json:"measuredAt"`
	Type        string           `json:"type"`
	NodeID      extjson.ObjectID `json:"nodeId"`
	LocationID  extjson.ObjectID `json:"locationId"`
}

// DecodeRecords parses a normalized-record file (a JSON array). Every
// element must carry temperature, humidity and measuredAt.
func DecodeRecords(data []byte) ([]models.Record, error) {
	var raw *[]recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, classifyDecodeError("records", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: records: top-level value is null, want an array", ErrMalformedInput)
	}

	out := make([]models.Record, 0, len(*raw))
	for i, r := range *raw {
		switch {
		case r.Temperature == nil:
			return nil, fmt.Errorf("%w: records[%d].temperature", ErrMissingField, i)
		case r.Humidity == nil:
			return nil, fmt.Errorf("%w: records[%d].humidity", ErrMissingField, i)
		case r.MeasuredAt == nil:
			return nil, fmt.Errorf("%w: records[%d].measuredAt", ErrMissingField, i)
		}
		out = append(out, models.Record{
			Temperature: *r.Temperature,
			Humidity:    *r.Humidity,
			MeasuredAt:  *r.MeasuredAt,
			Type:        r.Type,
			NodeID:      r.NodeID,
			LocationID:  r.LocationID,
		})
	}
	return out, nil
}

// documentJSON uses pointers so absent and null fields can be told apart
// from zeros.
type documentJSON struct {
	Temperature *extjson.Double   `json:"temperature"`
	Humidity    *extjson.Double   `json:"humidity"`
	MeasuredAt  *extjson.Date     `json:"measuredAt"`
	Type        string            `json:"type"`
	NodeID      *extjson.ObjectID `json:"nodeId"`
	LocationID  *extjson.ObjectID `json:"locationId"`
}

// DecodeDocuments parses a written Series back into uniform documents.
// Every element must carry both measurements, the timestamp and valid node
// and location ids.
func DecodeDocuments(data []byte) ([]models.Document, error) {
	var raw *[]documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, classifyDecodeError("documents", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: documents: top-level value is null, want an array", ErrMalformedInput)
	}

	docs := make([]models.Document, 0, len(*raw))
	for i, d := range *raw {
		switch {
		case d.Temperature == nil:
			return nil, fmt.Errorf("%w: documents[%d].temperature", ErrMissingField, i)
		case d.Humidity == nil:
			return nil, fmt.Errorf("%w: documents[%d].humidity", ErrMissingField, i)
		case d.MeasuredAt == nil:
			return nil, fmt.Errorf("%w: documents[%d].measuredAt", ErrMissingField, i)
		case d.NodeID == nil:
			return nil, fmt.Errorf("%w: documents[%d].nodeId", ErrMissingField, i)
		case d.LocationID == nil:
			return nil, fmt.Errorf("%w: documents[%d].locationId", ErrMissingField, i)
		}

		nodeID, err := extjson.ObjectIDFromHex(d.NodeID.Hex())
		if err != nil {
			return nil, fmt.Errorf("%w: documents[%d].nodeId: %v", ErrTypeMismatch, i, err)
		}
		locationID, err := extjson.ObjectIDFromHex(d.LocationID.Hex())
		if err != nil {
			return nil, fmt.Errorf("%w: documents[%d].locationId: %v", ErrTypeMismatch, i, err)
		}

		docs = append(docs, models.Document{
			Temperature: *d.Temperature,
			Humidity:    *d.Humidity,
			MeasuredAt:  *d.MeasuredAt,
			Type:        d.Type,
			NodeID:      nodeID,
			LocationID:  locationID,
		})
	}
	return docs, nil
}
