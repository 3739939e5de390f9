package transform

import (
	"fmt"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/models"
)

// Point is one (x, y) sample of a piecewise-linear series.
type Point struct {
	X int64
	Y float64
}

// Linear evaluates the line through p0 and p1 at x. x outside [p0.X, p1.X]
// extrapolates. The slope is computed before scaling by (x - x0).
func Linear(p0, p1 Point, x int64) (float64, error) {
	if p1.X == p0.X {
		return 0, fmt.Errorf("%w: both points at %d", ErrDegenerateInterval, p0.X)
	}
	slope := (p1.Y - p0.Y) / float64(p1.X-p0.X)
	// The explicit conversion keeps the multiply from fusing with the add.
	return p0.Y + float64(float64(x-p0.X)*slope), nil
}

// Interpolate densifies records into a Series. For every adjacent pair it
// emits the first record followed by station.FillPoints synthesized points
// spaced station.Step apart from it. The final record of the input is never
// emitted. All output elements except the last are encoded.
func Interpolate(station models.Station, records []models.Record) (models.Series, error) {
	if len(records) < 2 {
		return models.Series{Encoded: []models.EncodedRecord{}}, nil
	}

	out := make([]models.Record, 0, (len(records)-1)*(station.FillPoints+1))
	for i := 0; i < len(records)-1; i++ {
		p0, p1 := records[i], records[i+1]
		out = append(out, p0)

		for j := 1; j <= station.FillPoints; j++ {
			at := p0.MeasuredAt + int64(j)*station.Step

			temperature, err := Linear(
				Point{X: p0.MeasuredAt, Y: p0.Temperature},
				Point{X: p1.MeasuredAt, Y: p1.Temperature},
				at,
			)
			if err != nil {
				return models.Series{}, fmt.Errorf("records[%d..%d] temperature: %w", i, i+1, err)
			}
			humidity, err := Linear(
				Point{X: p0.MeasuredAt, Y: p0.Humidity},
				Point{X: p1.MeasuredAt, Y: p1.Humidity},
				at,
			)
			if err != nil {
				return models.Series{}, fmt.Errorf("records[%d..%d] humidity: %w", i, i+1, err)
			}

			out = append(out, models.Record{
				Temperature:  temperature,
				Humidity:     humidity,
				MeasuredAt:   at,
				Type:         station.Type,
				NodeID:       station.NodeID,
				LocationID:   station.LocationID,
				Interpolated: true,
			})
		}
	}

	return EncodeSeries(out), nil
}

// EncodeSeries encodes every record except the last one, which is kept as is.
func EncodeSeries(records []models.Record) models.Series {
	if len(records) == 0 {
		return models.Series{Encoded: []models.EncodedRecord{}}
	}
	encoded := make([]models.EncodedRecord, 0, len(records)-1)
	for _, r := range records[:len(records)-1] {
		encoded = append(encoded, r.Encode())
	}
	tail := records[len(records)-1]
	return models.Series{Encoded: encoded, Tail: &tail}
}
