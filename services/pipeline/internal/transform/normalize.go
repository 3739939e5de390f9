package transform

import (
	"fmt"
	"math"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/models"
)

// KelvinOffset converts Kelvin to Celsius.
const KelvinOffset = 273.15

// KelvinToCelsius converts a Kelvin reading without rounding.
func KelvinToCelsius(kelvin float64) float64 {
	return kelvin - KelvinOffset
}

// Normalize converts feed samples into records, one per sample and in input
// order. The station offset is applied to every timestamp alike. A sample
// missing any measured field fails the whole batch.
func Normalize(station models.Station, samples []models.RawSample) ([]models.Record, error) {
	records := make([]models.Record, 0, len(samples))
	for i, s := range samples {
		switch {
		case s.Main == nil:
			return nil, fmt.Errorf("%w: data[%d].main", ErrMissingField, i)
		case s.Main.Temp == nil:
			return nil, fmt.Errorf("%w: data[%d].main.temp", ErrMissingField, i)
		case s.Main.Humidity == nil:
			return nil, fmt.Errorf("%w: data[%d].main.humidity", ErrMissingField, i)
		case s.Dt == nil:
			return nil, fmt.Errorf("%w: data[%d].dt", ErrMissingField, i)
		}

		measuredAt, ok := ShiftMillis(*s.Dt, station.OffsetSeconds)
		if !ok {
			return nil, fmt.Errorf("%w: data[%d].dt %d out of range with offset %d", ErrTypeMismatch, i, *s.Dt, station.OffsetSeconds)
		}

		records = append(records, models.Record{
			Temperature: KelvinToCelsius(*s.Main.Temp),
			Humidity:    *s.Main.Humidity / 100,
			MeasuredAt:  measuredAt,
			Type:        station.Type,
			NodeID:      station.NodeID,
			LocationID:  station.LocationID,
		})
	}
	return records, nil
}

// ShiftMillis returns (dt + offset) * 1000. ok is false when the result does
// not fit in an int64.
func ShiftMillis(dt, offset int64) (int64, bool) {
	sum := dt + offset
	if (offset > 0 && sum < dt) || (offset < 0 && sum > dt) {
		return 0, false
	}
	if sum > math.MaxInt64/1000 || sum < math.MinInt64/1000 {
		return 0, false
	}
	return sum * 1000, true
}
