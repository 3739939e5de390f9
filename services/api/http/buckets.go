package http

import (
	"fmt"
	"time"

	"github.com/02loveslollipop/station-backfill/services/api/db"
)

// maxBuckets bounds a single bucket request.
const maxBuckets = 10000

// Bucket is one slot of a station time series.
type Bucket struct {
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// bucketStarts lists every bucket of granularity between from and to,
// inclusive. The first bucket starts at from truncated to its granularity
// in UTC.
func bucketStarts(granularity string, from, to time.Time) ([]time.Time, error) {
	from, to = from.UTC(), to.UTC()

	var start time.Time
	var next func(time.Time) time.Time
	switch granularity {
	case "hour":
		start = from.Truncate(time.Hour)
		next = func(t time.Time) time.Time { return t.Add(time.Hour) }
	case "day":
		start = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case "month":
		start = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	case "year":
		start = time.Date(from.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		next = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
	default:
		return nil, fmt.Errorf("unsupported bucket type %q (allowed: hour, day, month, year)", granularity)
	}

	starts := make([]time.Time, 0)
	for t := start; !t.After(to); t = next(t) {
		if len(starts) == maxBuckets {
			return nil, fmt.Errorf("range spans more than %d %s buckets", maxBuckets, granularity)
		}
		starts = append(starts, t)
	}
	return starts, nil
}

// fillBuckets pairs each bucket with the measurement taken exactly at its
// start. Buckets without one are zero-filled.
func fillBuckets(starts []time.Time, measurements []db.Measurement) []Bucket {
	byInstant := make(map[int64]db.Measurement, len(measurements))
	for _, m := range measurements {
		byInstant[m.MeasuredAt.UnixMilli()] = m
	}

	buckets := make([]Bucket, 0, len(starts))
	for _, t := range starts {
		b := Bucket{Date: t}
		if m, ok := byInstant[t.UnixMilli()]; ok {
			b.Temperature = m.Temperature
			b.Humidity = m.Humidity
		}
		buckets = append(buckets, b)
	}
	return buckets
}
