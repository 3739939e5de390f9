package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Measurement is one stored station reading.
type Measurement struct {
	ID          int64     `json:"id"`
	NodeID      string    `json:"node_id"`
	LocationID  string    `json:"location_id"`
	Type        string    `json:"type"`
	MeasuredAt  time.Time `json:"measured_at"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// MeasurementQuery holds filters for retrieving measurements. Zero values
// leave a filter off.
type MeasurementQuery struct {
	NodeID string
	Type   string
	Limit  int
	Since  *time.Time
	Until  *time.Time
}

const measurementColumns = `id, node_id, location_id, type, measured_at, temperature, humidity`

// FetchMeasurements returns measurements matching q, oldest first. With a
// limit and no lower bound the most recent rows are returned.
func (s *Store) FetchMeasurements(ctx context.Context, q MeasurementQuery) ([]Measurement, error) {
	args := []any{}
	clause := " WHERE TRUE"
	argPos := 1
	if q.NodeID != "" {
		clause += " AND node_id = $" + strconv.Itoa(argPos)
		args = append(args, q.NodeID)
		argPos++
	}
	if q.Type != "" {
		clause += " AND type = $" + strconv.Itoa(argPos)
		args = append(args, q.Type)
		argPos++
	}
	if q.Since != nil {
		clause += " AND measured_at >= $" + strconv.Itoa(argPos)
		args = append(args, *q.Since)
		argPos++
	}
	if q.Until != nil {
		clause += " AND measured_at <= $" + strconv.Itoa(argPos)
		args = append(args, *q.Until)
		argPos++
	}

	inner := "SELECT " + measurementColumns + " FROM weather.measurements" + clause
	if q.Limit > 0 {
		order := " ORDER BY measured_at"
		if q.Since == nil {
			order = " ORDER BY measured_at DESC"
		}
		inner += order + " LIMIT $" + strconv.Itoa(argPos)
		args = append(args, q.Limit)
	}
	sql := "SELECT " + measurementColumns + " FROM (" + inner + ") m ORDER BY measured_at, id"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMeasurements(rows)
}

// GetMeasurement returns the measurement with id, or nil if there is none.
func (s *Store) GetMeasurement(ctx context.Context, id int64) (*Measurement, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+measurementColumns+" FROM weather.measurements WHERE id = $1", id)

	var m Measurement
	err := row.Scan(&m.ID, &m.NodeID, &m.LocationID, &m.Type, &m.MeasuredAt, &m.Temperature, &m.Humidity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const latestPerNodeSQL = `
    SELECT DISTINCT ON (node_id) ` + measurementColumns + `
    FROM weather.measurements
    ORDER BY node_id, measured_at DESC
`

// LatestPerNode returns the most recent measurement of every node.
func (s *Store) LatestPerNode(ctx context.Context) ([]Measurement, error) {
	rows, err := s.pool.Query(ctx, latestPerNodeSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMeasurements(rows)
}

func scanMeasurements(rows pgx.Rows) ([]Measurement, error) {
	measurements := make([]Measurement, 0)
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(
			&m.ID,
			&m.NodeID,
			&m.LocationID,
			&m.Type,
			&m.MeasuredAt,
			&m.Temperature,
			&m.Humidity,
		); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}
