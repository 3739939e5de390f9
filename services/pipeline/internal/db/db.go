package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/models"
)

//go:embed sql/schema.sql
var schemaSQL string

// EnsureSchema creates the measurements table and its indexes if missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// MeasuredAt converts a document timestamp to UTC time.
func MeasuredAt(doc models.Document) time.Time {
	return time.UnixMilli(int64(doc.MeasuredAt)).UTC()
}

// UpsertMeasurements writes documents to weather.measurements in one batch.
// A document for an existing (node, type, instant) replaces its values.
func UpsertMeasurements(ctx context.Context, pool *pgxpool.Pool, docs []models.Document) error {
	if len(docs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO weather.measurements (node_id, location_id, type, measured_at, temperature, humidity, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
ON CONFLICT (node_id, type, measured_at) DO UPDATE
SET location_id = EXCLUDED.location_id,
    temperature = EXCLUDED.temperature,
    humidity = EXCLUDED.humidity,
    updated_at = NOW()`

	for _, d := range docs {
		batch.Queue(query, d.NodeID.Hex(), d.LocationID.Hex(), d.Type, MeasuredAt(d), float64(d.Temperature), float64(d.Humidity))
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for i := range docs {
		if _, err := res.Exec(); err != nil {
			return fmt.Errorf("upsert documents[%d]: %w", i, err)
		}
	}

	return nil
}

// CountMeasurements returns how many rows are stored for nodeID.
func CountMeasurements(ctx context.Context, pool *pgxpool.Pool, nodeID string) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM weather.measurements WHERE node_id = $1`, nodeID).Scan(&n)
	return n, err
}
