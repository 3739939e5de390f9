//go:build integration

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const fixtureSQL = `
CREATE SCHEMA weather;
CREATE TABLE weather.measurements (
    id BIGSERIAL PRIMARY KEY,
    node_id TEXT NOT NULL,
    location_id TEXT NOT NULL,
    type TEXT NOT NULL,
    measured_at TIMESTAMPTZ NOT NULL,
    temperature DOUBLE PRECISION NOT NULL,
    humidity DOUBLE PRECISION NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (node_id, type, measured_at)
);
INSERT INTO weather.measurements (node_id, location_id, type, measured_at, temperature, humidity) VALUES
    ('a', 'loc', 'hour', '2022-05-02T00:00:00Z', 10, 0.2),
    ('a', 'loc', 'hour', '2022-05-02T01:00:00Z', 11, 0.3),
    ('a', 'loc', 'hour', '2022-05-02T02:00:00Z', 12, 0.4),
    ('b', 'loc', 'hour', '2022-05-02T00:00:00Z', 5, 0.9);
`

func startStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "api",
				"POSTGRES_PASSWORD": "api",
				"POSTGRES_DB":       "api",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	store, err := New(ctx, fmt.Sprintf("postgres://api:api@%s:%s/api?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	_, err = store.pool.Exec(ctx, fixtureSQL)
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	store := startStore(t)
	ctx := context.Background()

	all, err := store.FetchMeasurements(ctx, MeasurementQuery{NodeID: "a"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	recent, err := store.FetchMeasurements(ctx, MeasurementQuery{NodeID: "a", Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 11.0, recent[0].Temperature)
	assert.Equal(t, 12.0, recent[1].Temperature)

	since := time.Date(2022, time.May, 2, 0, 0, 0, 0, time.UTC)
	first, err := store.FetchMeasurements(ctx, MeasurementQuery{NodeID: "a", Since: &since, Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 10.0, first[0].Temperature)

	m, err := store.GetMeasurement(ctx, recent[0].ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "a", m.NodeID)

	missing, err := store.GetMeasurement(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	latest, err := store.LatestPerNode(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 12.0, latest[0].Temperature)
	assert.Equal(t, 5.0, latest[1].Temperature)
}
