// Package e2e holds container backed tests of the data sources.
package e2e

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// InfluxClient writes fixture measurements into a running InfluxDB v2
// instance in the layout the influx source reads.
type InfluxClient struct {
	client influxdb2.Client
	write  api.WriteAPIBlocking
}

// NewInfluxClient creates a new client for the given parameters. It assumes
// the server is already running and reachable.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{client: c, write: c.WriteAPIBlocking(org, bucket)}
}

// Row is one timestamped set of fields of a measurement.
type Row struct {
	Time   time.Time
	Fields map[string]interface{}
}

// WriteRows writes rows to measurement in one batch.
func (c *InfluxClient) WriteRows(ctx context.Context, measurement string, rows ...Row) error {
	points := make([]*write.Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, influxdb2.NewPoint(measurement, nil, r.Fields, r.Time))
	}
	return c.write.WritePoint(ctx, points...)
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
