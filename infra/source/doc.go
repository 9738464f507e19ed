// Package source implements the dashboard data sources: snapshot files, an
// HTTP backend, InfluxDB and MQTT. Each source registers itself in the core
// source registry under its type name.
package source
