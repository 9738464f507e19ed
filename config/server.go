package config

import (
	"fmt"
	"time"
)

// Chart libraries the server can render with.
const (
	LibraryECharts = "echarts"
	LibraryChartJS = "chartjs"
)

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Addr string `json:"addr"`
	// APIToken, when set, is required as a bearer token on /api/ routes.
	APIToken string `json:"api_token"`
	// Timezone is the IANA zone used to resolve "today".
	Timezone string `json:"timezone"`
	Library  string `json:"library"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Library == "" {
		c.Library = LibraryECharts
	}
}

// Validate checks the library name and time zone.
func (c ServerConfig) Validate() error {
	if c.Library != LibraryECharts && c.Library != LibraryChartJS {
		return fmt.Errorf("unknown library %q", c.Library)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c ServerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
