package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coresource "github.com/kilianp07/energydash/core/source"
)

var day = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

const jsonSnapshot = `{
  "today_log_time": ["10:00", "11:00"],
  "today_log_solar_power": [1.5, 2.25],
  "today_log_consumption": [0.4, 0.6],
  "daily_log_gas_time": ["2024-03-09"],
  "daily_log_gas_used": [3.1]
}`

const yamlSnapshot = `
daily_log_cost_time: ["2024-03-08", "2024-03-09"]
daily_log_cost_prosument: [1.2, 1.4]
daily_log_cost_smart: [1.0, 1.1]
`

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFileJSONWithDate(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "2024-03-09.json", jsonSnapshot)

	src, err := NewFile(FileConfig{Path: filepath.Join(dir, "{date}.json")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-03-09.json"), src.Path(day))

	d, err := src.Fetch(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, d.TodayTime)
	assert.Equal(t, []float64{1.5, 2.25}, d.TodaySolarPower)
	assert.Equal(t, []float64{3.1}, d.GasUsed)
	assert.Nil(t, d.ElecTime)
}

func TestFileYAML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "snap.yaml", yamlSnapshot)

	src, err := NewFile(FileConfig{Path: filepath.Join(dir, "snap.yaml")})
	require.NoError(t, err)
	d, err := src.Fetch(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-08", "2024-03-09"}, d.CostTime)
	assert.Equal(t, []float64{1.0, 1.1}, d.CostSmart)
}

func TestFileExplicitFormat(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "snap.txt", yamlSnapshot)
	src, err := NewFile(FileConfig{Path: filepath.Join(dir, "snap.txt"), Format: "yaml"})
	require.NoError(t, err)
	d, err := src.Fetch(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, d.CostProsument, 2)
}

func TestFileErrors(t *testing.T) {
	_, err := NewFile(FileConfig{})
	assert.Error(t, err)
	_, err = NewFile(FileConfig{Path: "x", Format: "toml"})
	assert.Error(t, err)

	dir := t.TempDir()
	src, err := NewFile(FileConfig{Path: filepath.Join(dir, "{date}.json")})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), day)
	assert.ErrorIs(t, err, coresource.ErrNoData)

	write(t, dir, "2024-03-09.json", "{not json")
	_, err = src.Fetch(context.Background(), day)
	assert.ErrorContains(t, err, "decode")
}

func TestFileRegistered(t *testing.T) {
	src, err := coresource.New(factoryConfig("file", map[string]any{"path": "/tmp/{date}.json"}))
	require.NoError(t, err)
	assert.Equal(t, "file", src.Name())
}
