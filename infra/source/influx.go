package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/kilianp07/energydash/core/dashboard"
)

// InfluxConfig configures the InfluxDB source.
type InfluxConfig struct {
	URL     string        `json:"url"`
	Token   string        `json:"token"`
	Org     string        `json:"org"`
	Bucket  string        `json:"bucket"`
	Days    int           `json:"days"`
	Timeout time.Duration `json:"timeout"`
}

func (c *InfluxConfig) setDefaults() {
	if c.Days <= 0 {
		c.Days = 30
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

const (
	hourLabel = "15:04"
	dayLabel  = "2006-01-02"
)

// series names one measurement and the fields read from it.
type series struct {
	measurement string
	fields      []string
}

var (
	powerSeries = series{"power", []string{"solar_power", "consumption"}}
	elecSeries  = series{"daily_elec", []string{"consumed", "returned", "generated"}}
	gasSeries   = series{"daily_gas", []string{"used"}}
	costSeries  = series{"daily_cost", []string{"prosument", "smart"}}
)

// Influx reads pre-aggregated measurements with Flux queries.
type Influx struct {
	cfg    InfluxConfig
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInflux returns an InfluxDB source.
func NewInflux(cfg InfluxConfig) (*Influx, error) {
	if cfg.URL == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influx source: url and bucket are required")
	}
	cfg.setDefaults()
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	return &Influx{cfg: cfg, client: client, query: client.QueryAPI(cfg.Org)}, nil
}

func (s *Influx) Name() string { return "influx" }

// Fetch loads the day's power curve and the daily totals of the last
// configured days, both ending on day.
func (s *Influx) Fetch(ctx context.Context, day time.Time) (dashboard.Data, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	stop := start.AddDate(0, 0, 1)
	from := start.AddDate(0, 0, -(s.cfg.Days - 1))

	var d dashboard.Data
	labels, cols, err := s.read(ctx, powerSeries, start, stop, hourLabel)
	if err != nil {
		return dashboard.Data{}, err
	}
	d.TodayTime, d.TodaySolarPower, d.TodayConsumption = labels, cols[0], cols[1]

	if labels, cols, err = s.read(ctx, elecSeries, from, stop, dayLabel); err != nil {
		return dashboard.Data{}, err
	}
	d.ElecTime, d.ElecConsumed, d.ElecReturned, d.ElecGenerated = labels, cols[0], cols[1], cols[2]

	if labels, cols, err = s.read(ctx, gasSeries, from, stop, dayLabel); err != nil {
		return dashboard.Data{}, err
	}
	d.GasTime, d.GasUsed = labels, cols[0]

	if labels, cols, err = s.read(ctx, costSeries, from, stop, dayLabel); err != nil {
		return dashboard.Data{}, err
	}
	d.CostTime, d.CostProsument, d.CostSmart = labels, cols[0], cols[1]
	return d, nil
}

// read returns one label per row and one column per field. Rows are pivoted
// on _time so every column has the label count.
func (s *Influx) read(ctx context.Context, ser series, from, to time.Time, layout string) ([]string, [][]float64, error) {
	res, err := s.query.Query(ctx, fluxQuery(s.cfg.Bucket, ser.measurement, from, to))
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", ser.measurement, err)
	}
	defer res.Close()

	labels := []string{}
	cols := make([][]float64, len(ser.fields))
	for i := range cols {
		cols[i] = []float64{}
	}
	for res.Next() {
		rec := res.Record()
		labels = append(labels, rec.Time().In(from.Location()).Format(layout))
		for i, f := range ser.fields {
			cols[i] = append(cols[i], toFloat(rec.ValueByKey(f)))
		}
	}
	if err := res.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", ser.measurement, err)
	}
	return labels, cols, nil
}

func fluxQuery(bucket, measurement string, from, to time.Time) string {
	return fmt.Sprintf(`from(bucket: %q)
  |> range(start: %s, stop: %s)
  |> filter(fn: (r) => r._measurement == %q)
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> group()
  |> sort(columns: ["_time"])`,
		bucket, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339), measurement)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}

func (s *Influx) Close() error {
	s.client.Close()
	return nil
}
