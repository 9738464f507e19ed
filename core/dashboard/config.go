package dashboard

import "fmt"

// ChartConfig overrides one chart of the table.
type ChartConfig struct {
	// Activate disables the chart when explicitly false.
	Activate *bool  `json:"activate"`
	Title    string `json:"title"`
}

// Config selects and titles the dashboard charts.
type Config struct {
	Title  string                 `json:"title"`
	Charts map[string]ChartConfig `json:"charts"`
}

// SetDefaults applies the default page title.
func (c *Config) SetDefaults() {
	if c.Title == "" {
		c.Title = "Energy dashboard"
	}
}

// Validate rejects overrides for charts that do not exist.
func (c Config) Validate() error {
	for key := range c.Charts {
		if _, ok := lookup(Definitions, key); !ok {
			return fmt.Errorf("unknown chart %q", key)
		}
	}
	return nil
}

func (c ChartConfig) active() bool { return c.Activate == nil || *c.Activate }

func lookup(defs []Definition, key string) (Definition, bool) {
	for _, d := range defs {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
