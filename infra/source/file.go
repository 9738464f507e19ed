package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/energydash/core/dashboard"
	coresource "github.com/kilianp07/energydash/core/source"
)

// FileConfig configures the file source.
type FileConfig struct {
	// Path may contain {date}, replaced with the requested day as YYYY-MM-DD.
	Path string `json:"path"`
	// Format is json or yaml. Empty means guess from the extension.
	Format string `json:"format"`
}

// File reads dashboard snapshots from disk.
type File struct {
	cfg FileConfig
}

// NewFile returns a file source.
func NewFile(cfg FileConfig) (*File, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file source: path is required")
	}
	switch strings.ToLower(cfg.Format) {
	case "", "json", "yaml", "yml":
	default:
		return nil, fmt.Errorf("file source: unsupported format %q", cfg.Format)
	}
	return &File{cfg: cfg}, nil
}

func (f *File) Name() string { return "file" }

// Path returns the snapshot path for day.
func (f *File) Path(day time.Time) string {
	return expandDate(f.cfg.Path, day)
}

// Fetch reads and decodes the snapshot for day.
func (f *File) Fetch(ctx context.Context, day time.Time) (dashboard.Data, error) {
	if err := ctx.Err(); err != nil {
		return dashboard.Data{}, err
	}
	path := f.Path(day)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dashboard.Data{}, fmt.Errorf("read %s: %w", path, coresource.ErrNoData)
		}
		return dashboard.Data{}, fmt.Errorf("read %s: %w", path, err)
	}
	format := strings.ToLower(f.cfg.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	d, err := DecodeSnapshot(raw, format)
	if err != nil {
		return dashboard.Data{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return d, nil
}

func (f *File) Close() error { return nil }

// DecodeSnapshot decodes a JSON or YAML snapshot. Unknown formats are decoded
// as JSON.
func DecodeSnapshot(raw []byte, format string) (dashboard.Data, error) {
	var d dashboard.Data
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return dashboard.Data{}, err
		}
	default:
		if err := gojson.Unmarshal(raw, &d); err != nil {
			return dashboard.Data{}, err
		}
	}
	return d, nil
}

func expandDate(tmpl string, day time.Time) string {
	if !strings.Contains(tmpl, "{date}") {
		return tmpl
	}
	return fasttemplate.ExecuteString(tmpl, "{", "}", map[string]interface{}{
		"date": coresource.DayKey(day),
	})
}
