// Package export writes chart series as JSON or CSV tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/kilianp07/energydash/core/chart"
)

// Series is one exported dataset.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Table is the exported form of a chart.
type Table struct {
	Title  string   `json:"title"`
	Unit   string   `json:"unit"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// FromSpec extracts the labels and series of spec.
func FromSpec(spec chart.Spec) Table {
	t := Table{Title: spec.Title, Unit: spec.YAxis.Label, Labels: spec.Labels, Series: make([]Series, 0, len(spec.Datasets))}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	for _, ds := range spec.Datasets {
		vals := ds.Values
		if vals == nil {
			vals = []float64{}
		}
		t.Series = append(t.Series, Series{Label: ds.Label, Values: vals})
	}
	return t
}

// WriteJSON writes the chart table to w in JSON format.
func WriteJSON(w io.Writer, spec chart.Spec) error {
	return gojson.NewEncoder(w).Encode(FromSpec(spec))
}

// WriteCSV writes one row per label with one column per series. Every series
// must have one value per label.
func WriteCSV(w io.Writer, spec chart.Spec) error {
	t := FromSpec(spec)
	header := make([]string, 0, len(t.Series)+1)
	header = append(header, "label")
	for _, s := range t.Series {
		if len(s.Values) != len(t.Labels) {
			return fmt.Errorf("series %q has %d values for %d labels", s.Label, len(s.Values), len(t.Labels))
		}
		header = append(header, s.Label)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, label := range t.Labels {
		rec := make([]string, 0, len(header))
		rec = append(rec, label)
		for _, s := range t.Series {
			rec = append(rec, strconv.FormatFloat(s.Values[i], 'f', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
