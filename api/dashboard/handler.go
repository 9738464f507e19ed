// Package dashboard serves the energy dashboard page and its chart API.
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gojson "github.com/goccy/go-json"

	coredash "github.com/kilianp07/energydash/core/dashboard"
	"github.com/kilianp07/energydash/core/logger"
	"github.com/kilianp07/energydash/core/metrics"
	"github.com/kilianp07/energydash/core/monitoring"
	"github.com/kilianp07/energydash/core/render"
	"github.com/kilianp07/energydash/core/source"
	"github.com/kilianp07/energydash/pkg/export"
)

// Options configures a Server.
type Options struct {
	Dashboard *coredash.Dashboard
	Frontend  Frontend
	Source    source.Source
	Sink      metrics.RenderSink
	Location  *time.Location
	// APIToken protects the /api/ routes when set.
	APIToken string
	Logger   logger.Logger
	Now      func() time.Time
}

// Server renders the dashboard for a requested day.
type Server struct {
	dash  *coredash.Dashboard
	front Frontend
	src   source.Source
	sink  metrics.RenderSink
	loc   *time.Location
	token string
	log   logger.Logger
	now   func() time.Time
}

// NewServer validates opts and returns the server.
func NewServer(opts Options) (*Server, error) {
	if opts.Dashboard == nil || opts.Frontend == nil || opts.Source == nil {
		return nil, errors.New("dashboard, frontend and source are required")
	}
	s := &Server{
		dash:  opts.Dashboard,
		front: opts.Frontend,
		src:   opts.Source,
		sink:  opts.Sink,
		loc:   opts.Location,
		token: opts.APIToken,
		log:   logger.OrNop(opts.Logger),
		now:   opts.Now,
	}
	if s.sink == nil {
		s.sink = metrics.NopSink{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Handler returns the routes of the dashboard.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/charts/{key}", s.handleChart)
	api.HandleFunc("GET /api/charts/{key}/export", s.handleExport)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/api/", RequireToken(s.token, api))
	return mux
}

func (s *Server) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// day resolves the date query parameter, defaulting to today.
func (s *Server) day(r *http.Request) (time.Time, error) {
	q := r.URL.Query().Get("date")
	if q == "" {
		return s.today(), nil
	}
	d, err := time.ParseInLocation(dateLayout, q, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", q)
	}
	return d, nil
}

// fetch loads the data of day and records the outcome.
func (s *Server) fetch(ctx context.Context, day time.Time) (coredash.Data, error) {
	start := time.Now()
	data, err := s.src.Fetch(ctx, day)
	ev := metrics.FetchEvent{Source: s.src.Name(), Outcome: metrics.OutcomeOK, Duration: time.Since(start), Time: start}
	if err != nil {
		ev.Outcome = metrics.OutcomeError
		s.log.Errorf("fetch %s for %s: %v", s.src.Name(), day.Format(dateLayout), err)
		if !errors.Is(err, source.ErrNoData) {
			monitoring.CaptureException(err, map[string]string{"source": s.src.Name()})
		}
	}
	if rerr := metrics.RecordFetch(s.sink, ev); rerr != nil {
		s.log.Warnf("record fetch: %v", rerr)
	}
	return data, err
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	day, err := s.day(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var panels []coredash.Panel
	data, err := s.fetch(r.Context(), day)
	if err != nil {
		panels = s.dash.Failed(err)
	} else {
		panels = s.dash.Render(s.dash.NewPage(), data)
	}
	view := NewPageView(s.dash.Title(), s.front, NewNav(day, s.today()), panels)

	var buf bytes.Buffer
	if err := WritePage(&buf, view); err != nil {
		s.log.Errorf("write page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type chartResponse struct {
	ID          string            `json:"id"`
	Key         string            `json:"key"`
	Placeholder string            `json:"placeholder"`
	Title       string            `json:"title"`
	Kind        string            `json:"kind"`
	Library     string            `json:"library"`
	Date        string            `json:"date"`
	Config      gojson.RawMessage `json:"config"`
}

// resolve finds the chart and fetches its data, writing the error response
// itself when it fails.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (coredash.Definition, time.Time, coredash.Data, bool) {
	key := r.PathValue("key")
	def, ok := s.dash.Lookup(key)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown chart %q", key), http.StatusNotFound)
		return def, time.Time{}, coredash.Data{}, false
	}
	day, err := s.day(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return def, day, coredash.Data{}, false
	}
	data, err := s.fetch(r.Context(), day)
	if err != nil {
		http.Error(w, fmt.Sprintf("Unable to get data for %s: %v", def.Title, err), http.StatusBadGateway)
		return def, day, data, false
	}
	return def, day, data, true
}

func renderStatus(err error) int {
	var shape *render.DataShapeError
	if errors.As(err, &shape) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	def, day, data, ok := s.resolve(w, r)
	if !ok {
		return
	}
	rc, err := s.dash.RenderChart(def.Key, data)
	if err != nil {
		http.Error(w, err.Error(), renderStatus(err))
		return
	}
	cfg, err := rc.Chart.Config()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := chartResponse{
		ID:          rc.ID,
		Key:         def.Key,
		Placeholder: rc.Placeholder,
		Title:       rc.Title,
		Kind:        rc.Kind.String(),
		Library:     s.front.Name(),
		Date:        day.Format(dateLayout),
		Config:      cfg,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := gojson.NewEncoder(w).Encode(resp); err != nil {
		s.log.Errorf("encode chart %s: %v", def.Key, err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}
	def, day, data, ok := s.resolve(w, r)
	if !ok {
		return
	}
	spec := coredash.Build(def, data)
	if err := render.Validate(def.Placeholder, spec); err != nil {
		http.Error(w, err.Error(), renderStatus(err))
		return
	}

	var buf bytes.Buffer
	var err error
	if format == "csv" {
		err = export.WriteCSV(&buf, spec)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		err = export.WriteJSON(&buf, spec)
		w.Header().Set("Content-Type", "application/json")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.%s"`, def.Key, day.Format(dateLayout), format))
	_, _ = w.Write(buf.Bytes())
}
