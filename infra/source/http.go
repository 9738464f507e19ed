package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/ssgreg/repeat"

	"github.com/kilianp07/energydash/auth"
	"github.com/kilianp07/energydash/core/dashboard"
	"github.com/kilianp07/energydash/infra/logger"
)

// HTTPConfig configures the HTTP source.
type HTTPConfig struct {
	// URL may contain {date}.
	URL        string        `json:"url"`
	Timeout    time.Duration `json:"timeout"`
	MaxRetries int           `json:"max_retries"`
	Backoff    time.Duration `json:"backoff"`
	Auth       auth.Conf     `json:"auth"`
}

func (c *HTTPConfig) setDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.Backoff <= 0 {
		c.Backoff = 500 * time.Millisecond
	}
}

// StatusError is returned when the backend answers with a non-200 status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// HTTP fetches dashboard snapshots from a JSON backend.
type HTTP struct {
	cfg    HTTPConfig
	client *http.Client
	creds  *auth.ClientCred
	log    logger.Logger
}

// NewHTTP returns an HTTP source.
func NewHTTP(cfg HTTPConfig) (*HTTP, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("http source: url is required")
	}
	cfg.setDefaults()
	h := &HTTP{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.New("http_source"),
	}
	if cfg.Auth.Enabled() {
		h.creds = auth.NewClientCred(cfg.Auth)
	}
	return h, nil
}

func (h *HTTP) Name() string { return "http" }

// Fetch GETs the snapshot for day. Transport errors and 5xx answers are
// retried, other failures are returned at once.
func (h *HTTP) Fetch(ctx context.Context, day time.Time) (dashboard.Data, error) {
	url := expandDate(h.cfg.URL, day)
	var d dashboard.Data
	attempt := 0
	err := repeat.Repeat(
		repeat.Fn(func() error {
			attempt++
			var err error
			d, err = h.get(ctx, url)
			if err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var se *StatusError
			if errors.As(err, &se) && se.Code < http.StatusInternalServerError {
				if se.Code == http.StatusUnauthorized && h.creds != nil {
					h.creds.Invalidate()
				}
				return err
			}
			h.log.Warnf("fetch attempt %d failed: %v", attempt, err)
			return repeat.HintTemporary(err)
		}),
		repeat.StopOnSuccess(),
		// The counter starts at zero: MaxRetries yields MaxRetries+1 requests.
		repeat.LimitMaxTries(h.cfg.MaxRetries),
		repeat.WithDelay(repeat.FixedBackoff(h.cfg.Backoff).Set(), repeat.SetContext(ctx)),
	)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return dashboard.Data{}, fmt.Errorf("http source: %w", err)
	}
	return d, nil
}

func (h *HTTP) get(ctx context.Context, url string) (dashboard.Data, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dashboard.Data{}, err
	}
	req.Header.Set("Accept", "application/json")
	if h.creds != nil {
		if err := h.creds.SetAuthHeader(req); err != nil {
			return dashboard.Data{}, err
		}
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return dashboard.Data{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return dashboard.Data{}, &StatusError{URL: url, Code: resp.StatusCode}
	}
	var d dashboard.Data
	if err := gojson.NewDecoder(resp.Body).Decode(&d); err != nil {
		return dashboard.Data{}, fmt.Errorf("decode response: %w", err)
	}
	return d, nil
}

func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
