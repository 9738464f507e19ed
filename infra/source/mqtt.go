package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/kilianp07/energydash/core/dashboard"
	coresource "github.com/kilianp07/energydash/core/source"
	"github.com/kilianp07/energydash/infra/logger"
	"github.com/kilianp07/energydash/infra/mqtt"
	"github.com/kilianp07/energydash/internal/eventbus"
)

// MQTT keeps the latest snapshot published on a broker topic.
type MQTT struct {
	sub *mqtt.Subscriber
	bus *eventbus.TypedBus[time.Time]
	log logger.Logger
	now func() time.Time

	mu       sync.RWMutex
	latest   dashboard.Data
	received time.Time
}

// NewMQTT connects to the broker and starts listening for snapshots.
func NewMQTT(cfg mqtt.Config) (*MQTT, error) {
	m := newMQTT()
	sub, err := mqtt.NewSubscriber(cfg, m.handle)
	if err != nil {
		return nil, fmt.Errorf("mqtt source: %w", err)
	}
	m.sub = sub
	return m, nil
}

func newMQTT() *MQTT {
	return &MQTT{
		bus: eventbus.NewTyped[time.Time](1),
		log: logger.New("mqtt_source"),
		now: time.Now,
	}
}

func (m *MQTT) Name() string { return "mqtt" }

func (m *MQTT) handle(payload []byte) {
	var d dashboard.Data
	if err := gojson.Unmarshal(payload, &d); err != nil {
		m.log.Warnf("dropping invalid snapshot: %v", err)
		return
	}
	at := m.now()
	m.mu.Lock()
	m.latest, m.received = d, at
	m.mu.Unlock()
	m.log.Debugw("snapshot received", map[string]any{"bytes": len(payload)})
	m.bus.Publish(at)
}

// Fetch returns the latest snapshot whatever the day. It fails with
// ErrNoData until the first snapshot arrives.
func (m *MQTT) Fetch(ctx context.Context, _ time.Time) (dashboard.Data, error) {
	if err := ctx.Err(); err != nil {
		return dashboard.Data{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.received.IsZero() {
		return dashboard.Data{}, coresource.ErrNoData
	}
	return m.latest, nil
}

// Updates announces the arrival time of every accepted snapshot.
func (m *MQTT) Updates() <-chan time.Time { return m.bus.Subscribe() }

func (m *MQTT) Close() error {
	if m.sub != nil {
		m.sub.Close()
	}
	m.bus.Close()
	return nil
}
