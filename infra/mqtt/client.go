// Package mqtt subscribes to the broker topic carrying dashboard snapshots.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/energydash/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker         string      `json:"broker"`
	ClientID       string      `json:"client_id"`
	Username       string      `json:"username"`
	Password       string      `json:"password"`
	Topic          string      `json:"topic"`
	QoS            byte        `json:"qos"`
	UseTLS         bool        `json:"use_tls"`
	ClientCert     string      `json:"client_cert"`
	ClientKey      string      `json:"client_key"`
	CABundle       string      `json:"ca_bundle"`
	ConnectTimeout int         `json:"connect_timeout_ms"`
	TLSConfig      *tls.Config `json:"-"`
}

// Validate checks the mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return errors.New("mqtt broker is required")
	}
	if c.Topic == "" {
		return errors.New("mqtt topic is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("invalid mqtt qos %d", c.QoS)
	}
	return nil
}

// Handler receives the payload of every message on the subscribed topic.
type Handler func(payload []byte)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Subscriber keeps a subscription to one topic alive across reconnects.
type Subscriber struct {
	cli     pahoClient
	topic   string
	qos     byte
	handler Handler
	log     logger.Logger

	mu         sync.Mutex
	subscribed bool
}

// NewSubscriber connects to the broker and subscribes to cfg.Topic. The
// subscription is renewed on every reconnect.
func NewSubscriber(cfg Config, h Handler) (*Subscriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.New("mqtt handler is required")
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	s := &Subscriber{topic: cfg.Topic, qos: cfg.QoS, handler: h, log: logger.New("mqtt_subscriber")}

	opts.OnConnect = func(c paho.Client) {
		s.log.Infof("MQTT connected, subscribing to %s", s.topic)
		s.subscribe(c)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		s.log.Errorf("connection lost: %v", err)
		s.mu.Lock()
		s.subscribed = false
		s.mu.Unlock()
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		s.log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	token := c.Connect()
	timeout := time.Duration(cfg.ConnectTimeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if !token.WaitTimeout(timeout) {
		c.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		c.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	s.cli = c
	return s, nil
}

func (s *Subscriber) subscribe(c pahoClient) {
	token := c.Subscribe(s.topic, s.qos, func(_ paho.Client, msg paho.Message) {
		s.handler(msg.Payload())
	})
	if token.Wait() && token.Error() != nil {
		s.log.Errorf("subscribe error: %v", token.Error())
		return
	}
	s.mu.Lock()
	s.subscribed = true
	s.mu.Unlock()
}

// Subscribed reports whether the topic subscription is currently active.
func (s *Subscriber) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribed
}

// NewClientOptions builds mqtt client options from Config. An empty client id
// gets a random one.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "energydash-" + uuid.NewString()
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(clientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
// Without a client certificate only the CA bundle is used.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.CABundle != "" {
		caBytes, err := os.ReadFile(c.CABundle)
		if err != nil {
			return nil, fmt.Errorf("read ca: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caBytes) {
			return nil, fmt.Errorf("no certificates in %s", c.CABundle)
		}
		cfg.RootCAs = pool
	}
	if c.ClientCert != "" || c.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load cert: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

// Close gracefully closes the MQTT connection.
func (s *Subscriber) Close() {
	if s.cli != nil && s.cli.IsConnected() {
		s.cli.Disconnect(250)
	}
}
