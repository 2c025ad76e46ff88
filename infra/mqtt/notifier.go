package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/rabwill/fieldops/core/model"
	"github.com/rabwill/fieldops/core/notify"
	"github.com/rabwill/fieldops/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT notifier.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	UseTLS      bool   `json:"use_tls"`
	CABundle    string `json:"ca_bundle"`
	TimeoutMS   int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "fieldops/dispatch"
	}
	if c.ClientID == "" {
		c.ClientID = "fieldops-notifier"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 5000
	}
}

// PahoNotifier publishes dispatch records to per-technician topics.
type PahoNotifier struct {
	cli     paho.Client
	prefix  string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// NewPahoNotifier connects to the MQTT broker.
func NewPahoNotifier(cfg Config) (*PahoNotifier, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt-notifier")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.CABundle != "" {
			ca, err := os.ReadFile(cfg.CABundle)
			if err != nil {
				return nil, fmt.Errorf("read ca bundle: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(ca) {
				return nil, fmt.Errorf("invalid ca bundle %s", cfg.CABundle)
			}
			tlsCfg.RootCAs = pool
		}
		opts.SetTLSConfig(tlsCfg)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoNotifier{
		cli:     cli,
		prefix:  cfg.TopicPrefix,
		qos:     cfg.QoS,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		log:     log,
	}, nil
}

// PublishDispatch sends the record to the technician's dispatch topic.
func (n *PahoNotifier) PublishDispatch(ctx context.Context, rec model.DispatchRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s", n.prefix, rec.TechnicianID)
	token := n.cli.Publish(topic, n.qos, false, payload)
	if !token.WaitTimeout(n.timeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (n *PahoNotifier) Close() error {
	n.cli.Disconnect(250)
	return nil
}

var _ notify.Notifier = (*PahoNotifier)(nil)
