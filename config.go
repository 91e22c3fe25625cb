package mqttsn

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-io/mqttsn/packet"
	"gopkg.in/yaml.v3"
)

// Config is the client's file-based configuration, grounded on the
// examples' yaml.v3 + nested-section config.Config shape. It is entirely
// optional: every session and will field has a matching functional Option,
// and a client built directly with New(...Option) never needs one.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Will    WillConfig    `yaml:"will"`
	Debug   DebugConfig   `yaml:"debug"`
}

// SessionConfig holds the session-lifetime knobs spec.md §6 names as
// public client setters.
type SessionConfig struct {
	ClientID        string        `yaml:"client_id"`
	KeepAlive       time.Duration `yaml:"keep_alive"`
	ResponseTimeout time.Duration `yaml:"response_timeout"`
	SearchGwJitter  time.Duration `yaml:"search_gw_jitter"`
	RetryMax        int           `yaml:"retry_max"`
	QueueCapacity   int           `yaml:"queue_capacity"`
	QoS             int8          `yaml:"qos"`
	Retain          bool          `yaml:"retain"`
	Clean           bool          `yaml:"clean"`
}

// WillConfig holds the optional will topic/message pair.
type WillConfig struct {
	Topic   string `yaml:"topic"`
	Message string `yaml:"message"`
}

// DebugConfig holds settings for the optional Stat.Httpd()/Monitor debug
// surface. Options does not translate them, and nothing else in this
// package reads them.
type DebugConfig struct {
	Enabled  bool   `yaml:"enabled"`
	HTTPAddr string `yaml:"http_addr"`
	WSAddr   string `yaml:"ws_addr"`
}

// LoadConfig reads and parses a YAML configuration file, the way the
// examples' config.Load does.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Session.KeepAlive == 0 {
		c.Session.KeepAlive = DefaultKeepAlive
	}
	if c.Session.ResponseTimeout == 0 {
		c.Session.ResponseTimeout = DefaultResponseTimeout
	}
	if c.Session.SearchGwJitter == 0 {
		c.Session.SearchGwJitter = DefaultSearchGwJitter
	}
	if c.Session.RetryMax == 0 {
		c.Session.RetryMax = DefaultRetryMax
	}
	if c.Session.QueueCapacity == 0 {
		c.Session.QueueCapacity = DefaultQueueCapacity
	}
	if c.Debug.Enabled && c.Debug.HTTPAddr == "" {
		c.Debug.HTTPAddr = ":9090"
	}
}

// Validate checks the configuration for values the client cannot run
// with, grounded on the examples' Validate() style of named, wrapped
// errors for each section.
func (c *Config) Validate() error {
	switch packet.QoS(c.Session.QoS) {
	case packet.QoS0, packet.QoS1, packet.QoSMinus1:
	case packet.QoS2:
		return fmt.Errorf("qos: QoS 2 is not supported")
	default:
		return fmt.Errorf("qos: invalid value %d", c.Session.QoS)
	}
	if c.Session.RetryMax < 1 {
		return fmt.Errorf("session: retry_max must be >= 1")
	}
	if c.Session.QueueCapacity < 1 {
		return fmt.Errorf("session: queue_capacity must be >= 1")
	}
	if (c.Will.Topic == "") != (c.Will.Message == "") {
		return fmt.Errorf("will: topic and message must both be set, or both empty")
	}
	return nil
}

// Options translates a Config into the functional Option list New expects.
func (c *Config) Options(link Link) []Option {
	opts := []Option{
		WithLink(link),
		KeepAlive(c.Session.KeepAlive),
		ResponseTimeout(c.Session.ResponseTimeout),
		SearchGwJitter(c.Session.SearchGwJitter),
		RetryMax(c.Session.RetryMax),
		QueueCapacity(c.Session.QueueCapacity),
		SetQoS(packet.QoS(c.Session.QoS)),
		SetRetain(c.Session.Retain),
		SetClean(c.Session.Clean),
	}
	if c.Session.ClientID != "" {
		opts = append(opts, ClientID(c.Session.ClientID))
	}
	if c.Will.Topic != "" {
		opts = append(opts, SetWillTopic(c.Will.Topic), SetWillMessage(c.Will.Message))
	}
	return opts
}
