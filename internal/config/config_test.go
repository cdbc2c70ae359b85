// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithBrokers(t *testing.T) {
	path := writeConfigFile(t, `
kafka:
  brokers: ["localhost:9092"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServiceName != "purchase-event-generator" {
		t.Errorf("service_name = %q", cfg.ServiceName)
	}
	if cfg.Kafka.Topic != "qts__purchase_events" {
		t.Errorf("kafka.topic = %q", cfg.Kafka.Topic)
	}
	if cfg.Generator.TotalEvents != 10000 {
		t.Errorf("generator.total_events = %d; want 10000", cfg.Generator.TotalEvents)
	}
	if cfg.Generator.MaxAccount != 10 {
		t.Errorf("generator.max_account = %d; want 10", cfg.Generator.MaxAccount)
	}
	if cfg.Generator.AmountMin != -2500 || cfg.Generator.AmountMax != -1 {
		t.Errorf("amount bounds = [%d,%d]", cfg.Generator.AmountMin, cfg.Generator.AmountMax)
	}
	if len(cfg.Generator.Retailers) != 6 {
		t.Errorf("retailers = %d; want 6", len(cfg.Generator.Retailers))
	}
	if cfg.Generator.MaxDelay != time.Second {
		t.Errorf("max_delay = %v; want 1s", cfg.Generator.MaxDelay)
	}
	if cfg.Kafka.Acks != "all" {
		t.Errorf("kafka.acks = %q; want all", cfg.Kafka.Acks)
	}
}

func TestLoad_NoBrokersFails(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error without kafka.brokers, got nil")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
kafka:
  brokers: ["k1:9092", "k2:9092"]
  topic: custom__events
generator:
  total_events: 42
  max_delay: 250ms
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "custom__events" {
		t.Errorf("topic = %q", cfg.Kafka.Topic)
	}
	if cfg.Generator.TotalEvents != 42 {
		t.Errorf("total_events = %d; want 42", cfg.Generator.TotalEvents)
	}
	if cfg.Generator.MaxDelay != 250*time.Millisecond {
		t.Errorf("max_delay = %v; want 250ms", cfg.Generator.MaxDelay)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q; want debug", cfg.Logging.Level)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad acks", `
kafka:
  brokers: ["k:9092"]
  acks: every
`},
		{"bad compression", `
kafka:
  brokers: ["k:9092"]
  compression: brotli
`},
		{"positive amounts", `
kafka:
  brokers: ["k:9092"]
generator:
  amount_min: 1
  amount_max: 100
`},
		{"zero events", `
kafka:
  brokers: ["k:9092"]
generator:
  total_events: 0
`},
		{"bad log level", `
kafka:
  brokers: ["k:9092"]
logging:
  level: verbose
`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeConfigFile(t, c.body)
			if _, err := Load(path); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}
