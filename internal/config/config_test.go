package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default values",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.App.Addr() != "0.0.0.0:8080" {
					t.Errorf("expected addr 0.0.0.0:8080, got %s", cfg.App.Addr())
				}
				if cfg.Notification.MaxAttempts != 5 {
					t.Errorf("expected 5 max attempts, got %d", cfg.Notification.MaxAttempts)
				}
				if cfg.Jobs.ReminderScanInterval != time.Minute {
					t.Errorf("expected 1m reminder scan, got %v", cfg.Jobs.ReminderScanInterval)
				}
				if len(cfg.Kafka.Brokers) != 0 {
					t.Errorf("expected no kafka brokers, got %v", cfg.Kafka.Brokers)
				}
				if cfg.App.IsProduction() {
					t.Errorf("expected development env by default")
				}
				if !cfg.Logger.Development {
					t.Errorf("expected development logging by default")
				}
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"APP_PORT":             "9000",
				"APP_ENV":              "Production",
				"NOTIFY_POLL_INTERVAL": "10",
				"NOTIFY_BASE_BACKOFF":  "2m",
				"KAFKA_BROKERS":        "kafka-1:9092, kafka-2:9092",
				"RATE_LIMIT_REQUESTS":  "10",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.App.Port != "9000" {
					t.Errorf("expected port 9000, got %s", cfg.App.Port)
				}
				if !cfg.App.IsProduction() {
					t.Errorf("expected production env")
				}
				if cfg.Logger.Development {
					t.Errorf("expected production logging for APP_ENV=Production")
				}
				if cfg.Notification.PollInterval != 10*time.Second {
					t.Errorf("expected 10s poll interval, got %v", cfg.Notification.PollInterval)
				}
				if cfg.Notification.BaseBackoff != 2*time.Minute {
					t.Errorf("expected 2m backoff, got %v", cfg.Notification.BaseBackoff)
				}
				if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
					t.Errorf("unexpected brokers %v", cfg.Kafka.Brokers)
				}
				if cfg.RateLimit.Requests != 10 {
					t.Errorf("expected 10 requests, got %d", cfg.RateLimit.Requests)
				}
			},
		},
		{
			name:    "invalid REDIS_DB",
			env:     map[string]string{"REDIS_DB": "abc"},
			wantErr: true,
		},
		{
			name:    "invalid digest hour",
			env:     map[string]string{"JOBS_DIGEST_HOUR": "24"},
			wantErr: true,
		},
		{
			name:    "invalid sampling ratio",
			env:     map[string]string{"OTEL_SAMPLING_RATIO": "1.5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := AppConfig{Timezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC fallback")
	}
}
