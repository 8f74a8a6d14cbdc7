package main

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		bind:           "0.0.0.0",
		port:           8080,
		sessionTimeout: time.Hour,
		triviaEndpoint: "https://opentdb.com/api.php",
		triviaTimeout:  10 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "port too low", mutate: func(c *Config) { c.port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.port = 65536 }, wantErr: true},
		{name: "cert without key", mutate: func(c *Config) { c.tlsCert = "cert.pem" }, wantErr: true},
		{name: "key without cert", mutate: func(c *Config) { c.tlsKey = "key.pem" }, wantErr: true},
		{name: "cert and key", mutate: func(c *Config) { c.tlsCert = "cert.pem"; c.tlsKey = "key.pem" }},
		{name: "empty trivia endpoint", mutate: func(c *Config) { c.triviaEndpoint = "" }, wantErr: true},
		{name: "relative trivia endpoint", mutate: func(c *Config) { c.triviaEndpoint = "/api.php" }, wantErr: true},
		{name: "zero trivia timeout", mutate: func(c *Config) { c.triviaTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	if got := cfg.scheme(); got != "http" {
		t.Fatalf("scheme() = %q, want http", got)
	}

	cfg.tlsCert = "cert.pem"
	cfg.tlsKey = "key.pem"
	if got := cfg.scheme(); got != "https" {
		t.Fatalf("scheme() = %q, want https", got)
	}
}
