package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/headhunter"
)

func TestConfigUnmarshalFetchSettings(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	payload := `
fetch:
  timeout: 5s
  retries: 0
market:
  concurrency: 4
`
	if err := v.ReadConfig(strings.NewReader(payload)); err != nil {
		t.Fatalf("reading config: %v", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		t.Fatalf("unmarshalling config: %v", err)
	}

	if config.Fetch == nil {
		t.Fatal("expected fetch config to be decoded")
	}
	if config.Fetch.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", config.Fetch.Timeout)
	}
	if config.Fetch.Retries == nil || *config.Fetch.Retries != 0 {
		t.Fatalf("expected an explicit 0 retries, got %v", config.Fetch.Retries)
	}
	if config.Market == nil || config.Market.Concurrency != 4 {
		t.Fatalf("expected market concurrency 4, got %+v", config.Market)
	}
}

func TestApplyFetchConfig(t *testing.T) {
	hh := headhunter.New(zap.NewNop(), "", nil)
	defaultTimeout := hh.HTTPClient.Timeout
	defaultRetries := hh.Retries

	// Unset config keeps the client defaults.
	applyFetchConfig(hh, nil)
	applyFetchConfig(hh, &FetchConfig{})
	if hh.HTTPClient.Timeout != defaultTimeout || hh.Retries != defaultRetries {
		t.Fatalf("defaults must survive an empty fetch config, got timeout %v retries %d",
			hh.HTTPClient.Timeout, hh.Retries)
	}

	retries := 0
	applyFetchConfig(hh, &FetchConfig{Timeout: 3 * time.Second, Retries: &retries})
	if hh.HTTPClient.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", hh.HTTPClient.Timeout)
	}
	if hh.Retries != 0 {
		t.Fatalf("expected retries disabled, got %d", hh.Retries)
	}
}
