package cmd

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/cache"
	"github.com/spigell/hh-advisor/internal/headhunter"
	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/recommend"
	"github.com/spigell/hh-advisor/internal/secrets"
	"github.com/spigell/hh-advisor/internal/server"
)

const (
	app = "hh-advisor"

	defaultCacheTTL   = 10 * time.Minute
	defaultCacheSweep = 5 * time.Minute
)

type Config struct {
	UserAgent string         `mapstructure:"user-agent"`
	TokenFile string         `mapstructure:"token-file"`
	Fetch     *FetchConfig   `mapstructure:"fetch"`
	Market    *market.Config `mapstructure:"market"`
	Server    *server.Config `mapstructure:"server"`
	Cache     *CacheConfig   `mapstructure:"cache"`
	AI        *AIConfig      `mapstructure:"ai"`
}

// FetchConfig tunes the upstream HTTP client.
type FetchConfig struct {
	// Timeout bounds one upstream call end to end.
	Timeout time.Duration `mapstructure:"timeout"`
	// Retries is the retry budget for transient upstream failures. A
	// pointer so an explicit 0 (no retries) is distinguishable from unset.
	Retries *int `mapstructure:"retries"`
}

type CacheConfig struct {
	TTL   time.Duration `mapstructure:"ttl"`
	Sweep time.Duration `mapstructure:"sweep"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-advisor analyzes a candidate profile against live hh.ru vacancy data",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetEnvPrefix("HH_ADVISOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-advisor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional. An explicitly requested or malformed one
	// still fails hard.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	return config, nil
}

// buildAdvisor wires the shared pipeline: vacancy cache, hh client, market
// aggregator and the tiered recommendation chain. The returned cache is
// already started; the caller owns Stop.
func buildAdvisor(ctx context.Context, logger *zap.Logger, config *Config) (*recommend.Chain, *cache.Cache, market.Config, error) {
	ttl, sweep := defaultCacheTTL, defaultCacheSweep
	if config.Cache != nil {
		if config.Cache.TTL > 0 {
			ttl = config.Cache.TTL
		}
		if config.Cache.Sweep > 0 {
			sweep = config.Cache.Sweep
		}
	}

	store := cache.New(ttl, sweep)
	store.Start()

	token, err := resolveToken(config)
	if err != nil {
		store.Stop()
		return nil, nil, market.Config{}, err
	}

	hh := headhunter.New(logger, token, store)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}
	applyFetchConfig(hh, config.Fetch)

	var marketCfg market.Config
	if config.Market != nil {
		marketCfg = *config.Market
	}
	aggregator := market.NewAggregator(hh, logger, marketCfg)

	tiers := make([]recommend.Recommender, 0, 3)
	if external := buildExternalTier(ctx, logger, config); external != nil {
		tiers = append(tiers, external)
	}
	tiers = append(tiers, recommend.NewLocal(aggregator), recommend.NewStatic())

	return recommend.NewChain(logger, tiers...), store, aggregator.Limits(), nil
}

// buildExternalTier returns nil when the AI tier is disabled or its key is
// absent; a configured but broken key is only logged since the chain can
// serve without it.
func buildExternalTier(ctx context.Context, logger *zap.Logger, config *Config) recommend.Recommender {
	if config.AI == nil || !config.AI.Enabled {
		return nil
	}

	gemini := config.AI.Gemini
	if gemini == nil {
		gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "gemini api key",
		Value: gemini.APIKey,
		File:  gemini.APIKeyFile,
	})
	if err != nil {
		logger.Warn("loading gemini api key, skipping the external tier", zap.Error(err))
		return nil
	}
	if apiKey == "" {
		logger.Info("gemini api key is not configured, skipping the external tier")
		return nil
	}

	generator, err := recommend.NewGenerator(ctx, apiKey, gemini.Model)
	if err != nil {
		logger.Warn("creating gemini generator, skipping the external tier", zap.Error(err))
		return nil
	}

	logger.Info("external tier enabled", zap.String("model", generator.Model()))
	return recommend.NewExternal(generator, logger)
}

// applyFetchConfig overrides the client's fetch timeout and retry budget
// when configured; unset fields keep the client defaults.
func applyFetchConfig(hh *headhunter.Client, fetch *FetchConfig) {
	if fetch == nil {
		return
	}

	if fetch.Timeout > 0 {
		hh.HTTPClient.Timeout = fetch.Timeout
	}
	if fetch.Retries != nil && *fetch.Retries >= 0 {
		hh.Retries = *fetch.Retries
	}
}

// resolveToken loads the optional hh.ru token. Vacancy search works
// anonymously, so a missing token file configuration is not an error.
func resolveToken(config *Config) (string, error) {
	tokenFile := config.TokenFile
	if tokenFile == "" {
		tokenFile = viper.GetString("token-file")
	}

	return secrets.LoadOptional(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
	})
}
