package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/at-ishikawa/tango/internal/fetch"
	"github.com/at-ishikawa/tango/internal/review"
)

type Config struct {
	Storage     StorageConfig     `mapstructure:"storage"`
	Dictionary  DictionaryConfig  `mapstructure:"dictionary"`
	Translation TranslationConfig `mapstructure:"translation"`
	Fetch       fetch.Config      `mapstructure:"fetch"`
	Review      ReviewConfig      `mapstructure:"review"`
}

type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required,parentdir"`
}

type DictionaryConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

type TranslationConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"required,url"`
	LangPair      string `mapstructure:"lang_pair" validate:"required"`
	RetryAttempts uint   `mapstructure:"retry_attempts"`
}

type ReviewConfig struct {
	DeckSize  int              `mapstructure:"deck_size" validate:"min=1"`
	Intervals review.Intervals `mapstructure:"intervals"`
}

func dataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "tango")
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tango")
	}

	dataDir := dataDirectory()
	v.SetDefault("storage.path", filepath.Join(dataDir, "tango.db"))
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev")
	v.SetDefault("dictionary.cache_directory", filepath.Join(dataDir, "cache", "dictionary"))
	v.SetDefault("translation.base_url", "https://api.mymemory.translated.net")
	v.SetDefault("translation.lang_pair", "en|ja")
	v.SetDefault("translation.retry_attempts", 1)

	fetchDefaults := fetch.DefaultConfig()
	v.SetDefault("fetch.concurrency", fetchDefaults.Concurrency)
	v.SetDefault("fetch.timeout", fetchDefaults.Timeout)
	v.SetDefault("fetch.max_retries", fetchDefaults.MaxRetries)

	intervalDefaults := review.DefaultIntervals()
	v.SetDefault("review.deck_size", review.DefaultDeckSize)
	v.SetDefault("review.intervals.again", intervalDefaults.Again)
	v.SetDefault("review.intervals.hard", intervalDefaults.Hard)
	v.SetDefault("review.intervals.good", intervalDefaults.Good)
	v.SetDefault("review.intervals.easy", intervalDefaults.Easy)
	v.SetDefault("review.intervals.easy_mastered", intervalDefaults.EasyMastered)

	// The database path is the one setting tests and scripts override most,
	// so it stays bindable without a config file.
	if err := v.BindEnv("storage.path", "TANGO_DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind TANGO_DB_PATH environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
