package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Gridio    GridioConfig    `yaml:"gridio"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Frequency FrequencyConfig `yaml:"frequency"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type GridioConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type FetcherConfig struct {
	Timeout        time.Duration        `yaml:"timeout"`
	UserAgent      string               `yaml:"user_agent"`
	RateLimit      RateLimitConfig      `yaml:"rate_limit"`
	ConnectionPool ConnectionPoolConfig `yaml:"connection_pool"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	BurstSize         int `yaml:"burst_size"`
}

type ConnectionPoolConfig struct {
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

type SourceConfig struct {
	Esett EsettSourceConfig `yaml:"esett"`
	Svk   SvkSourceConfig   `yaml:"svk"`
}

type EsettSourceConfig struct {
	BaseURL             string   `yaml:"base_url"`
	ProductionEndpoint  string   `yaml:"production_endpoint"`
	ConsumptionEndpoint string   `yaml:"consumption_endpoint"`
	PricesEndpoint      string   `yaml:"prices_endpoint"`
	MBACodes            []string `yaml:"mba_codes"`
	PriceMBA            string   `yaml:"price_mba"`
}

type SvkSourceConfig struct {
	BaseURL       string `yaml:"base_url"`
	AuctionTypeID int    `yaml:"auction_type_id"`
	ProductTypeID int    `yaml:"product_type_id"`
}

type OutputConfig struct {
	PublicRoot string `yaml:"public_root"`
	RawRoot    string `yaml:"raw_root"`
}

type FrequencyConfig struct {
	Input      string `yaml:"input"`
	OutputRoot string `yaml:"output_root"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type MetricsConfig struct {
	CloudWatch CloudWatchConfig `yaml:"cloudwatch"`
}

type CloudWatchConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	Namespace string `yaml:"namespace"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// DefaultConfig returns the built-in configuration: the production eSett
// and Svk endpoints, the four Swedish bidding zones, and the two local
// output roots. A config file overrides individual fields.
func DefaultConfig() *Config {
	return &Config{
		Gridio: GridioConfig{
			Name:    "gridio-fetch",
			Version: "1.0",
		},
		Fetcher: FetcherConfig{
			Timeout:   30 * time.Second,
			UserAgent: "gridio-fetch/1.0",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 2,
				BurstSize:         2,
			},
			ConnectionPool: ConnectionPoolConfig{
				MaxIdleConns:    4,
				MaxConnsPerHost: 4,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		Source: SourceConfig{
			Esett: EsettSourceConfig{
				BaseURL:             "https://api.opendata.esett.com",
				ProductionEndpoint:  "/EXP16/Volumes",
				ConsumptionEndpoint: "/EXP15/Consumption",
				PricesEndpoint:      "/EXP14/Prices",
				MBACodes: []string{
					"10Y1001A1001A44P", // SE1
					"10Y1001A1001A45N", // SE2
					"10Y1001A1001A46L", // SE3
					"10Y1001A1001A47J", // SE4
				},
				PriceMBA: "10Y1001A1001A46L", // SE3
			},
			Svk: SvkSourceConfig{
				BaseURL:       "https://mimer.svk.se/PrimaryRegulation/DownloadText",
				AuctionTypeID: 1,
				ProductTypeID: 0,
			},
		},
		Output: OutputConfig{
			PublicRoot: "public/data",
			RawRoot:    "src/data/real/raw",
		},
		Frequency: FrequencyConfig{
			Input:      "frequency_data/frequency_data.csv",
			OutputRoot: "public/data",
		},
		Metrics: MetricsConfig{
			CloudWatch: CloudWatchConfig{
				Namespace: "Gridio",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// LoadConfig reads the yaml config at path over the defaults. A missing
// file is not an error; the defaults already describe the production
// upstreams. AWS settings honor the usual environment variables.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Storage.S3.Enabled {
		if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
			config.Storage.S3.AccessKeyID = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
			config.Storage.S3.SecretAccessKey = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_REGION"); v != "" {
			config.Storage.S3.Region = strings.TrimSpace(v)
		}
		if v := os.Getenv("S3_BUCKET"); v != "" {
			config.Storage.S3.Bucket = strings.TrimSpace(v)
		}
	}
	config.Storage.S3.Bucket = strings.TrimSpace(config.Storage.S3.Bucket)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Gridio.Name == "" {
		return fmt.Errorf("gridio.name is required")
	}
	if cfg.Gridio.Version == "" {
		return fmt.Errorf("gridio.version is required")
	}

	if cfg.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be greater than 0")
	}
	if cfg.Fetcher.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetcher.rate_limit.requests_per_second must be greater than 0")
	}

	if cfg.Source.Esett.BaseURL == "" {
		return fmt.Errorf("source.esett.base_url is required")
	}
	if len(cfg.Source.Esett.MBACodes) == 0 {
		return fmt.Errorf("source.esett.mba_codes must list at least one bidding zone")
	}
	if cfg.Source.Esett.PriceMBA == "" {
		return fmt.Errorf("source.esett.price_mba is required")
	}
	if cfg.Source.Svk.BaseURL == "" {
		return fmt.Errorf("source.svk.base_url is required")
	}

	if cfg.Output.PublicRoot == "" || cfg.Output.RawRoot == "" {
		return fmt.Errorf("output.public_root and output.raw_root are required")
	}

	if cfg.Storage.S3.Enabled {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when S3 is enabled")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("storage.s3.region is required when S3 is enabled")
		}
	}

	return nil
}
