// Package config builds the immutable run configuration from the process
// environment and the optional snowload.yaml project file.
//
// The original pipeline read environment variables ad hoc throughout its
// run; here every setting is resolved once, validated exhaustively, and
// passed by value into the orchestrator before any I/O happens.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thaole73/snowload/pkg/snowload"
)

// ErrConfigNotFound is returned when the project config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Config is the full environment-backed configuration of one run.
// Immutable after Load; absence of any field is a fatal startup error.
type Config struct {
	// Snowflake session identifiers
	Account   string
	User      string
	Password  string
	Warehouse string
	Database  string
	SchemaRaw string

	// S3 staging location
	Bucket    string
	KeyPrefix string
	StageName string

	// AWS credentials and region for the staging client
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
}

// Environment variable names, as expected in the deployment's .env.
const (
	EnvAccount   = "SNOWFLAKE_ACCOUNT"
	EnvUser      = "SNOWFLAKE_USER"
	EnvPassword  = "SNOWFLAKE_PASSWORD"
	EnvWarehouse = "SNOWFLAKE_WAREHOUSE"
	EnvDatabase  = "SNOWFLAKE_DATABASE"
	EnvSchemaRaw = "SNOWFLAKE_SCHEMA_RAW"
	EnvBucket    = "S3_BUCKET"
	EnvKeyPrefix = "S3_PREFIX_RAW"
	EnvStageName = "SNOWFLAKE_STAGE_NAME"
	EnvAWSKey    = "AWS_ACCESS_KEY_ID"
	EnvAWSSecret = "AWS_SECRET_ACCESS_KEY"
	EnvAWSRegion = "AWS_REGION"
)

// FromEnv resolves the configuration from the process environment and
// validates it. All missing variables are reported together in one error so
// a misconfigured deployment is fixed in one round trip.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Account:            os.Getenv(EnvAccount),
		User:               os.Getenv(EnvUser),
		Password:           os.Getenv(EnvPassword),
		Warehouse:          os.Getenv(EnvWarehouse),
		Database:           os.Getenv(EnvDatabase),
		SchemaRaw:          os.Getenv(EnvSchemaRaw),
		Bucket:             os.Getenv(EnvBucket),
		KeyPrefix:          os.Getenv(EnvKeyPrefix),
		StageName:          os.Getenv(EnvStageName),
		AWSAccessKeyID:     os.Getenv(EnvAWSKey),
		AWSSecretAccessKey: os.Getenv(EnvAWSSecret),
		AWSRegion:          os.Getenv(EnvAWSRegion),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{EnvAccount, c.Account},
		{EnvUser, c.User},
		{EnvPassword, c.Password},
		{EnvWarehouse, c.Warehouse},
		{EnvDatabase, c.Database},
		{EnvSchemaRaw, c.SchemaRaw},
		{EnvBucket, c.Bucket},
		{EnvKeyPrefix, c.KeyPrefix},
		{EnvStageName, c.StageName},
		{EnvAWSKey, c.AWSAccessKeyID},
		{EnvAWSSecret, c.AWSSecretAccessKey},
		{EnvAWSRegion, c.AWSRegion},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables %v: %w", missing, snowload.ErrInvalidConfig)
	}
	return nil
}

// ProjectConfig is the optional snowload.yaml file beside the data it
// describes. It supplies local paths and mapping overrides; connection
// settings stay in the environment.
type ProjectConfig struct {
	DataDir   string `yaml:"data_dir"`
	SchemaDir string `yaml:"schema_dir"`
	Ledger    string `yaml:"ledger"`
	Timeout   string `yaml:"timeout"`
}

// ProjectFileName is the well-known project file name.
const ProjectFileName = "snowload.yaml"

// LoadProject reads snowload.yaml from the given directory.
// Returns ErrConfigNotFound if the file does not exist.
func LoadProject(dir string) (*ProjectConfig, []byte, error) {
	configPath := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrConfigNotFound
		}
		return nil, nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	// Raw bytes are returned too so the mapping registry can read its
	// overlay section from the same file.
	return &cfg, data, nil
}
