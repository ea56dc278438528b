// Package config provides configuration management for dwhetl.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Warehouse: driver, host, port, user, password, database, ssl_mode,
//     path, connect_timeout
//   - Sources: region, iam_role_arn, access_key_id, secret_access_key,
//     log_data, log_jsonpath, song_data, test_log_data, test_song_data
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Progress, WithPlan, WithSourcesCheck (per-run)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use DWHETL_ prefix with underscores for nesting:
//
//	DWHETL_WAREHOUSE_HOST=examplecluster.abc123.us-west-2.redshift.amazonaws.com
//	DWHETL_WAREHOUSE_PORT=5439
//	DWHETL_SOURCES_IAM_ROLE_ARN=arn:aws:iam::123456789012:role/dwhRole
//	DWHETL_LOG_LEVEL=info
package config

// Config represents the complete dwhetl configuration.
type Config struct {
	// Warehouse contains connection settings of the data warehouse.
	Warehouse WarehouseConfig `mapstructure:"warehouse" yaml:"warehouse"`

	// Sources describes where the raw JSON data resides in S3.
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Progress shows a progress bar while statements are executed.
	Progress bool

	// WithPlan prints the execution plan instead of running it.
	WithPlan bool

	// WithSourcesCheck verifies that source data exists in S3 before
	// loading.
	WithSourcesCheck bool

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// WarehouseConfig contains warehouse connection parameters.
type WarehouseConfig struct {
	// Driver selects the database/sql driver.
	// Valid values: "pgx" (Redshift or PostgreSQL), "sqlite" (local file).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the cluster endpoint hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the cluster port number. Redshift listens on 5439.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the database file for the sqlite driver.
	Path string `mapstructure:"path" yaml:"path"`

	// ConnectTimeout limits establishing a connection, in seconds.
	// Statements themselves are never timed out.
	ConnectTimeout int `mapstructure:"connect_timeout" yaml:"connect_timeout"`
}

// SourcesConfig keeps the S3 locations of the raw data and the
// credentials the warehouse uses to read them. The values are available
// to catalog statements as template fields, for example {{.LogData}}.
type SourcesConfig struct {
	// Region of the S3 bucket.
	Region string `mapstructure:"region" yaml:"region"`

	// IAMRoleARN is the role the warehouse assumes to read from S3.
	IAMRoleARN string `mapstructure:"iam_role_arn" yaml:"iam_role_arn"`

	// AccessKeyID and SecretAccessKey are used only by the sources check.
	// When empty, the default AWS credential chain is used.
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`

	// LogData is the S3 prefix of the event logs.
	LogData string `mapstructure:"log_data" yaml:"log_data"`

	// LogJSONPath is the S3 object with JSONPaths for event logs.
	LogJSONPath string `mapstructure:"log_jsonpath" yaml:"log_jsonpath"`

	// SongData is the S3 prefix of the song metadata.
	SongData string `mapstructure:"song_data" yaml:"song_data"`

	// TestLogData is a small subset of LogData.
	TestLogData string `mapstructure:"test_log_data" yaml:"test_log_data"`

	// TestSongData is a small subset of SongData.
	TestSongData string `mapstructure:"test_song_data" yaml:"test_song_data"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Warehouse: WarehouseConfig{
			Driver:         "pgx",
			Host:           "localhost",
			Port:           5439,
			User:           "dwhuser",
			Password:       "dwhpassword",
			Database:       "dwh",
			SSLMode:        "require",
			Path:           "dwhetl.sqlite",
			ConnectTimeout: 30,
		},
		Sources: SourcesConfig{
			Region:       "us-west-2",
			LogData:      "s3://udacity-dend/log_data",
			LogJSONPath:  "s3://udacity-dend/log_json_path.json",
			SongData:     "s3://udacity-dend/song_data",
			TestLogData:  "s3://udacity-dend/log_data/2018/11/2018-11-01",
			TestSongData: "s3://udacity-dend/song_data/A/A/A",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is appended every time the log starts
			Destination: "file",
		},
	}

	return res
}
