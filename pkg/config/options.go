package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptWarehouseDriver sets the database/sql driver.
// Valid values: "pgx", "sqlite".
func OptWarehouseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Warehouse.Driver", s) {
			c.Warehouse.Driver = s
		}
	}
}

// OptWarehouseHost sets the cluster endpoint.
func OptWarehouseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Host", s) {
			c.Warehouse.Host = s
		}
	}
}

// OptWarehousePort sets the cluster port number.
func OptWarehousePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Warehouse Port", i) {
			c.Warehouse.Port = i
		}
	}
}

// OptWarehouseUser sets the database username.
func OptWarehouseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse User", s) {
			c.Warehouse.User = s
		}
	}
}

// OptWarehousePassword sets the database password.
func OptWarehousePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Password", s) {
			c.Warehouse.Password = s
		}
	}
}

// OptWarehouseDatabase sets the database name.
func OptWarehouseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Database", s) {
			c.Warehouse.Database = s
		}
	}
}

// OptWarehouseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptWarehouseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Warehouse.SSLMode", s) {
			c.Warehouse.SSLMode = s
		}
	}
}

// OptWarehousePath sets the database file of the sqlite driver.
func OptWarehousePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Path", s) {
			c.Warehouse.Path = s
		}
	}
}

// OptWarehouseConnectTimeout sets the connection timeout in seconds.
func OptWarehouseConnectTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Warehouse Connect Timeout", i) {
			c.Warehouse.ConnectTimeout = i
		}
	}
}

// OptSourcesRegion sets the AWS region of the source bucket.
func OptSourcesRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sources Region", s) {
			c.Sources.Region = s
		}
	}
}

// OptSourcesIAMRoleARN sets the role the warehouse uses to read S3.
func OptSourcesIAMRoleARN(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sources IAM Role ARN", s) {
			c.Sources.IAMRoleARN = s
		}
	}
}

// OptSourcesAccessKeyID sets the AWS access key of the sources check.
func OptSourcesAccessKeyID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sources Access Key ID", s) {
			c.Sources.AccessKeyID = s
		}
	}
}

// OptSourcesSecretAccessKey sets the AWS secret of the sources check.
func OptSourcesSecretAccessKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sources Secret Access Key", s) {
			c.Sources.SecretAccessKey = s
		}
	}
}

// OptSourcesLogData sets the S3 prefix of the event logs.
func OptSourcesLogData(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidS3("Sources Log Data", s) {
			c.Sources.LogData = s
		}
	}
}

// OptSourcesLogJSONPath sets the S3 object with event log JSONPaths.
func OptSourcesLogJSONPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidS3("Sources Log JSONPath", s) {
			c.Sources.LogJSONPath = s
		}
	}
}

// OptSourcesSongData sets the S3 prefix of the song metadata.
func OptSourcesSongData(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidS3("Sources Song Data", s) {
			c.Sources.SongData = s
		}
	}
}

// OptSourcesTestLogData sets the S3 prefix of the test event logs.
func OptSourcesTestLogData(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidS3("Sources Test Log Data", s) {
			c.Sources.TestLogData = s
		}
	}
}

// OptSourcesTestSongData sets the S3 prefix of the test song metadata.
func OptSourcesTestSongData(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidS3("Sources Test Song Data", s) {
			c.Sources.TestSongData = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptProgress turns the progress bar on or off.
// Runtime-only field - not in ToOptions().
func OptProgress(b bool) Option {
	return func(c *Config) {
		c.Progress = b
	}
}

// OptWithPlan makes the run print its plan instead of executing it.
// Runtime-only field - not in ToOptions().
func OptWithPlan(b bool) Option {
	return func(c *Config) {
		c.WithPlan = b
	}
}

// OptWithSourcesCheck enables the S3 check before loading.
// Runtime-only field - not in ToOptions().
func OptWithSourcesCheck(b bool) Option {
	return func(c *Config) {
		c.WithSourcesCheck = b
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
