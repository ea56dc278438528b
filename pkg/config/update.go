package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Progress, WithPlan,
// WithSourcesCheck).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	str := func(s string, fn func(string) Option) {
		if s != "" {
			res = append(res, fn(s))
		}
	}
	num := func(i int, fn func(int) Option) {
		if i > 0 {
			res = append(res, fn(i))
		}
	}

	str(c.Warehouse.Driver, OptWarehouseDriver)
	str(c.Warehouse.Host, OptWarehouseHost)
	num(c.Warehouse.Port, OptWarehousePort)
	str(c.Warehouse.User, OptWarehouseUser)
	str(c.Warehouse.Password, OptWarehousePassword)
	str(c.Warehouse.Database, OptWarehouseDatabase)
	str(c.Warehouse.SSLMode, OptWarehouseSSLMode)
	str(c.Warehouse.Path, OptWarehousePath)
	num(c.Warehouse.ConnectTimeout, OptWarehouseConnectTimeout)

	str(c.Sources.Region, OptSourcesRegion)
	str(c.Sources.IAMRoleARN, OptSourcesIAMRoleARN)
	str(c.Sources.AccessKeyID, OptSourcesAccessKeyID)
	str(c.Sources.SecretAccessKey, OptSourcesSecretAccessKey)
	str(c.Sources.LogData, OptSourcesLogData)
	str(c.Sources.LogJSONPath, OptSourcesLogJSONPath)
	str(c.Sources.SongData, OptSourcesSongData)
	str(c.Sources.TestLogData, OptSourcesTestLogData)
	str(c.Sources.TestSongData, OptSourcesTestSongData)

	str(c.Log.Format, OptLogFormat)
	str(c.Log.Level, OptLogLevel)
	str(c.Log.Destination, OptLogDestination)

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidS3(name, s string) bool {
	if !isValidString(name, s) {
		return false
	}
	res := strings.HasPrefix(s, "s3://") && len(s) > len("s3://")
	if !res {
		gn.Warn("<em>%s</em> has to be an s3:// location, ignoring '%s'",
			name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Warehouse.Driver": {"pgx": s, "sqlite": s},
		"Warehouse.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
